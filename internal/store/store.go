// Package store persists compiled pattern documents under user-chosen
// names. Two backends share one interface: an in-memory store for tests
// and short-lived sessions, and a SQLite store for the pattern library
// on disk.
package store

import (
	"context"
	"errors"
	"time"

	"strum/internal/pattern"
)

// ErrNotFound is returned when no record matches the requested ID.
var ErrNotFound = errors.New("pattern not found")

// Record is one saved pattern.
type Record struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	CreatedAt time.Time         `json:"created_at"`
	Document  *pattern.Document `json:"document"`
}

// Store is the persistence capability for pattern records.
type Store interface {
	// Save stores a document under the given name and returns the
	// assigned record. The ID is generated by the store.
	Save(ctx context.Context, name string, doc *pattern.Document) (*Record, error)

	// Get retrieves a record by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns all records newest first, without documents loaded
	// beyond what the backend keeps cheap. Callers needing the full
	// document should Get by ID.
	List(ctx context.Context) ([]*Record, error)

	// Delete removes a record by ID, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}
