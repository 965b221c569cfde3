package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"strum/internal/pattern"
)

// SQLiteStore persists records in a SQLite database. Documents are kept
// in their wire form so saved rows survive schema-neutral tooling.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and applies
// the schema. Pass ":memory:" for an ephemeral store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS patterns (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		document TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_patterns_created ON patterns(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Save(ctx context.Context, name string, doc *pattern.Document) (*Record, error) {
	wire, err := doc.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	rec := &Record{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Document:  doc,
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO patterns (id, name, created_at, document) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.CreatedAt, string(wire),
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, document FROM patterns WHERE id = ?`, id,
	)

	var rec Record
	var wire string
	if err := row.Scan(&rec.ID, &rec.Name, &rec.CreatedAt, &wire); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	doc, err := pattern.Decode([]byte(wire))
	if err != nil {
		return nil, fmt.Errorf("decode stored document %s: %w", rec.ID, err)
	}
	rec.Document = doc
	return &rec, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, document FROM patterns
		 ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		var rec Record
		var wire string
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.CreatedAt, &wire); err != nil {
			return nil, err
		}
		doc, err := pattern.Decode([]byte(wire))
		if err != nil {
			return nil, fmt.Errorf("decode stored document %s: %w", rec.ID, err)
		}
		rec.Document = doc
		out = append(out, &rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM patterns WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
