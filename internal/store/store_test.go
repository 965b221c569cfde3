package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"strum/internal/pattern"
	"strum/internal/store"
)

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, func(t *testing.T) store.Store {
		return store.NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	runStoreTests(t, func(t *testing.T) store.Store {
		s, err := store.NewSQLiteStore(":memory:")
		if err != nil {
			t.Fatalf("failed to create sqlite store: %v", err)
		}
		return s
	})
}

func TestSQLiteStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.db")

	s, err := store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rec, err := s.Save(context.Background(), "groove", sampleDoc())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.Get(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Name != "groove" {
		t.Errorf("name = %q, want groove", got.Name)
	}
	if !reflect.DeepEqual(got.Document, sampleDoc()) {
		t.Errorf("document did not survive reopen:\n%+v", got.Document)
	}
}

func sampleDoc() *pattern.Document {
	return &pattern.Document{
		Imports: []pattern.ImportBinding{{Instrument: "piano", Module: "sounds.piano"}},
		Tracks: map[string][]pattern.NoteEvent{
			"melody": {
				{Instrument: "piano", Note: "C4", Time: 0, Velocity: 1, Duration: 0.5},
				{Instrument: "piano", Note: "E4", Time: 1, Velocity: 1, Duration: 0.5},
			},
		},
	}
}

func runStoreTests(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("SaveAndGet", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()
		ctx := context.Background()

		rec, err := s.Save(ctx, "my pattern", sampleDoc())
		if err != nil {
			t.Fatalf("save failed: %v", err)
		}
		if rec.ID == "" {
			t.Error("save must assign an ID")
		}
		if rec.CreatedAt.IsZero() {
			t.Error("save must stamp creation time")
		}

		got, err := s.Get(ctx, rec.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Name != "my pattern" {
			t.Errorf("name = %q, want %q", got.Name, "my pattern")
		}
		if !reflect.DeepEqual(got.Document, sampleDoc()) {
			t.Errorf("document mismatch:\n%+v", got.Document)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()

		_, err := s.Get(context.Background(), "no-such-id")
		if !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got: %v", err)
		}
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()
		ctx := context.Background()

		var ids []string
		for _, name := range []string{"first", "second", "third"} {
			rec, err := s.Save(ctx, name, sampleDoc())
			if err != nil {
				t.Fatalf("save %s failed: %v", name, err)
			}
			ids = append(ids, rec.ID)
			time.Sleep(2 * time.Millisecond)
		}

		recs, err := s.List(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(recs) != 3 {
			t.Fatalf("expected 3 records, got %d", len(recs))
		}
		if recs[0].ID != ids[2] || recs[2].ID != ids[0] {
			t.Errorf("expected newest first, got %s %s %s", recs[0].Name, recs[1].Name, recs[2].Name)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()
		ctx := context.Background()

		rec, err := s.Save(ctx, "temp", sampleDoc())
		if err != nil {
			t.Fatalf("save failed: %v", err)
		}
		if err := s.Delete(ctx, rec.ID); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := s.Get(ctx, rec.ID); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got: %v", err)
		}
		if err := s.Delete(ctx, rec.ID); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got: %v", err)
		}
	})

	t.Run("EmptyDocument", func(t *testing.T) {
		s := newStore(t)
		defer s.Close()
		ctx := context.Background()

		rec, err := s.Save(ctx, "empty", pattern.New())
		if err != nil {
			t.Fatalf("save failed: %v", err)
		}
		got, err := s.Get(ctx, rec.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Document.EventCount() != 0 {
			t.Errorf("expected empty document, got %d events", got.Document.EventCount())
		}
	})
}
