package store

import (
	"context"
	"errors"
	"testing"

	"listkeep/internal/model"
)

func TestInsertItems_AssignsIDsAndKeepsOrder(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	ctx := context.Background()

	inserted, err := s.InsertItems(ctx, []model.Item{{Name: "first"}, {Name: "second"}})
	if err != nil {
		t.Fatalf("insert items: %v", err)
	}
	if len(inserted) != 2 {
		t.Fatalf("expected 2 inserted items, got %d", len(inserted))
	}
	if inserted[0].ID == "" || inserted[1].ID == "" {
		t.Fatalf("expected assigned ids, got %+v", inserted)
	}
	if inserted[0].ID == inserted[1].ID {
		t.Fatalf("expected distinct ids, both %q", inserted[0].ID)
	}

	got, err := s.FetchAllItems(ctx)
	if err != nil {
		t.Fatalf("fetch all: %v", err)
	}
	if len(got) != 2 || got[0].Name != "first" || got[1].Name != "second" {
		t.Fatalf("unexpected items: %+v", got)
	}
}

func TestInsertItems_RejectsEmptyName(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	ctx := context.Background()

	if _, err := s.InsertItems(ctx, []model.Item{{Name: "ok"}, {Name: "   "}}); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}

	// The whole batch must be rejected, not just the blank entry.
	got, err := s.FetchAllItems(ctx)
	if err != nil {
		t.Fatalf("fetch all: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty store after failed batch, got %+v", got)
	}
}

func TestDeleteItem_RemovesExactlyOne(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	ctx := context.Background()

	inserted, err := s.InsertItems(ctx, []model.Item{{Name: "a"}, {Name: "b"}, {Name: "c"}})
	if err != nil {
		t.Fatalf("insert items: %v", err)
	}

	if err := s.DeleteItem(ctx, inserted[1].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := s.FetchAllItems(ctx)
	if err != nil {
		t.Fatalf("fetch all: %v", err)
	}
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "c" {
		t.Fatalf("unexpected items after delete: %+v", got)
	}
}

func TestDeleteItem_UnknownIDIsNotFound(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	err := s.DeleteItem(context.Background(), "item-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
