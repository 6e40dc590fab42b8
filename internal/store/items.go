package store

import (
	"context"
	"strings"
	"time"

	"listkeep/internal/model"
)

// FetchAllItems returns every standalone item in insertion order.
func (s Store) FetchAllItems(ctx context.Context) ([]model.Item, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, name FROM items ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.Name); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// InsertItems bulk-inserts items, assigning a fresh id to each. The returned
// slice carries the assigned ids in input order. Any blank name fails the
// whole batch before the transaction commits.
func (s Store) InsertItems(ctx context.Context, items []model.Item) ([]model.Item, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	nowMs := time.Now().UTC().UnixMilli()
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		id, err := newRandomID("item")
		if err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO items(id, name, created_at_unixms) VALUES(?, ?, ?)`,
			id, name, nowMs); err != nil {
			return nil, err
		}
		out = append(out, model.Item{ID: id, Name: name})
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

// InsertItem inserts a single item and returns it with its assigned id.
func (s Store) InsertItem(ctx context.Context, it model.Item) (model.Item, error) {
	inserted, err := s.InsertItems(ctx, []model.Item{it})
	if err != nil {
		return model.Item{}, err
	}
	return inserted[0], nil
}

// DeleteItem removes the item with the given id. Returns ErrNotFound when no
// row matched; callers treating unknown ids as benign can ignore it.
func (s Store) DeleteItem(ctx context.Context, id string) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, strings.TrimSpace(id))
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
