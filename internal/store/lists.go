package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"listkeep/internal/model"
)

// FindListByName returns the list document with the given normalized name,
// or ErrNotFound. Name matching is exact; callers normalize first.
func (s Store) FindListByName(ctx context.Context, name string) (model.List, error) {
	db, err := s.open(ctx)
	if err != nil {
		return model.List{}, err
	}
	defer db.Close()

	return findList(ctx, db, name)
}

func findList(ctx context.Context, db *sql.DB, name string) (model.List, error) {
	var l model.List
	var itemsJSON string
	err := db.QueryRowContext(ctx, `SELECT id, name, items_json FROM lists WHERE name = ?`,
		strings.TrimSpace(name)).Scan(&l.ID, &l.Name, &itemsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return model.List{}, ErrNotFound
	}
	if err != nil {
		return model.List{}, err
	}
	if err := json.Unmarshal([]byte(itemsJSON), &l.Items); err != nil {
		return model.List{}, err
	}
	if l.Items == nil {
		l.Items = []model.ListItem{}
	}
	return l, nil
}

// CreateList inserts a new list document seeded with the given items. Every
// embedded item gets a fresh id. A concurrent create of the same name
// surfaces as ErrDuplicateName; the caller should re-fetch.
func (s Store) CreateList(ctx context.Context, name string, items []model.ListItem) (model.List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.List{}, ErrEmptyName
	}

	db, err := s.open(ctx)
	if err != nil {
		return model.List{}, err
	}
	defer db.Close()

	id, err := newRandomID("list")
	if err != nil {
		return model.List{}, err
	}
	embedded := make([]model.ListItem, 0, len(items))
	for _, it := range items {
		itemName := strings.TrimSpace(it.Name)
		if itemName == "" {
			return model.List{}, ErrEmptyName
		}
		itemID, err := newRandomID("item")
		if err != nil {
			return model.List{}, err
		}
		embedded = append(embedded, model.ListItem{ID: itemID, Name: itemName})
	}

	l := model.List{ID: id, Name: name, Items: embedded}
	itemsJSON, err := json.Marshal(l.Items)
	if err != nil {
		return model.List{}, err
	}
	_, err = db.ExecContext(ctx, `INSERT INTO lists(id, name, items_json, updated_at_unixms) VALUES(?, ?, ?, ?)`,
		l.ID, l.Name, string(itemsJSON), time.Now().UTC().UnixMilli())
	if isUniqueViolation(err) {
		return model.List{}, ErrDuplicateName
	}
	if err != nil {
		return model.List{}, err
	}
	return l, nil
}

// AppendListItem loads the named list, appends the item with a fresh id and
// persists the whole document. Returns ErrNotFound if the list does not
// exist; lazy-create is the caller's job.
func (s Store) AppendListItem(ctx context.Context, name string, it model.ListItem) (model.ListItem, error) {
	itemName := strings.TrimSpace(it.Name)
	if itemName == "" {
		return model.ListItem{}, ErrEmptyName
	}

	db, err := s.open(ctx)
	if err != nil {
		return model.ListItem{}, err
	}
	defer db.Close()

	l, err := findList(ctx, db, name)
	if err != nil {
		return model.ListItem{}, err
	}
	itemID, err := newRandomID("item")
	if err != nil {
		return model.ListItem{}, err
	}
	appended := model.ListItem{ID: itemID, Name: itemName}
	l.Items = append(l.Items, appended)
	if err := saveList(ctx, db, l); err != nil {
		return model.ListItem{}, err
	}
	return appended, nil
}

// RemoveListItem removes the embedded item with the given id from the named
// list and persists the document. A missing item id is a no-op; a missing
// list is ErrNotFound.
func (s Store) RemoveListItem(ctx context.Context, name, itemID string) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	l, err := findList(ctx, db, name)
	if err != nil {
		return err
	}
	itemID = strings.TrimSpace(itemID)
	kept := l.Items[:0]
	for _, it := range l.Items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(l.Items) {
		return nil
	}
	l.Items = kept
	return saveList(ctx, db, l)
}

// SaveList replaces the named list's document wholesale. Concurrent writers
// to the same list are last-writer-wins; acceptable at this scale.
func (s Store) SaveList(ctx context.Context, l model.List) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	return saveList(ctx, db, l)
}

func saveList(ctx context.Context, db *sql.DB, l model.List) error {
	itemsJSON, err := json.Marshal(l.Items)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `UPDATE lists SET items_json = ?, updated_at_unixms = ? WHERE id = ?`,
		string(itemsJSON), time.Now().UTC().UnixMilli(), l.ID)
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

// AllLists returns every list document ordered by name. Feeds the TUI picker
// and the `lists` CLI command.
func (s Store) AllLists(ctx context.Context) ([]model.List, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, name, items_json FROM lists ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.List
	for rows.Next() {
		var l model.List
		var itemsJSON string
		if err := rows.Scan(&l.ID, &l.Name, &itemsJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(itemsJSON), &l.Items); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
