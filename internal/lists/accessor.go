package lists

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"listkeep/internal/model"
	"listkeep/internal/store"
)

// DefaultListName is the reserved name of the built-in list. It is backed by
// the standalone item collection rather than a list document and cannot be
// deleted.
const DefaultListName = "Today"

// Entry is the caller-facing view of one to-do entry, regardless of which
// collection it came from.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// View is the result of resolving a list: its display title and entries.
type View struct {
	Title string  `json:"title"`
	Items []Entry `json:"items"`
}

// Accessor routes reads and writes to the right backing collection: the
// standalone item table for "Today", list documents for everything else.
// It owns name normalization and the lazy-create/seeding policy.
type Accessor struct {
	Store store.Store
}

// Normalize canonicalizes a list name: first rune upper, the rest lower, so
// "today", "TODAY" and "Today" address the same list.
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	r := []rune(strings.ToLower(name))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// seedItems and seedListItems build the starter content for a freshly seen
// list. Fresh values every call: ids are assigned by the store at insert
// time, so no two seeded lists ever share item ids.
func seedItems() []model.Item {
	return []model.Item{
		{Name: "Welcome!"},
		{Name: "Click the + button to add an entry and tick the checkbox to delete an entry"},
	}
}

func seedListItems() []model.ListItem {
	return []model.ListItem{
		{Name: "Welcome!"},
		{Name: "Click the + button to add an entry and tick the checkbox to delete an entry"},
	}
}

// Resolve returns the named list's title and entries, creating and seeding
// it on first access. The seeded state is returned directly; an immediate
// second resolve sees exactly the same entries.
func (a Accessor) Resolve(ctx context.Context, name string) (View, error) {
	n := Normalize(name)
	if n == "" || n == DefaultListName {
		items, err := a.Store.FetchAllItems(ctx)
		if err != nil {
			return View{}, err
		}
		if len(items) == 0 {
			items, err = a.Store.InsertItems(ctx, seedItems())
			if err != nil {
				return View{}, err
			}
		}
		v := View{Title: DefaultListName, Items: make([]Entry, 0, len(items))}
		for _, it := range items {
			v.Items = append(v.Items, Entry{ID: it.ID, Name: it.Name})
		}
		return v, nil
	}

	l, err := a.Store.FindListByName(ctx, n)
	if errors.Is(err, store.ErrNotFound) {
		l, err = a.Store.CreateList(ctx, n, seedListItems())
		if errors.Is(err, store.ErrDuplicateName) {
			// Lost the lazy-create race; the other writer's list wins.
			l, err = a.Store.FindListByName(ctx, n)
		}
	}
	if err != nil {
		return View{}, err
	}
	v := View{Title: l.Name, Items: make([]Entry, 0, len(l.Items))}
	for _, it := range l.Items {
		v.Items = append(v.Items, Entry{ID: it.ID, Name: it.Name})
	}
	return v, nil
}

// AddItem appends a new entry to the named list and returns it with its
// assigned id. A named list that was never resolved is created (seeded)
// first, so AddItem has no undefined failure path.
func (a Accessor) AddItem(ctx context.Context, listName, itemName string) (Entry, error) {
	n := Normalize(listName)
	if n == "" || n == DefaultListName {
		it, err := a.Store.InsertItem(ctx, model.Item{Name: itemName})
		if err != nil {
			return Entry{}, err
		}
		return Entry{ID: it.ID, Name: it.Name}, nil
	}

	li, err := a.Store.AppendListItem(ctx, n, model.ListItem{Name: itemName})
	if errors.Is(err, store.ErrNotFound) {
		if _, cerr := a.Store.CreateList(ctx, n, seedListItems()); cerr != nil && !errors.Is(cerr, store.ErrDuplicateName) {
			return Entry{}, cerr
		}
		li, err = a.Store.AppendListItem(ctx, n, model.ListItem{Name: itemName})
	}
	if err != nil {
		return Entry{}, err
	}
	return Entry{ID: li.ID, Name: li.Name}, nil
}

// DeleteItem removes the entry with the given id from the named list.
// Unknown ids are benign no-ops.
func (a Accessor) DeleteItem(ctx context.Context, listName, itemID string) error {
	n := Normalize(listName)
	if n == "" || n == DefaultListName {
		err := a.Store.DeleteItem(ctx, itemID)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	err := a.Store.RemoveListItem(ctx, n, itemID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}
