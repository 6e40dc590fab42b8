package lists

import (
	"context"
	"testing"

	"listkeep/internal/store"
)

func newAccessor(t *testing.T) Accessor {
	t.Helper()
	return Accessor{Store: store.Store{Dir: t.TempDir()}}
}

func entryIDs(v View) []string {
	ids := make([]string, 0, len(v.Items))
	for _, e := range v.Items {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"today":      "Today",
		"TODAY":      "Today",
		"Today":      "Today",
		"schoolwork": "Schoolwork",
		"SCHOOL":     "School",
		"  trip  ":   "Trip",
		"":           "",
		"étude":      "Étude",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolve_DefaultSeedsOnce(t *testing.T) {
	a := newAccessor(t)
	ctx := context.Background()

	first, err := a.Resolve(ctx, "Today")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if first.Title != DefaultListName {
		t.Fatalf("unexpected title %q", first.Title)
	}
	if len(first.Items) != 2 {
		t.Fatalf("expected 2 seeded items, got %+v", first.Items)
	}
	if first.Items[0].Name != "Welcome!" {
		t.Fatalf("unexpected seed: %+v", first.Items)
	}

	second, err := a.Resolve(ctx, "today")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if len(second.Items) != 2 {
		t.Fatalf("seeding was not idempotent: %+v", second.Items)
	}
	for i := range first.Items {
		if second.Items[i].ID != first.Items[i].ID {
			t.Fatalf("second resolve returned different items:\nfirst  %+v\nsecond %+v", first.Items, second.Items)
		}
	}
}

func TestResolve_NamedListLazyCreateIsIdempotent(t *testing.T) {
	a := newAccessor(t)
	ctx := context.Background()

	first, err := a.Resolve(ctx, "groceries")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if first.Title != "Groceries" {
		t.Fatalf("unexpected title %q", first.Title)
	}
	if len(first.Items) != 2 {
		t.Fatalf("expected 2 seeded items, got %+v", first.Items)
	}

	second, err := a.Resolve(ctx, "GROCERIES")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if second.Title != "Groceries" {
		t.Fatalf("normalized names resolved to different lists: %q vs %q", first.Title, second.Title)
	}
	firstIDs, secondIDs := entryIDs(first), entryIDs(second)
	if len(firstIDs) != len(secondIDs) {
		t.Fatalf("lazy-create was not idempotent: %v vs %v", firstIDs, secondIDs)
	}
	for i := range firstIDs {
		if firstIDs[i] != secondIDs[i] {
			t.Fatalf("same list returned different items: %v vs %v", firstIDs, secondIDs)
		}
	}
}

func TestSeededListsDoNotShareItemIDs(t *testing.T) {
	a := newAccessor(t)
	ctx := context.Background()

	today, err := a.Resolve(ctx, "Today")
	if err != nil {
		t.Fatalf("resolve today: %v", err)
	}
	groceries, err := a.Resolve(ctx, "groceries")
	if err != nil {
		t.Fatalf("resolve groceries: %v", err)
	}
	school, err := a.Resolve(ctx, "school")
	if err != nil {
		t.Fatalf("resolve school: %v", err)
	}

	seen := map[string]string{}
	for _, v := range []View{today, groceries, school} {
		for _, e := range v.Items {
			if prev, ok := seen[e.ID]; ok {
				t.Fatalf("item id %q shared between %q and %q", e.ID, prev, v.Title)
			}
			seen[e.ID] = v.Title
		}
	}
}

func TestAddItem_DefaultListAppendsOnce(t *testing.T) {
	a := newAccessor(t)
	ctx := context.Background()

	before, err := a.Resolve(ctx, "Today")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	added, err := a.AddItem(ctx, "Today", "Buy milk")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	for _, e := range before.Items {
		if e.ID == added.ID {
			t.Fatalf("new item reused existing id %q", added.ID)
		}
	}

	after, err := a.Resolve(ctx, "Today")
	if err != nil {
		t.Fatalf("resolve after add: %v", err)
	}
	count := 0
	for _, e := range after.Items {
		if e.Name == "Buy milk" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one 'Buy milk', found %d in %+v", count, after.Items)
	}
}

func TestAddItem_NamedListDoesNotTouchOthers(t *testing.T) {
	a := newAccessor(t)
	ctx := context.Background()

	if _, err := a.Resolve(ctx, "groceries"); err != nil {
		t.Fatalf("resolve groceries: %v", err)
	}
	other, err := a.Resolve(ctx, "chores")
	if err != nil {
		t.Fatalf("resolve chores: %v", err)
	}

	if _, err := a.AddItem(ctx, "groceries", "Eggs"); err != nil {
		t.Fatalf("add: %v", err)
	}

	groceries, err := a.Resolve(ctx, "groceries")
	if err != nil {
		t.Fatalf("resolve after add: %v", err)
	}
	if len(groceries.Items) != 3 || groceries.Items[2].Name != "Eggs" {
		t.Fatalf("unexpected groceries: %+v", groceries.Items)
	}

	choresAfter, err := a.Resolve(ctx, "chores")
	if err != nil {
		t.Fatalf("resolve chores after add: %v", err)
	}
	if len(choresAfter.Items) != len(other.Items) {
		t.Fatalf("add to groceries changed chores: %+v", choresAfter.Items)
	}
}

func TestAddItem_LazilyCreatesUnresolvedList(t *testing.T) {
	a := newAccessor(t)
	ctx := context.Background()

	added, err := a.AddItem(ctx, "errands", "Post office")
	if err != nil {
		t.Fatalf("add to unresolved list: %v", err)
	}
	if added.ID == "" {
		t.Fatalf("expected assigned id, got %+v", added)
	}

	v, err := a.Resolve(ctx, "errands")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	// Seeded defaults plus the appended item.
	if len(v.Items) != 3 || v.Items[2].Name != "Post office" {
		t.Fatalf("unexpected items: %+v", v.Items)
	}
}

func TestAddItem_RejectsEmptyText(t *testing.T) {
	a := newAccessor(t)
	ctx := context.Background()

	if _, err := a.AddItem(ctx, "Today", "   "); err == nil {
		t.Fatal("expected validation error for blank item")
	}
	if _, err := a.AddItem(ctx, "groceries", ""); err == nil {
		t.Fatal("expected validation error for blank item")
	}
}

func TestDeleteItem_DefaultList(t *testing.T) {
	a := newAccessor(t)
	ctx := context.Background()

	v, err := a.Resolve(ctx, "Today")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if err := a.DeleteItem(ctx, "Today", v.Items[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	after, err := a.Resolve(ctx, "Today")
	if err != nil {
		t.Fatalf("resolve after delete: %v", err)
	}
	if len(after.Items) != 1 || after.Items[0].ID != v.Items[1].ID {
		t.Fatalf("unexpected items after delete: %+v", after.Items)
	}

	// Unknown ids are benign.
	if err := a.DeleteItem(ctx, "Today", "item-missing"); err != nil {
		t.Fatalf("delete unknown id: %v", err)
	}
}

func TestDeleteItem_NamedListOnly(t *testing.T) {
	a := newAccessor(t)
	ctx := context.Background()

	groceries, err := a.Resolve(ctx, "groceries")
	if err != nil {
		t.Fatalf("resolve groceries: %v", err)
	}
	today, err := a.Resolve(ctx, "Today")
	if err != nil {
		t.Fatalf("resolve today: %v", err)
	}

	if err := a.DeleteItem(ctx, "groceries", groceries.Items[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	groceriesAfter, err := a.Resolve(ctx, "groceries")
	if err != nil {
		t.Fatalf("resolve after delete: %v", err)
	}
	if len(groceriesAfter.Items) != 1 {
		t.Fatalf("unexpected groceries: %+v", groceriesAfter.Items)
	}
	todayAfter, err := a.Resolve(ctx, "Today")
	if err != nil {
		t.Fatalf("resolve today after delete: %v", err)
	}
	if len(todayAfter.Items) != len(today.Items) {
		t.Fatalf("delete on groceries changed today: %+v", todayAfter.Items)
	}

	// Deleting from a list that was never created is benign too.
	if err := a.DeleteItem(ctx, "nowhere", "item-missing"); err != nil {
		t.Fatalf("delete on missing list: %v", err)
	}
}
