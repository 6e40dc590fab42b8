package model

// Item is a standalone to-do entry. The default "Today" list is backed by a
// flat collection of these.
type Item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListItem is an entry embedded inside a named list's document. It shares
// Item's shape but is a copy with its own id, never a reference into the
// standalone item collection.
type ListItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List is a named to-do list. Name is stored in normalized form (first rune
// upper, rest lower) and is unique across all lists.
type List struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Items []ListItem `json:"items"`
}
