package cli

import (
	"context"
	"errors"
	"strings"

	"listkeep/internal/lists"
	"listkeep/internal/store"

	"github.com/spf13/cobra"
)

func accessor(app *App) (lists.Accessor, error) {
	dir, err := resolveDir(app)
	if err != nil {
		return lists.Accessor{}, err
	}
	return lists.Accessor{Store: store.Store{Dir: dir}}, nil
}

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "List all known lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			all, err := (store.Store{Dir: dir}).AllLists(context.Background())
			if err != nil {
				return writeErr(cmd, err)
			}
			names := []string{lists.DefaultListName}
			for _, l := range all {
				names = append(names, l.Name)
			}
			return writeOut(cmd, app, map[string]any{"data": names})
		},
	}
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [list]",
		Short: "Show a list's items (default: Today); creates the list on first access",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := accessor(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			name := lists.DefaultListName
			if len(args) == 1 {
				name = args[0]
			}
			v, err := acc.Resolve(context.Background(), name)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": v})
		},
	}
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <list> <text>...",
		Short: "Add an item to a list",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := accessor(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			listName := args[0]
			text := strings.TrimSpace(strings.Join(args[1:], " "))
			entry, err := acc.AddItem(context.Background(), listName, text)
			if errors.Is(err, store.ErrEmptyName) {
				return writeErr(cmd, errors.New("add: item text must not be empty"))
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"list": lists.Normalize(listName),
				"item": entry,
			}})
		},
	}
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <list> <item-id>",
		Short: "Delete an item from a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := accessor(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			listName, itemID := args[0], args[1]
			if err := acc.DeleteItem(context.Background(), listName, itemID); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"list":    lists.Normalize(listName),
				"deleted": itemID,
			}})
		},
	}
	return cmd
}
