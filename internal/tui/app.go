package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"listkeep/internal/lists"
	"listkeep/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("211"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 2)
)

// entryItem adapts a lists.Entry to bubbles/list.Item.
type entryItem struct {
	entry lists.Entry
}

func (i entryItem) Title() string       { return i.entry.Name }
func (i entryItem) Description() string { return "" }
func (i entryItem) FilterValue() string { return i.entry.Name }

// Single-line delegate.
type entryDelegate struct{}

func (d entryDelegate) Height() int                               { return 1 }
func (d entryDelegate) Spacing() int                              { return 0 }
func (d entryDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d entryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(entryItem)
	prefix := "  "
	line := mutedStyle.Render("☐") + " " + it.entry.Name
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
		line = mutedStyle.Render("☐") + " " + selectedStyle.Render(it.entry.Name)
	}
	fmt.Fprintln(w, prefix+line)
}

type inputMode int

const (
	modeBrowse inputMode = iota
	modeAdd
	modeSwitch
)

type appModel struct {
	acc lists.Accessor

	listName string
	entries  list.Model
	input    textinput.Model
	mode     inputMode
	lastErr  string

	width  int
	height int
}

type loadedMsg struct {
	view lists.View
	err  error
}

type mutatedMsg struct {
	err error
}

func (m appModel) loadCmd() tea.Cmd {
	name := m.listName
	acc := m.acc
	return func() tea.Msg {
		v, err := acc.Resolve(context.Background(), name)
		return loadedMsg{view: v, err: err}
	}
}

func (m appModel) addCmd(text string) tea.Cmd {
	name := m.listName
	acc := m.acc
	return func() tea.Msg {
		_, err := acc.AddItem(context.Background(), name, text)
		return mutatedMsg{err: err}
	}
}

func (m appModel) deleteCmd(itemID string) tea.Cmd {
	name := m.listName
	acc := m.acc
	return func() tea.Msg {
		return mutatedMsg{err: acc.DeleteItem(context.Background(), name, itemID)}
	}
}

func (m appModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.entries.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			return m, nil
		}
		m.lastErr = ""
		m.listName = msg.view.Title
		items := make([]list.Item, 0, len(msg.view.Items))
		for _, e := range msg.view.Items {
			items = append(items, entryItem{entry: e})
		}
		cmd := m.entries.SetItems(items)
		m.entries.Title = msg.view.Title
		return m, cmd

	case mutatedMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			return m, nil
		}
		return m, m.loadCmd()

	case tea.KeyMsg:
		if m.mode != modeBrowse {
			switch msg.String() {
			case "esc":
				m.mode = modeBrowse
				m.input.Blur()
				return m, nil
			case "enter":
				text := strings.TrimSpace(m.input.Value())
				mode := m.mode
				m.mode = modeBrowse
				m.input.SetValue("")
				m.input.Blur()
				if text == "" {
					return m, nil
				}
				if mode == modeAdd {
					return m, m.addCmd(text)
				}
				m.listName = lists.Normalize(text)
				return m, m.loadCmd()
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "a":
			m.mode = modeAdd
			m.input.Placeholder = "New item"
			m.input.Focus()
			return m, textinput.Blink
		case "g":
			m.mode = modeSwitch
			m.input.Placeholder = "List name"
			m.input.Focus()
			return m, textinput.Blink
		case "x":
			if it, ok := m.entries.SelectedItem().(entryItem); ok {
				return m, m.deleteCmd(it.entry.ID)
			}
			return m, nil
		case "r":
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.entries, cmd = m.entries.Update(msg)
	return m, cmd
}

func (m appModel) View() string {
	var b strings.Builder
	b.WriteString(m.entries.View())
	b.WriteString("\n")
	switch m.mode {
	case modeAdd, modeSwitch:
		b.WriteString("  " + m.input.View() + "\n")
	default:
		b.WriteString(helpStyle.Render("a add · x delete · g go to list · r reload · q quit") + "\n")
	}
	if m.lastErr != "" {
		b.WriteString("  " + errStyle.Render(m.lastErr) + "\n")
	}
	return b.String()
}

// Run starts the interactive TUI over the given data dir, opening on the
// default list.
func Run(dir string) error {
	acc := lists.Accessor{Store: store.Store{Dir: dir}}

	l := list.New(nil, entryDelegate{}, 0, 0)
	l.Title = lists.DefaultListName
	l.Styles.Title = titleStyle
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("item", "items")

	ti := textinput.New()
	ti.CharLimit = 200

	m := appModel{
		acc:      acc,
		listName: lists.DefaultListName,
		entries:  l,
		input:    ti,
	}

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
