package tui

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/ui"
)

// Store is the part of the todo store the browser needs.
type Store interface {
	ReadAll() (iter.Seq2[string, error], error)
	DeleteOne(n int) error
}

// entryItem adapts a stored line to bubbles/list.Item
type entryItem struct {
	line  int
	raw   string
	entry model.Entry
	ok    bool // raw parsed as an entry
}

func (i entryItem) text() string {
	if !i.ok {
		return i.raw
	}
	return i.entry.Title
}

// Implement list.Item interface
func (i entryItem) Title() string       { return i.text() }
func (i entryItem) Description() string { return i.entry.DueString() }
func (i entryItem) FilterValue() string { return i.raw }

// Custom delegate: one line per entry, "NN. title  due"
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(entryItem)
	t := ui.Current()

	line := t.LineNo.Render(fmt.Sprintf("%3d.", it.line)) + " " + it.text()
	if it.ok && it.entry.HasDue() {
		line += "  " + t.Due.Render(it.entry.DueString())
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+line)
}

var (
	deleteKey = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	quitKey   = key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit"))
)

// Browser lists the todo file and deletes entries in place.
type Browser struct {
	list   list.Model
	store  Store
	status string
	err    error
}

// NewBrowser loads the entries of s into a list view.
func NewBrowser(s Store) (Browser, error) {
	items, err := loadItems(s)
	if err != nil {
		return Browser{}, err
	}

	l := list.New(items, itemDelegate{}, 80, 20)
	l.Title = "Todos"
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	// position is the entry id, so filtering would make it misleading
	l.SetFilteringEnabled(false)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Help
	l.Styles.PaginationStyle = ui.Current().Help
	l.SetStatusBarItemName("entry", "entries")
	// "d" pages forward by default; it deletes here
	l.KeyMap.NextPage = key.NewBinding(
		key.WithKeys("right", "l", "pgdown", "f"),
		key.WithHelp("→/l/pgdn", "next page"),
	)
	l.KeyMap.Quit.SetEnabled(false)
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{deleteKey, quitKey} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{deleteKey, quitKey} }

	return Browser{list: l, store: s}, nil
}

func loadItems(s Store) ([]list.Item, error) {
	seq, err := s.ReadAll()
	if err != nil {
		return nil, err
	}
	var items []list.Item
	n := 0
	for raw, err := range seq {
		if err != nil {
			return nil, err
		}
		n++
		e, perr := model.Parse(raw)
		items = append(items, entryItem{line: n, raw: raw, entry: e, ok: perr == nil})
	}
	return items, nil
}

// Err returns the error that stopped the browser, if any.
func (b Browser) Err() error { return b.err }

// Update and View implement Bubble Tea's Model on Browser
func (b Browser) Init() tea.Cmd { return nil }

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.list.SetSize(msg.Width-4, msg.Height-4)
		return b, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, quitKey):
			return b, tea.Quit
		case key.Matches(msg, deleteKey):
			return b.deleteSelected()
		}
	}
	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return b, cmd
}

func (b Browser) deleteSelected() (tea.Model, tea.Cmd) {
	it, ok := b.list.SelectedItem().(entryItem)
	if !ok {
		return b, nil
	}
	if err := b.store.DeleteOne(it.line); err != nil {
		b.err = err
		return b, tea.Quit
	}
	items, err := loadItems(b.store)
	if err != nil {
		b.err = err
		return b, tea.Quit
	}
	idx := b.list.Index()
	cmd := b.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		b.list.Select(idx)
	}
	b.status = fmt.Sprintf("deleted line %d", it.line)
	return b, cmd
}

func (b Browser) View() string {
	t := ui.Current()
	var sb strings.Builder
	sb.WriteString(b.list.View())
	if b.status != "" {
		sb.WriteString("\n" + t.Success.Render("✔ "+b.status))
	}
	return t.Box().Render(sb.String())
}

// Run shows the browser until the user quits.
func Run(s Store, in io.Reader, out io.Writer) error {
	b, err := NewBrowser(s)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(b, tea.WithAltScreen(), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return err
	}
	if fb, ok := final.(Browser); ok {
		return fb.Err()
	}
	return nil
}
