package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/pizza/internal/ui"
	"github.com/idilsaglam/pizza/internal/view"
)

// catalogItem adapts a view.CatalogEntry to bubbles/list.Item
type catalogItem struct {
	entry view.CatalogEntry
}

func (i catalogItem) FilterValue() string { return i.entry.Label }

// Custom delegate to control how entries render (single line)
type catalogDelegate struct{}

func (d catalogDelegate) Height() int                               { return 1 }
func (d catalogDelegate) Spacing() int                              { return 0 }
func (d catalogDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d catalogDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(catalogItem)
	if !ok {
		return
	}
	t := ui.Current()
	prefix := "  "
	label := it.entry.Label
	if index == m.Index() {
		prefix = t.Accent.Render(t.SymCursor)
		label = t.Title.Render(label)
	}
	fmt.Fprint(w, prefix+label)
}

func newCatalogList() list.Model {
	l := list.New(nil, catalogDelegate{}, catalogWidth, defaultHeight)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.Styles.PaginationStyle = ui.Current().Muted
	return l
}

func catalogItems(v view.CatalogView) []list.Item {
	out := make([]list.Item, 0, len(v.Entries))
	for _, e := range v.Entries {
		out = append(out, catalogItem{entry: e})
	}
	return out
}
