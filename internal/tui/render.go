package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/pizza/internal/element"
	"github.com/idilsaglam/pizza/internal/ui"
	"github.com/idilsaglam/pizza/internal/view"
)

func (m Model) View() string {
	t := ui.Current()

	regions := []string{m.renderCatalog(view.Catalog(m.state))}
	if sel := m.renderSelection(view.Selection(m.state)); sel != "" {
		regions = append(regions, sel)
	}
	ov, err := view.Order(m.state)
	if ord := m.renderOrder(ov, err); ord != "" {
		regions = append(regions, ord)
	}

	header := t.Title.Render("Pizza") + "  " + t.Muted.Render(m.cartSummary())
	body := lipgloss.JoinHorizontal(lipgloss.Top, regions...)
	footer := m.help.ShortHelpView(m.keys.ShortHelp())
	if s := m.statusLine(); s != "" {
		footer = s + "\n" + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) cartSummary() string {
	if m.state.Order == nil {
		return "cart empty"
	}
	return fmt.Sprintf("cart: %d line(s)", len(m.state.Order.Items))
}

func (m Model) renderCatalog(v view.CatalogView) string {
	t := ui.Current()
	lines := []string{t.Title.Render("Menu")}
	switch {
	case v.Loading:
		lines = append(lines, m.spinner.View()+" loading menu…")
	case len(v.Entries) == 0:
		lines = append(lines, t.Muted.Render("no pizzas available"))
	default:
		lines = append(lines, m.catalog.View())
	}
	return ui.Box(strings.Join(lines, "\n"), m.focus == v.Region)
}

func (m Model) renderSelection(v view.SelectionView) string {
	if !v.Visible {
		return ""
	}
	t := ui.Current()
	lines := []string{
		t.Title.Render(v.Name),
		t.Accent.Render(v.Toppings),
		t.Muted.Render("image: " + v.ImageURL),
		"",
		m.amount.View(),
		ui.Button(view.AddLabel, m.focus == v.AddButton),
	}
	return ui.Box(strings.Join(lines, "\n"), m.focusWithin(v.AmountInput, v.AddButton))
}

func (m Model) renderOrder(v view.OrderView, err error) string {
	if !v.Visible {
		return ""
	}
	t := ui.Current()
	lines := []string{t.Title.Render(view.OrderTitle)}
	focusIDs := []element.ID{v.NameInput, v.ZipInput, v.SendButton}
	for _, line := range v.Lines {
		lines = append(lines, fmt.Sprintf("%s %s  %s",
			t.SymBullet, line.Label, ui.Button(view.RemoveLabel, m.focus == line.RemoveButton)))
		focusIDs = append(focusIDs, line.RemoveButton)
	}
	if err != nil {
		lines = append(lines, t.Error.Render(t.SymFail+" "+err.Error()))
	}
	lines = append(lines,
		"",
		m.name.View(),
		m.zip.View(),
		ui.Button(view.SendLabel, m.focus == v.SendButton),
	)
	return ui.Box(strings.Join(lines, "\n"), m.focusWithin(focusIDs...))
}

func (m Model) focusWithin(ids ...element.ID) bool {
	for _, id := range ids {
		if m.focus == id {
			return true
		}
	}
	return false
}
