// Package tui is the interactive ordering screen. It owns a shop.State,
// draws the view package's projections with lipgloss and routes key events
// to state operations by the identity of the focused control.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/pizza/internal/element"
	"github.com/idilsaglam/pizza/internal/model"
	"github.com/idilsaglam/pizza/internal/schema"
	"github.com/idilsaglam/pizza/internal/shop"
	"github.com/idilsaglam/pizza/internal/ui"
	"github.com/idilsaglam/pizza/internal/view"
)

const (
	catalogWidth  = 28
	defaultHeight = 14
)

// Backend is the ordering service as the screen needs it.
type Backend interface {
	FetchCatalog(ctx context.Context) ([]model.Item, error)
	SubmitOrder(ctx context.Context, order model.Order) error
}

type catalogMsg struct {
	items []model.Item
	err   error
}

type orderSentMsg struct {
	lines int
	err   error
}

// Model implements tea.Model.
type Model struct {
	ctx     context.Context
	backend Backend
	logger  *zap.Logger
	keys    keyMap
	help    help.Model

	state shop.State
	focus element.ID
	// orderShown is true while the order region, and with it the name and
	// zip inputs, is on screen.
	orderShown bool

	catalog list.Model
	amount  textinput.Model
	name    textinput.Model
	zip     textinput.Model
	spinner spinner.Model

	width     int
	status    string
	statusErr bool
}

// New builds the screen. The catalog request starts with Init.
func New(ctx context.Context, backend Backend, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := Model{
		ctx:     ctx,
		backend: backend,
		logger:  logger,
		keys:    defaultKeyMap(),
		help:    help.New(),
		state:   shop.New().StartLoading(),
		focus:   element.Catalog,
		catalog: newCatalogList(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.amount = newInput("Quantity: ", "0", 6)
	m.name = newInput("Name: ", "Name", 80)
	m.zip = newInput("Zip:  ", "Zip code", 16)
	return m
}

func newInput(prompt, placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 20
	return ti
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, backend Backend, logger *zap.Logger) error {
	p := tea.NewProgram(New(ctx, backend, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// State returns the current client state.
func (m Model) State() shop.State { return m.state }

// Focus returns the focused control.
func (m Model) Focus() element.ID { return m.focus }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCatalog())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		h := msg.Height - 8
		if h < 3 {
			h = 3
		}
		m.catalog.SetSize(catalogWidth, h)
		return m, nil

	case catalogMsg:
		return m.onCatalog(msg)

	case orderSentMsg:
		return m.onOrderSent(msg), nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.onKey(msg)
	}
	return m.forward(msg)
}

func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1)
	case key.Matches(msg, m.keys.Activate):
		return m.activate()
	}
	if !element.IsTextInput(m.focus) {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m.refresh()
		}
	}
	return m.forward(msg)
}

// forward hands msg to the focused component.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case element.Catalog:
		m.catalog, cmd = m.catalog.Update(msg)
	case element.Amount:
		m.amount, cmd = m.amount.Update(msg)
		m.state = m.state.UpdateAmount(parseAmount(m.amount.Value()))
	case element.Name:
		m.name, cmd = m.name.Update(msg)
	case element.Zip:
		m.zip, cmd = m.zip.Update(msg)
	}
	return m, cmd
}

// activate runs the action bound to the focused control.
func (m Model) activate() (tea.Model, tea.Cmd) {
	switch m.focus {
	case element.Catalog:
		return m.selectCurrent()
	case element.Add:
		return m.addToOrder()
	case element.Send:
		return m.send()
	case element.Amount, element.Name, element.Zip:
		return m.moveFocus(1)
	}
	if itemID, ok := element.ParseRemoveButton(m.focus); ok {
		return m.removeLine(itemID)
	}
	return m, nil
}

func (m Model) selectCurrent() (tea.Model, tea.Cmd) {
	it, ok := m.catalog.SelectedItem().(catalogItem)
	if !ok {
		return m, nil
	}
	m.state = m.state.SelectItem(it.entry.ItemID)
	if m.state.Selected == nil {
		return m, nil
	}
	m.logger.Debug("item selected", zap.Int("item_id", it.entry.ItemID))
	// The detail panel is rebuilt; the pending amount is kept.
	m.amount.Reset()
	return m.setFocus(element.Amount)
}

func (m Model) addToOrder() (tea.Model, tea.Cmd) {
	next, err := m.state.AddSelectedToOrder()
	if err != nil {
		return m.fail("add to order", err), nil
	}
	m.state = next
	m.logger.Debug("line added",
		zap.Int("item_id", m.state.Selected.ID), zap.Int("amount", m.state.Amount))
	m.setStatus(fmt.Sprintf("%d line(s) in your order", len(m.state.Order.Items)), false)
	return m.syncOrder(), nil
}

func (m Model) removeLine(itemID int) (tea.Model, tea.Cmd) {
	prev := indexOf(view.Controls(m.state), m.focus)
	next, err := m.state.RemoveLine(itemID)
	if err != nil {
		return m.fail("remove line", err), nil
	}
	m.state = next
	m.logger.Debug("line removed", zap.Int("item_id", itemID), zap.Bool("order_open", m.state.Order != nil))
	m = m.syncOrder()
	return m.refocus(prev)
}

func (m Model) send() (tea.Model, tea.Cmd) {
	next, order, err := m.state.PrepareSubmit(m.inputs())
	if err != nil {
		return m.fail("send order", err), nil
	}
	m.state = next.SubmitStarted()
	m.setStatus("sending order…", false)
	return m, m.submit(order)
}

func (m Model) refresh() (tea.Model, tea.Cmd) {
	if m.state.Loading {
		return m, nil
	}
	m.state = m.state.StartLoading()
	return m, tea.Batch(m.spinner.Tick, m.fetchCatalog())
}

func (m Model) onCatalog(msg catalogMsg) (tea.Model, tea.Cmd) {
	m.state = m.state.CatalogFetched(msg.items, msg.err)
	switch {
	case msg.err == nil:
		m.setStatus("", false)
	case errors.Is(msg.err, schema.ErrInvalidCatalog):
		// Rejected payloads leave an empty menu without a message.
		m.logger.Warn("catalog rejected", zap.Error(msg.err))
		m.setStatus("", false)
	default:
		m.logger.Error("catalog unavailable", zap.Error(msg.err))
		m.setStatus("could not load menu: "+msg.err.Error(), true)
	}
	cmd := m.catalog.SetItems(catalogItems(view.Catalog(m.state)))
	return m, cmd
}

func (m Model) onOrderSent(msg orderSentMsg) Model {
	m.state = m.state.SubmitFinished(msg.err)
	if msg.err != nil {
		m.logger.Error("order not sent", zap.Error(msg.err))
		m.setStatus("order not sent: "+msg.err.Error(), true)
		return m
	}
	m.logger.Info("order sent", zap.Int("lines", msg.lines))
	m.setStatus(fmt.Sprintf("order sent (%d line(s))", msg.lines), false)
	return m
}

// syncOrder captures typed contact details into the order, then refills the
// inputs from it. With no order the region and its inputs go away.
func (m Model) syncOrder() Model {
	if m.state.Order == nil {
		m.orderShown = false
		m.name.Reset()
		m.zip.Reset()
		return m
	}
	if next, err := m.state.CaptureContactDetails(m.inputs()); err == nil {
		m.state = next
	}
	m.name.SetValue(m.state.Order.Name)
	m.zip.SetValue(m.state.Order.ZipCode)
	m.orderShown = true
	return m
}

// inputs exposes the contact inputs that are currently on screen.
func (m Model) inputs() shop.InputMap {
	in := shop.InputMap{}
	if m.orderShown {
		in[element.Name] = m.name.Value()
		in[element.Zip] = m.zip.Value()
	}
	return in
}

func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	ids := view.Controls(m.state)
	i := indexOf(ids, m.focus)
	if i < 0 {
		i = 0
	}
	return m.setFocus(ids[(i+delta+len(ids))%len(ids)])
}

// refocus keeps focus near position prev after the focused control vanished.
func (m Model) refocus(prev int) (tea.Model, tea.Cmd) {
	ids := view.Controls(m.state)
	if indexOf(ids, m.focus) >= 0 {
		return m, nil
	}
	if prev < 0 {
		prev = 0
	}
	if prev >= len(ids) {
		prev = len(ids) - 1
	}
	return m.setFocus(ids[prev])
}

func (m Model) setFocus(id element.ID) (Model, tea.Cmd) {
	m.focus = id
	m.amount.Blur()
	m.name.Blur()
	m.zip.Blur()
	switch id {
	case element.Amount:
		return m, m.amount.Focus()
	case element.Name:
		return m, m.name.Focus()
	case element.Zip:
		return m, m.zip.Focus()
	}
	return m, nil
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func (m Model) fail(action string, err error) Model {
	m.logger.Warn("action refused", zap.String("action", action), zap.Error(err))
	m.setStatus(action+": "+err.Error(), true)
	return m
}

func (m Model) fetchCatalog() tea.Cmd {
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		items, err := backend.FetchCatalog(ctx)
		return catalogMsg{items: items, err: err}
	}
}

func (m Model) submit(order model.Order) tea.Cmd {
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		err := backend.SubmitOrder(ctx, order)
		return orderSentMsg{lines: len(order.Items), err: err}
	}
}

// parseAmount reads the quantity input; anything that is not an integer
// counts as 0.
func parseAmount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func indexOf(ids []element.ID, id element.ID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func (m Model) statusLine() string {
	t := ui.Current()
	var parts []string
	if m.state.Sending() {
		parts = append(parts, t.Pending.Render(fmt.Sprintf("%d order(s) in flight", m.state.InFlight)))
	}
	if m.status != "" {
		if m.statusErr {
			parts = append(parts, t.Error.Render(t.SymFail+" "+m.status))
		} else {
			parts = append(parts, t.Muted.Render(m.status))
		}
	}
	return strings.Join(parts, "  ")
}
