// Package view projects shop state into plain view models. Nothing here
// draws or reads input; a UI adapter renders the models and routes events
// back using the element identities they carry.
package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/idilsaglam/pizza/internal/element"
	"github.com/idilsaglam/pizza/internal/model"
	"github.com/idilsaglam/pizza/internal/shop"
)

// ErrUnknownItem is returned when an order line names an item the catalog
// does not contain.
var ErrUnknownItem = errors.New("view: order line references unknown item")

// Control labels.
const (
	AddLabel    = "Add to order"
	RemoveLabel = "Remove item"
	SendLabel   = "Send order"
	OrderTitle  = "Your order"

	// UnknownItemName stands in for an ordered item the catalog no longer has.
	UnknownItemName = "(unavailable)"
)

// CatalogView is the menu region.
type CatalogView struct {
	Region  element.ID
	Loading bool
	Entries []CatalogEntry
}

// CatalogEntry is one selectable catalog row.
type CatalogEntry struct {
	ID     element.ID
	ItemID int
	Label  string
}

// SelectionView is the detail panel for the selected item.
type SelectionView struct {
	Region   element.ID
	Visible  bool
	Name     string
	Toppings string
	ImageURL string

	AmountInput element.ID
	AddButton   element.ID
}

// OrderView is the cart region with its contact inputs.
type OrderView struct {
	Region  element.ID
	Visible bool
	Lines   []OrderLineView

	Name       string
	ZipCode    string
	NameInput  element.ID
	ZipInput   element.ID
	SendButton element.ID
}

// OrderLineView is one cart line and its remove control.
type OrderLineView struct {
	ItemID       int
	Amount       int
	ItemName     string
	Label        string
	RemoveButton element.ID
}

// Catalog lists every catalog item in catalog order.
func Catalog(s shop.State) CatalogView {
	v := CatalogView{
		Region:  element.Catalog,
		Loading: s.Loading,
		Entries: make([]CatalogEntry, 0, len(s.Catalog)),
	}
	for _, it := range s.Catalog {
		v.Entries = append(v.Entries, CatalogEntry{
			ID:     element.CatalogEntry(it.ID),
			ItemID: it.ID,
			Label:  it.Name,
		})
	}
	return v
}

// Selection describes the detail panel. It is hidden when nothing is selected.
func Selection(s shop.State) SelectionView {
	v := SelectionView{Region: element.Selection}
	if s.Selected == nil {
		return v
	}
	v.Visible = true
	v.Name = s.Selected.Name
	v.Toppings = strings.Join(s.Selected.Toppings, ", ")
	v.ImageURL = s.Selected.URL
	v.AmountInput = element.Amount
	v.AddButton = element.Add
	return v
}

// Order describes the cart. It is hidden when there is no order. A line
// whose item is missing from the catalog is still listed, under
// UnknownItemName and with its remove control, and the returned error wraps
// ErrUnknownItem.
func Order(s shop.State) (OrderView, error) {
	v := OrderView{Region: element.Order}
	if s.Order == nil {
		return v, nil
	}
	v.Visible = true
	v.Name = s.Order.Name
	v.ZipCode = s.Order.ZipCode
	v.NameInput = element.Name
	v.ZipInput = element.Zip
	v.SendButton = element.Send

	var missing []string
	v.Lines = make([]OrderLineView, 0, len(s.Order.Items))
	for _, line := range s.Order.Items {
		name := UnknownItemName
		if it, ok := model.FindItem(s.Catalog, line.ItemID); ok {
			name = it.Name
		} else {
			missing = append(missing, strconv.Itoa(line.ItemID))
		}
		v.Lines = append(v.Lines, OrderLineView{
			ItemID:       line.ItemID,
			Amount:       line.Amount,
			ItemName:     name,
			Label:        fmt.Sprintf("%d x %s", line.Amount, name),
			RemoveButton: element.RemoveButton(line.ItemID),
		})
	}
	if len(missing) > 0 {
		return v, fmt.Errorf("%w: id %s", ErrUnknownItem, strings.Join(missing, ", "))
	}
	return v, nil
}

// Controls returns the focusable identities in screen order: the catalog,
// the selection controls, then the order controls.
func Controls(s shop.State) []element.ID {
	ids := []element.ID{element.Catalog}
	if s.Selected != nil {
		ids = append(ids, element.Amount, element.Add)
	}
	if s.Order != nil {
		for _, line := range s.Order.Items {
			ids = append(ids, element.RemoveButton(line.ItemID))
		}
		ids = append(ids, element.Name, element.Zip, element.Send)
	}
	return ids
}
