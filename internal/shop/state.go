// Package shop holds the ordering client's state and the operations that
// move it forward. State is a value: every operation returns a new State and
// leaves the receiver, and any slice it references, unchanged.
package shop

import (
	"errors"

	"github.com/idilsaglam/pizza/internal/element"
	"github.com/idilsaglam/pizza/internal/model"
	"github.com/idilsaglam/pizza/internal/schema"
)

// State is everything the client knows.
type State struct {
	Catalog []model.Item
	Loading bool
	// FetchErr is the transport error of the last catalog request, if any.
	FetchErr error

	Selected *model.Item
	Amount   int
	Order    *model.Order

	// InFlight counts order submissions awaiting a response.
	InFlight int
	SendErr  error
}

// New returns the startup state: empty catalog, nothing selected, no order.
func New() State {
	return State{Catalog: []model.Item{}}
}

// Sending reports whether at least one submission is outstanding.
func (s State) Sending() bool { return s.InFlight > 0 }

// Inputs exposes text controls by identity. ok is false when the control
// is not on screen.
type Inputs interface {
	InputValue(id element.ID) (value string, ok bool)
}

// InputMap is an Inputs backed by a map; missing keys are absent controls.
type InputMap map[element.ID]string

func (m InputMap) InputValue(id element.ID) (string, bool) {
	v, ok := m[id]
	return v, ok
}

// StartLoading marks a catalog request as outstanding.
func (s State) StartLoading() State {
	s.Loading = true
	s.FetchErr = nil
	return s
}

// CatalogFetched applies the outcome of a catalog request. A payload that
// failed validation empties the catalog; a transport error keeps the old
// catalog and is recorded in FetchErr. Loading is cleared in every case.
func (s State) CatalogFetched(items []model.Item, err error) State {
	s.Loading = false
	switch {
	case err == nil:
		s.Catalog = make([]model.Item, len(items))
		copy(s.Catalog, items)
		s.FetchErr = nil
	case errors.Is(err, schema.ErrInvalidCatalog):
		s.Catalog = []model.Item{}
		s.FetchErr = nil
	default:
		s.FetchErr = err
	}
	return s
}

// SelectItem makes the catalog item with id the selection, or clears the
// selection when no such item exists.
func (s State) SelectItem(id int) State {
	it, ok := model.FindItem(s.Catalog, id)
	if !ok {
		s.Selected = nil
		return s
	}
	s.Selected = &it
	return s
}

// UpdateAmount overwrites the pending quantity. No bounds are enforced.
func (s State) UpdateAmount(n int) State {
	s.Amount = n
	return s
}
