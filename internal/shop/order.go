package shop

import (
	"github.com/idilsaglam/pizza/internal/element"
	"github.com/idilsaglam/pizza/internal/model"
)

// AddSelectedToOrder upserts a line for the selected item at the pending
// amount. The line always ends up last. A new order starts with empty
// contact details.
func (s State) AddSelectedToOrder() (State, error) {
	if s.Selected == nil {
		return s, ErrNoSelection
	}
	line := model.OrderLine{ItemID: s.Selected.ID, Amount: s.Amount}

	if s.Order == nil {
		s.Order = &model.Order{Items: []model.OrderLine{line}}
		return s, nil
	}
	next := model.Order{
		Name:    s.Order.Name,
		ZipCode: s.Order.ZipCode,
		Items:   append(withoutLine(s.Order.Items, line.ItemID), line),
	}
	s.Order = &next
	return s, nil
}

// RemoveLine drops every line for itemID. Removing the last line discards
// the order, contact details included.
func (s State) RemoveLine(itemID int) (State, error) {
	if s.Order == nil {
		return s, ErrNoOrder
	}
	items := withoutLine(s.Order.Items, itemID)
	if len(items) == 0 {
		s.Order = nil
		return s, nil
	}
	next := model.Order{Name: s.Order.Name, ZipCode: s.Order.ZipCode, Items: items}
	s.Order = &next
	return s, nil
}

// CaptureContactDetails copies the name and zip inputs into the order.
// An absent input reads as "".
func (s State) CaptureContactDetails(in Inputs) (State, error) {
	if s.Order == nil {
		return s, ErrNoOrder
	}
	next := s.Order.Clone()
	next.Name = inputValue(in, element.Name)
	next.ZipCode = inputValue(in, element.Zip)
	s.Order = &next
	return s, nil
}

// PrepareSubmit captures contact details and returns the order to send.
// The order stays in place afterwards; sending again resends it.
func (s State) PrepareSubmit(in Inputs) (State, model.Order, error) {
	next, err := s.CaptureContactDetails(in)
	if err != nil {
		return s, model.Order{}, err
	}
	return next, next.Order.Clone(), nil
}

// SubmitStarted records an outstanding submission.
func (s State) SubmitStarted() State {
	s.InFlight++
	s.SendErr = nil
	return s
}

// SubmitFinished records the outcome of one submission.
func (s State) SubmitFinished(err error) State {
	if s.InFlight > 0 {
		s.InFlight--
	}
	s.SendErr = err
	return s
}

func withoutLine(lines []model.OrderLine, itemID int) []model.OrderLine {
	out := make([]model.OrderLine, 0, len(lines)+1)
	for _, l := range lines {
		if l.ItemID != itemID {
			out = append(out, l)
		}
	}
	return out
}

func inputValue(in Inputs, id element.ID) string {
	if in == nil {
		return ""
	}
	v, ok := in.InputValue(id)
	if !ok {
		return ""
	}
	return v
}
