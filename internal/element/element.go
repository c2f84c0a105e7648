// Package element enumerates the identities shared by the view projection
// and the event dispatcher. A control is found by its ID at event time, so
// these names are the wiring contract between rendering and input handling.
package element

import (
	"strconv"
	"strings"
)

// ID identifies a region or a control on screen.
type ID string

// Regions.
const (
	Catalog   ID = "list"
	Selection ID = "selected"
	Order     ID = "order"
)

// Controls.
const (
	Amount ID = "amount"
	Add    ID = "add"
	Name   ID = "name"
	Zip    ID = "zip"
	Send   ID = "send"
)

const removePrefix = "remove_"

// RemoveButton is the control that drops the order line for itemID.
func RemoveButton(itemID int) ID {
	return ID(removePrefix + strconv.Itoa(itemID))
}

// ParseRemoveButton reports the item id carried by a remove control.
func ParseRemoveButton(id ID) (int, bool) {
	rest, found := strings.CutPrefix(string(id), removePrefix)
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CatalogEntry tags a catalog row with the item id it shows.
func CatalogEntry(itemID int) ID {
	return ID(strconv.Itoa(itemID))
}

// ParseCatalogEntry is the inverse of CatalogEntry.
func ParseCatalogEntry(id ID) (int, bool) {
	n, err := strconv.Atoi(string(id))
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsTextInput reports whether id names a control that accepts typed text.
func IsTextInput(id ID) bool {
	switch id {
	case Amount, Name, Zip:
		return true
	}
	return false
}
