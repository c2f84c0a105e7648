package model

// OrderLine pairs an item id with a quantity.
// The wire key for ItemID is "id".
type OrderLine struct {
	ItemID int `json:"id"`
	Amount int `json:"amount"`
}

// Order is the cart plus the contact details sent with it.
type Order struct {
	Name    string      `json:"name"`
	ZipCode string      `json:"zipCode"`
	Items   []OrderLine `json:"items"`
}

// Clone returns a copy that shares no slice memory with o.
func (o Order) Clone() Order {
	items := make([]OrderLine, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
