package model

// Item is one orderable catalog entry.
// Identity is ID; items are never mutated after a fetch.
type Item struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Toppings []string `json:"toppings"`
	URL      string   `json:"url"`
}

// FindItem does a linear search over the catalog.
// Catalogs are small, so no index is kept.
func FindItem(catalog []Item, id int) (Item, bool) {
	for _, it := range catalog {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
