package pickups

import "strconv"

// Draft mirrors the schedule form's item list: it starts with a single
// line and never drops below one item.
type Draft struct {
	items  []PickupItem
	nextID int
}

// NewDraft starts a draft with one line of the given type, quantity 1.
func NewDraft(itemType string) *Draft {
	return &Draft{
		items:  []PickupItem{{ID: "1", Type: itemType, Quantity: 1}},
		nextID: 2,
	}
}

// AddItem appends a new line with quantity 1 and returns it.
func (d *Draft) AddItem(itemType string) PickupItem {
	it := PickupItem{ID: strconv.Itoa(d.nextID), Type: itemType, Quantity: 1}
	d.nextID++
	d.items = append(d.items, it)
	return it
}

// RemoveItem deletes a line by id and reports whether anything changed.
// The last remaining line cannot be removed.
func (d *Draft) RemoveItem(id string) bool {
	if len(d.items) <= 1 {
		return false
	}
	for i := range d.items {
		if d.items[i].ID == id {
			d.items = append(d.items[:i], d.items[i+1:]...)
			return true
		}
	}
	return false
}

// SetQuantity updates a line's quantity with a floor of one.
func (d *Draft) SetQuantity(id string, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range d.items {
		if d.items[i].ID == id {
			d.items[i].Quantity = qty
			return
		}
	}
}

// SetType changes a line's category.
func (d *Draft) SetType(id, itemType string) {
	for i := range d.items {
		if d.items[i].ID == id {
			d.items[i].Type = itemType
			return
		}
	}
}

// Items returns a copy of the current lines.
func (d *Draft) Items() []PickupItem {
	out := make([]PickupItem, len(d.items))
	copy(out, d.items)
	return out
}
