package cart

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Item is one cart line. The JSON field names are the persistence contract;
// carts serialized by earlier sessions must keep round-tripping.
type Item struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	PriceCents    int       `json:"price"`
	CoverImageURL string    `json:"cover_image_url"`
	Quantity      int       `json:"quantity"`
}

// AddResult reports which branch an Add took, so callers can phrase the
// user-facing notification.
type AddResult struct {
	Updated bool
	Title   string
}

// Cart is the in-memory line set. It preserves insertion order and does all
// money math in integer centavos. It is not safe for concurrent use; the
// service layer serializes access per user through its load/save boundary.
type Cart struct {
	items []Item
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// DecodeCart rebuilds a cart from its serialized form.
func DecodeCart(payload []byte) (*Cart, error) {
	var items []Item
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, err
	}
	return &Cart{items: items}, nil
}

// Encode serializes the cart as a JSON array of lines.
func (c *Cart) Encode() ([]byte, error) {
	items := c.items
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(items)
}

// Add inserts the book with quantity one, or increments the existing line.
func (c *Cart) Add(item Item) AddResult {
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity++
			return AddResult{Updated: true, Title: c.items[i].Title}
		}
	}
	item.Quantity = 1
	c.items = append(c.items, item)
	return AddResult{Updated: false, Title: item.Title}
}

// Remove deletes the line with the given id. Absent ids are a no-op.
func (c *Cart) Remove(id uuid.UUID) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces a line's quantity, preserving all other fields.
// A quantity of zero or less removes the line. Absent ids are a no-op.
func (c *Cart) SetQuantity(id uuid.UUID, quantity int) {
	if quantity <= 0 {
		c.Remove(id)
		return
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// TotalPriceCents sums price times quantity across all lines.
func (c *Cart) TotalPriceCents() int64 {
	var total int64
	for _, item := range c.items {
		total += int64(item.PriceCents) * int64(item.Quantity)
	}
	return total
}

// TotalItemCount sums the quantities across all lines.
func (c *Cart) TotalItemCount() int {
	var count int
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}
