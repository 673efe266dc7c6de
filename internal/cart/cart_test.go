package cart

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func testItem(title string, priceCents int) Item {
	return Item{
		ID:            uuid.New(),
		Title:         title,
		Author:        "Autor Desconhecido",
		PriceCents:    priceCents,
		CoverImageURL: "https://covers.test/" + title + ".jpg",
	}
}

func TestCart_AddNewAndExisting(t *testing.T) {
	c := NewCart()
	book := testItem("Dom Casmurro", 2500)

	result := c.Add(book)
	if result.Updated {
		t.Fatal("first add should report an insert")
	}
	if result.Title != "Dom Casmurro" {
		t.Fatalf("unexpected title %q", result.Title)
	}
	if got := c.Items()[0].Quantity; got != 1 {
		t.Fatalf("expected quantity 1, got %d", got)
	}

	result = c.Add(book)
	if !result.Updated {
		t.Fatal("second add should report an update")
	}
	if c.Len() != 1 {
		t.Fatalf("expected a single line, got %d", c.Len())
	}
	if got := c.Items()[0].Quantity; got != 2 {
		t.Fatalf("expected quantity 2, got %d", got)
	}
}

func TestCart_PreservesInsertionOrder(t *testing.T) {
	c := NewCart()
	first := testItem("Dom Casmurro", 2500)
	second := testItem("1984", 2800)
	third := testItem("O Alquimista", 3000)

	c.Add(first)
	c.Add(second)
	c.Add(third)
	c.Add(second)

	titles := []string{}
	for _, item := range c.Items() {
		titles = append(titles, item.Title)
	}
	want := []string{"Dom Casmurro", "1984", "O Alquimista"}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("position %d: want %q, got %q", i, want[i], titles[i])
		}
	}
}

func TestCart_Remove(t *testing.T) {
	c := NewCart()
	keep := testItem("Dom Casmurro", 2500)
	drop := testItem("1984", 2800)
	c.Add(keep)
	c.Add(drop)

	c.Remove(drop.ID)
	if c.Len() != 1 {
		t.Fatalf("expected one line after removal, got %d", c.Len())
	}
	if c.Items()[0].ID != keep.ID {
		t.Fatal("removal dropped the wrong line")
	}

	c.Remove(uuid.New())
	if c.Len() != 1 {
		t.Fatal("removing an absent id must be a no-op")
	}
}

func TestCart_SetQuantity(t *testing.T) {
	c := NewCart()
	book := testItem("Dom Casmurro", 2500)
	c.Add(book)

	c.SetQuantity(book.ID, 5)
	line := c.Items()[0]
	if line.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", line.Quantity)
	}
	if line.Title != book.Title || line.PriceCents != book.PriceCents {
		t.Fatal("quantity update must preserve the other fields")
	}

	c.SetQuantity(book.ID, 0)
	if !c.IsEmpty() {
		t.Fatal("quantity zero must remove the line")
	}

	c.Add(book)
	c.SetQuantity(book.ID, -3)
	if !c.IsEmpty() {
		t.Fatal("negative quantity must remove the line")
	}

	c.SetQuantity(uuid.New(), 4)
	if !c.IsEmpty() {
		t.Fatal("setting quantity for an absent id must be a no-op")
	}
}

func TestCart_Totals(t *testing.T) {
	c := NewCart()
	if c.TotalPriceCents() != 0 || c.TotalItemCount() != 0 {
		t.Fatal("empty cart must total zero")
	}

	first := testItem("Dom Casmurro", 2500)
	second := testItem("1984", 2800)
	c.Add(first)
	c.Add(first)
	c.Add(second)
	c.SetQuantity(second.ID, 3)

	if got := c.TotalPriceCents(); got != 2*2500+3*2800 {
		t.Fatalf("unexpected total price %d", got)
	}
	if got := c.TotalItemCount(); got != 5 {
		t.Fatalf("unexpected item count %d", got)
	}
}

func TestCart_EncodeDecodeRoundTrip(t *testing.T) {
	c := NewCart()
	book := testItem("Dom Casmurro", 2500)
	c.Add(book)
	c.Add(book)

	payload, err := c.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("payload is not a JSON array: %v", err)
	}
	for _, field := range []string{"id", "title", "author", "price", "cover_image_url", "quantity"} {
		if _, ok := raw[0][field]; !ok {
			t.Fatalf("serialized line is missing field %q", field)
		}
	}
	if raw[0]["price"] != float64(2500) {
		t.Fatalf("price must serialize as an integer cent amount, got %v", raw[0]["price"])
	}

	restored, err := DecodeCart(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if restored.Len() != 1 || restored.Items()[0].Quantity != 2 {
		t.Fatal("round trip lost cart state")
	}
	if restored.Items()[0].ID != book.ID {
		t.Fatal("round trip lost the book id")
	}
}

func TestCart_EncodeEmptyIsArray(t *testing.T) {
	payload, err := NewCart().Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(payload) != "[]" {
		t.Fatalf("empty cart must encode as [], got %s", payload)
	}
}
