// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/pos-backend/internal/domain/pricing"
	"github.com/your-org/pos-backend/internal/domain/product"
)

// Item represents one ticket line. UnitPrice is the discounted price
// snapshotted when the line was added; catalog price changes after that do
// not affect it.
type Item struct {
	ProductID uint      `json:"product_id"`
	Barcode   string    `json:"barcode"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"` // millimes
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// LineTotal returns the line total in millimes
func (i Item) LineTotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// TerminalCart represents the transient cart of one terminal session,
// ordered most-recently-added first and unique by product. It exists only
// while a ticket is being built; it is cleared on finalize or cancel.
type TerminalCart struct {
	TerminalID string    `json:"terminal_id"`
	Items      []Item    `json:"items"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewTerminalCart creates an empty cart for a terminal
func NewTerminalCart(terminalID string, now time.Time) *TerminalCart {
	return &TerminalCart{
		TerminalID: terminalID,
		Items:      []Item{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// AddItem adds a product to the cart. It is a no-op when the product has no
// stock or the quantity is not positive. Re-adding a product merges into the
// existing line instead of duplicating it; new lines are inserted at the
// front. Stock is not capped here: overselling is resolved at finalize time
// against global inventory. Returns true when the cart changed.
func (c *TerminalCart) AddItem(p *product.Product, quantity int, now time.Time) bool {
	if p == nil || p.StockQuantity <= 0 || quantity < 1 {
		return false
	}

	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].Quantity += quantity
			c.UpdatedAt = now
			return true
		}
	}

	item := Item{
		ProductID: p.ID,
		Barcode:   p.Barcode,
		Name:      p.Name,
		UnitPrice: pricing.ResolveUnitPrice(p.SellPrice, p.DiscountPercentage),
		Quantity:  quantity,
		AddedAt:   now,
	}
	c.Items = append([]Item{item}, c.Items...)
	c.UpdatedAt = now
	return true
}

// SetQuantity replaces a line's quantity with an absolute value. It is a
// no-op when the quantity is below 1 or the product is not in the cart.
// Returns true when the cart changed.
func (c *TerminalCart) SetQuantity(productID uint, quantity int, now time.Time) bool {
	if quantity < 1 {
		return false
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			c.UpdatedAt = now
			return true
		}
	}
	return false
}

// RemoveItem removes a line from the cart. Returns true when the cart changed.
func (c *TerminalCart) RemoveItem(productID uint, now time.Time) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = now
			return true
		}
	}
	return false
}

// Clear empties the cart
func (c *TerminalCart) Clear(now time.Time) {
	c.Items = []Item{}
	c.UpdatedAt = now
}

// IsEmpty reports whether the cart has no lines
func (c *TerminalCart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Lines projects the cart onto pricing lines
func (c *TerminalCart) Lines() []pricing.Line {
	lines := make([]pricing.Line, len(c.Items))
	for i, item := range c.Items {
		lines[i] = pricing.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity}
	}
	return lines
}
