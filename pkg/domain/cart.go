package domain

import (
	"github.com/shopspring/decimal"
)

// Cart accumulates the items selected during an ordering flow.
// Items keep selection order and may contain duplicates.
type Cart struct {
	Items []string        `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{
		Items: []string{},
		Total: decimal.Zero,
	}
}

// Add appends an item description and adds its price to the total.
func (c *Cart) Add(description string, price decimal.Decimal) {
	c.Items = append(c.Items, description)
	c.Total = c.Total.Add(price)
}

// IsEmpty reports whether no item has been selected yet.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// Carried reports whether the cart holds anything worth carrying into a new
// prompt. An empty default cart is not a carry-over.
func (c *Cart) Carried() bool {
	if c == nil {
		return false
	}
	return len(c.Items) > 0 || !c.Total.IsZero()
}

// Clone returns a deep copy of the cart.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	items := make([]string, len(c.Items))
	copy(items, c.Items)
	return &Cart{
		Items: items,
		Total: c.Total,
	}
}

// FormatMoney renders an amount with exactly two decimals (e.g. "4.50").
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatTotal renders the total with FormatMoney.
func (c *Cart) FormatTotal() string {
	if c == nil {
		return FormatMoney(decimal.Zero)
	}
	return FormatMoney(c.Total)
}
