package domain

import "github.com/shopspring/decimal"

// CartLine is a product snapshot plus the quantity selected for purchase.
// Quantity is always >= 1; a line whose quantity would drop to 0 is removed
// from the cart instead.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Total returns price multiplied by the selected quantity.
func (l CartLine) Total() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
