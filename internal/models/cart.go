package models

import "github.com/shopspring/decimal"

// CartItem is a product with the quantity requested in the cart.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is the priced, read-only preview of a cart identifier string. Prices
// reflect the catalog at preview time and are not stored anywhere.
type Cart struct {
	Items       []CartItem      `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	Total       decimal.Decimal `json:"total"`
}
