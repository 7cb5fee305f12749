package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethods maps accepted payment method keys to their display names.
var PaymentMethods = map[string]string{
	"Cash":        "Cash On Delivery",
	"PayPal":      "PayPal",
	"Credit Card": "Credit Card",
}

// PaymentStatuses lists the accepted payment statuses. The first entry is
// the status assigned at order creation.
var PaymentStatuses = []string{"Pending", "Accepted", "Canceled"}

// OrderStatuses lists the accepted order statuses. The first entry is the
// status assigned at order creation.
var OrderStatuses = []string{"Created", "Accepted", "Canceled", "Shipped", "Delivered", "Returned"}

// ValidPaymentStatus reports whether s is one of the accepted payment statuses.
func ValidPaymentStatus(s string) bool {
	for _, v := range PaymentStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// ValidOrderStatus reports whether s is one of the accepted order statuses.
func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// OrderItem is a single line of an order. The unit price is frozen at order
// creation time and never recomputed from the catalog.
type OrderItem struct {
	ID        int             `json:"id" gorm:"primaryKey"`
	OrderID   int             `json:"order_id" gorm:"index"`
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:numeric(16,2)"`
}

// Order represents a customer order. Items carry no back-reference to their
// order; consumers that need the parent look it up by OrderID.
type Order struct {
	ID              int             `json:"id" gorm:"primaryKey"`
	UserID          int             `json:"user_id" gorm:"index"`
	CreatedAt       time.Time       `json:"created_at"`
	ShippingFee     decimal.Decimal `json:"shipping_fee" gorm:"type:numeric(16,2)"`
	DeliveryAddress string          `json:"delivery_address" gorm:"type:varchar(100)"`
	PaymentMethod   string          `json:"payment_method" gorm:"type:varchar(30)"`
	PaymentStatus   string          `json:"payment_status" gorm:"type:varchar(30)"`
	OrderStatus     string          `json:"order_status" gorm:"type:varchar(30)"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
}

// Subtotal sums unit price times quantity over all items.
func (o *Order) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}

// Total is the subtotal plus the shipping fee frozen on the order.
func (o *Order) Total() decimal.Decimal {
	return o.Subtotal().Add(o.ShippingFee)
}
