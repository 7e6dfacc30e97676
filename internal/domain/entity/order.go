// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultShippingPrice is charged on every non-empty order.
const DefaultShippingPrice = 10.0

// PaymentMethodPayPal is the single payment method the storefront supports.
const PaymentMethodPayPal = "PayPal"

// OrderItem is one line of an order. Name, Image and Price are snapshots taken
// from the product at checkout time so later catalog edits never rewrite history.
type OrderItem struct {
	ProductID uuid.UUID // Reference to the ordered product.
	Name      string    // Display name snapshot.
	Image     string    // Image path snapshot.
	Price     float64   // Unit price snapshot.
	Quantity  int       // Ordered quantity, always positive.
}

// Subtotal returns the line total for this item.
func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// ShippingAddress is the destination of an order.
type ShippingAddress struct {
	Address    string
	City       string
	PostalCode string
	Country    string
}

// Order is a completed checkout owned by exactly one user. Its price fields are
// computed once at creation and never recomputed; only Status changes afterwards,
// and only through the transition table in order_status.go.
type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID // The owning principal.
	Items           []OrderItem
	ShippingAddress ShippingAddress
	PaymentMethod   string
	ItemsPrice      float64
	TaxPrice        float64
	ShippingPrice   float64
	TotalPrice      float64 // Invariant: ItemsPrice + TaxPrice + ShippingPrice.
	Status          OrderStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ComputePrices fills in the price fields from the line items.
// Shipping is flat-rate on any non-empty order; tax is kept as an explicit
// field so the total invariant stays observable even while the rate is zero.
func (o *Order) ComputePrices() {
	var subtotal float64
	for _, item := range o.Items {
		subtotal += item.Subtotal()
	}

	o.ItemsPrice = subtotal
	o.TaxPrice = 0
	if subtotal > 0 {
		o.ShippingPrice = DefaultShippingPrice
	} else {
		o.ShippingPrice = 0
	}
	o.TotalPrice = o.ItemsPrice + o.TaxPrice + o.ShippingPrice
}

// IsOwnedBy reports whether the given user owns this order.
func (o *Order) IsOwnedBy(userID uuid.UUID) bool {
	return o.UserID == userID
}
