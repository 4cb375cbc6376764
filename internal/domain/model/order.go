package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus describes the fulfilment lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPlaced     OrderStatus = "Order Placed..."
	OrderStatusProcessing OrderStatus = "Processing..."
	OrderStatusShipped    OrderStatus = "Shipped..."
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether status is one of the known lifecycle values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPlaced, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentMethod names the channel the customer chose at checkout.
type PaymentMethod string

const (
	PaymentMethodStripe      PaymentMethod = "stripe"
	PaymentMethodFlutterwave PaymentMethod = "flutterwave"
	PaymentMethodPaypal      PaymentMethod = "paypal"
	PaymentMethodWallet      PaymentMethod = "wallet"
)

// Valid reports whether method is supported.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodStripe, PaymentMethodFlutterwave, PaymentMethodPaypal, PaymentMethodWallet:
		return true
	}
	return false
}

// CartItem is a single product line of an order.
type CartItem struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Subtotal returns price multiplied by quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ShippingAddress is the delivery destination and contact.
type ShippingAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
}

// IsZero reports whether no address field was provided.
func (a ShippingAddress) IsZero() bool {
	return a == ShippingAddress{}
}

// CouponNone is the coupon name clients send when no discount applies.
const CouponNone = "none"

// Coupon is a named percentage discount.
type Coupon struct {
	Name     string          `json:"name"`
	Discount decimal.Decimal `json:"discount"`
}

// Applies reports whether the coupon carries a real discount.
// "nil" is accepted as a legacy spelling of "none".
func (c *Coupon) Applies() bool {
	if c == nil {
		return false
	}
	name := strings.TrimSpace(strings.ToLower(c.Name))
	return name != "" && name != CouponNone && name != "nil"
}

// Apply reduces amount by the coupon percentage.
func (c *Coupon) Apply(amount decimal.Decimal) decimal.Decimal {
	if !c.Applies() {
		return amount
	}
	off := amount.Mul(c.Discount).Div(decimal.NewFromInt(100))
	return amount.Sub(off)
}

// Order is a persisted purchase request.
type Order struct {
	ID              uuid.UUID
	UserID          int64
	OrderDate       string
	OrderTime       string
	Amount          decimal.Decimal
	Status          OrderStatus
	CartItems       []CartItem
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod
	Coupon          *Coupon
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// MinorUnits converts a currency amount to integer minor units (pence, cents).
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// FromMinorUnits converts integer minor units back to a currency amount.
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}
