package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is an ordered product line.
type CartItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// CreateOrderRequest describes checkout payload.
type CreateOrderRequest struct {
	OrderDate       string           `json:"orderDate"`
	OrderTime       string           `json:"orderTime"`
	OrderAmount     decimal.Decimal  `json:"orderAmount"`
	OrderStatus     string           `json:"orderStatus"`
	CartItems       []CartItem       `json:"cartItems"`
	ShippingAddress *ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string           `json:"paymentMethod"`
	Coupon          *Coupon          `json:"coupon"`
}

// UpdateOrderStatusRequest changes order status.
type UpdateOrderStatusRequest struct {
	OrderStatus string `json:"orderStatus"`
}

type CartItemResponse struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderResponse describes a stored order.
type OrderResponse struct {
	ID              string             `json:"_id"`
	User            int64              `json:"user"`
	OrderDate       string             `json:"orderDate"`
	OrderTime       string             `json:"orderTime"`
	OrderAmount     float64            `json:"orderAmount"`
	OrderStatus     string             `json:"orderStatus"`
	CartItems       []CartItemResponse `json:"cartItems"`
	ShippingAddress ShippingAddress    `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	Coupon          *Coupon            `json:"coupon,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}
