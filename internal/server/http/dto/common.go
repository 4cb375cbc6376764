package dto

import domainErrors "github.com/polkiloo/deeshop/internal/domain/errors"

// MessageResponse is the body of simple acknowledgements and errors.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse describes a rejected request.
type ErrorResponse struct {
	Message string                          `json:"message"`
	Details []domainErrors.ValidationDetail `json:"details,omitempty"`
}

// ShippingAddress is shared by checkout and payment payloads.
type ShippingAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
}

// Coupon is a discount code with its percentage.
type Coupon struct {
	Name     string  `json:"name"`
	Discount float64 `json:"discount"`
}
