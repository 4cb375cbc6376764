package dto

type PaymentItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PaymentIntentRequest describes a card payment checkout.
type PaymentIntentRequest struct {
	Items       []PaymentItem   `json:"items"`
	Shipping    ShippingAddress `json:"shipping"`
	Description string          `json:"description"`
	Coupon      *Coupon         `json:"coupon"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
