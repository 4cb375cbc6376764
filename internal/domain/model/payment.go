package model

// PaymentItem is a product reference and quantity submitted for card payment.
type PaymentItem struct {
	ProductID string
	Quantity  int
}

// PaymentIntentRequest carries everything the card provider needs to open a charge.
type PaymentIntentRequest struct {
	Amount      int64
	Currency    string
	Description string
	Shipping    ShippingAddress
}

// PaymentIntent is the provider-side pending charge.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       int64
}

const (
	verifyStatusSuccess      = "success"
	TransactionStatusSuccess = "successful"
)

// TransactionVerification is the redirect-gateway's answer for a transaction.
type TransactionVerification struct {
	TransactionID     string
	Status            string
	TxRef             string
	TransactionStatus string
	Amount            float64
	Currency          string
}

// Successful reports whether the provider confirmed the transaction was paid.
func (v *TransactionVerification) Successful() bool {
	return v != nil && v.Status == verifyStatusSuccess && v.TransactionStatus == TransactionStatusSuccess
}
