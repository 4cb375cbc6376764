package usecase

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/deeshop/internal/config"
	domainErrors "github.com/polkiloo/deeshop/internal/domain/errors"
	"github.com/polkiloo/deeshop/internal/domain/model"
	"github.com/polkiloo/deeshop/internal/domain/repository"
)

// CardPaymentProvider opens charges with the card processor.
type CardPaymentProvider interface {
	CreatePaymentIntent(ctx context.Context, req model.PaymentIntentRequest) (*model.PaymentIntent, error)
}

// TransactionVerifier confirms redirect-gateway transactions.
type TransactionVerifier interface {
	VerifyTransaction(ctx context.Context, transactionID string) (*model.TransactionVerification, error)
}

// CardPaymentInput is the checkout summary submitted for a card payment.
type CardPaymentInput struct {
	Items       []model.PaymentItem
	Shipping    model.ShippingAddress
	Description string
	Coupon      *model.Coupon
}

// PaymentUseCase prices card payments and resolves redirect-gateway outcomes.
type PaymentUseCase struct {
	products    repository.ProductRepository
	card        CardPaymentProvider
	verifier    TransactionVerifier
	currency    string
	frontendURL string
	logger      *zap.Logger
}

type PaymentParams struct {
	fx.In

	Products repository.ProductRepository
	Card     CardPaymentProvider
	Verifier TransactionVerifier
	Config   *config.Config
	Logger   *zap.Logger
}

func NewPaymentUseCase(p PaymentParams) *PaymentUseCase {
	return &PaymentUseCase{
		products:    p.Products,
		card:        p.Card,
		verifier:    p.Verifier,
		currency:    p.Config.Stripe.Currency,
		frontendURL: p.Config.FrontendURL,
		logger:      p.Logger.Named("payments"),
	}
}

// CreateCardPayment prices the items from the catalogue, applies the coupon
// and opens a payment intent. Provider failures surface as ErrPaymentProcessing.
func (u *PaymentUseCase) CreateCardPayment(ctx context.Context, in CardPaymentInput) (*model.PaymentIntent, error) {
	amount, err := u.Quote(ctx, in.Items, in.Coupon)
	if err != nil {
		return nil, err
	}

	intent, err := u.card.CreatePaymentIntent(ctx, model.PaymentIntentRequest{
		Amount:      model.MinorUnits(amount),
		Currency:    u.currency,
		Description: in.Description,
		Shipping:    in.Shipping,
	})
	if err != nil {
		u.logger.Error("create payment intent failed",
			zap.String("amount", amount.StringFixed(2)),
			zap.String("currency", u.currency),
			zap.Error(err),
		)
		return nil, &domainErrors.PaymentError{Provider: "stripe", Cause: err}
	}
	return intent, nil
}

// Quote returns the payable amount for items at current catalogue prices.
func (u *PaymentUseCase) Quote(ctx context.Context, items []model.PaymentItem, coupon *model.Coupon) (decimal.Decimal, error) {
	if len(items) == 0 {
		return decimal.Zero, domainErrors.NewValidationError("No items to pay for", domainErrors.ValidationDetail{
			Field: "items", Message: "is required",
		})
	}
	if details := couponErrors(coupon); len(details) > 0 {
		return decimal.Zero, domainErrors.NewValidationError("Invalid coupon", details...)
	}

	var details []domainErrors.ValidationDetail
	ids := make([]uuid.UUID, 0, len(items))
	quantities := make(map[uuid.UUID]int, len(items))
	for i, item := range items {
		id, err := uuid.Parse(item.ProductID)
		if err != nil {
			details = append(details, domainErrors.ValidationDetail{
				Field: fmt.Sprintf("items[%d].productId", i), Message: "is not a valid product id",
			})
			continue
		}
		if item.Quantity < 1 {
			details = append(details, domainErrors.ValidationDetail{
				Field: fmt.Sprintf("items[%d].quantity", i), Message: "must be at least 1",
			})
			continue
		}
		if _, seen := quantities[id]; !seen {
			ids = append(ids, id)
		}
		quantities[id] += item.Quantity
	}
	if len(details) > 0 {
		return decimal.Zero, domainErrors.NewValidationError("Invalid payment items", details...)
	}

	products, err := u.products.GetByIDs(ctx, ids)
	if err != nil {
		return decimal.Zero, err
	}
	prices := make(map[uuid.UUID]decimal.Decimal, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}

	total := decimal.Zero
	for _, id := range ids {
		price, ok := prices[id]
		if !ok {
			details = append(details, domainErrors.ValidationDetail{Field: "items", Message: "unknown product " + id.String()})
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(quantities[id]))))
	}
	if len(details) > 0 {
		return decimal.Zero, domainErrors.NewValidationError("Invalid payment items", details...)
	}

	return coupon.Apply(total), nil
}

// RedirectURL verifies the transaction and picks the frontend page to send
// the customer to. Success needs both the redirect status and the verified
// provider record to report a completed payment.
func (u *PaymentUseCase) RedirectURL(ctx context.Context, transactionID, status string) string {
	failure := u.frontendURL + "/checkout-flutterwave?payment=failed"
	if transactionID == "" {
		return failure
	}

	verification, err := u.verifier.VerifyTransaction(ctx, transactionID)
	if err != nil {
		u.logger.Warn("transaction verification failed",
			zap.String("transaction_id", transactionID),
			zap.Error(err),
		)
		return failure
	}

	if status != model.TransactionStatusSuccess || !verification.Successful() {
		u.logger.Info("transaction not successful",
			zap.String("transaction_id", transactionID),
			zap.String("redirect_status", status),
			zap.String("verified_status", verification.TransactionStatus),
		)
		return failure
	}

	return u.frontendURL + "/checkout-flutterwave?payment=successful&ref=" + url.QueryEscape(verification.TxRef)
}
