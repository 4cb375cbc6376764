package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/polkiloo/deeshop/internal/config"
	domainErrors "github.com/polkiloo/deeshop/internal/domain/errors"
	"github.com/polkiloo/deeshop/internal/domain/model"
	testhelpers "github.com/polkiloo/deeshop/internal/test"
)

var (
	lampID = uuid.MustParse("0b8e2d6a-6f1c-4c59-8d0a-1f2e3d4c5b6a")
	rugID  = uuid.MustParse("7d1e9a43-2b6c-4f0e-a5d8-9c3b2a1f0e4d")
)

func newPaymentUseCase(card *testhelpers.CardProviderStub, verifier *testhelpers.VerifierStub) *PaymentUseCase {
	products := testhelpers.NewProductRepositoryStub(
		model.Product{ID: lampID, Name: "Lamp", Price: decimal.NewFromInt(40), Quantity: 10},
		model.Product{ID: rugID, Name: "Rug", Price: decimal.RequireFromString("12.5"), Quantity: 10},
	)
	return NewPaymentUseCase(PaymentParams{
		Products: products,
		Card:     card,
		Verifier: verifier,
		Config: &config.Config{
			FrontendURL: "https://shop.example.com",
			Stripe:      config.StripeConfig{Currency: "gbp"},
		},
		Logger: zap.NewNop(),
	})
}

func TestPaymentUseCaseCreateCardPayment(t *testing.T) {
	card := &testhelpers.CardProviderStub{}
	uc := newPaymentUseCase(card, &testhelpers.VerifierStub{})

	shipping := model.ShippingAddress{Line1: "1 High St", City: "London", Country: "GB", Name: "Dee"}
	intent, err := uc.CreateCardPayment(context.Background(), CardPaymentInput{
		Items: []model.PaymentItem{
			{ProductID: lampID.String(), Quantity: 2},
			{ProductID: rugID.String(), Quantity: 2},
		},
		Shipping:    shipping,
		Description: "DeeShop order",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.ClientSecret != "pi_test_secret" {
		t.Fatalf("unexpected intent %+v", intent)
	}
	if len(card.Requests) != 1 {
		t.Fatalf("expected one provider call, got %d", len(card.Requests))
	}
	req := card.Requests[0]
	if req.Amount != 10500 || req.Currency != "gbp" || req.Description != "DeeShop order" || req.Shipping != shipping {
		t.Fatalf("unexpected provider request %+v", req)
	}
}

func TestPaymentUseCaseQuoteAppliesCoupon(t *testing.T) {
	uc := newPaymentUseCase(&testhelpers.CardProviderStub{}, &testhelpers.VerifierStub{})
	items := []model.PaymentItem{{ProductID: lampID.String(), Quantity: 2}, {ProductID: rugID.String(), Quantity: 1}}

	cases := []struct {
		name   string
		coupon *model.Coupon
		want   string
	}{
		{"no coupon", nil, "92.5"},
		{"none sentinel", &model.Coupon{Name: "none", Discount: decimal.NewFromInt(50)}, "92.5"},
		{"ten percent", &model.Coupon{Name: "WELCOME10", Discount: decimal.NewFromInt(10)}, "83.25"},
		{"full discount", &model.Coupon{Name: "FREE", Discount: decimal.NewFromInt(100)}, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uc.Quote(context.Background(), items, tc.coupon)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestPaymentUseCaseMergesRepeatedItems(t *testing.T) {
	card := &testhelpers.CardProviderStub{}
	uc := newPaymentUseCase(card, &testhelpers.VerifierStub{})

	_, err := uc.CreateCardPayment(context.Background(), CardPaymentInput{
		Items:  []model.PaymentItem{{ProductID: lampID.String(), Quantity: 2}, {ProductID: lampID.String(), Quantity: 1}, {ProductID: rugID.String(), Quantity: 0}},
		Coupon: &model.Coupon{Name: "WELCOME10", Discount: decimal.NewFromInt(10)},
	})
	if !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("zero quantity must be rejected, got %v", err)
	}

	_, err = uc.CreateCardPayment(context.Background(), CardPaymentInput{
		Items: []model.PaymentItem{
			{ProductID: lampID.String(), Quantity: 2},
			{ProductID: rugID.String(), Quantity: 1},
			{ProductID: rugID.String(), Quantity: 1},
		},
		Coupon: &model.Coupon{Name: "WELCOME10", Discount: decimal.NewFromInt(10)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 2*40 + 2*12.50 = 105.00, minus 10% = 94.50
	if got := card.Requests[0].Amount; got != 9450 {
		t.Fatalf("expected 9450 minor units, got %d", got)
	}
}

func TestPaymentUseCaseQuoteValidation(t *testing.T) {
	uc := newPaymentUseCase(&testhelpers.CardProviderStub{}, &testhelpers.VerifierStub{})

	cases := map[string]struct {
		items  []model.PaymentItem
		coupon *model.Coupon
	}{
		"no items":        {nil, nil},
		"malformed id":    {[]model.PaymentItem{{ProductID: "x", Quantity: 1}}, nil},
		"unknown product": {[]model.PaymentItem{{ProductID: uuid.NewString(), Quantity: 1}}, nil},
		"bad coupon":      {[]model.PaymentItem{{ProductID: lampID.String(), Quantity: 1}}, &model.Coupon{Name: "X", Discount: decimal.NewFromInt(101)}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := uc.Quote(context.Background(), tc.items, tc.coupon); !errors.Is(err, domainErrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestPaymentUseCaseProviderFailure(t *testing.T) {
	card := &testhelpers.CardProviderStub{Err: errors.New("card_declined: your card was declined")}
	uc := newPaymentUseCase(card, &testhelpers.VerifierStub{})

	_, err := uc.CreateCardPayment(context.Background(), CardPaymentInput{
		Items: []model.PaymentItem{{ProductID: lampID.String(), Quantity: 1}},
	})
	if !errors.Is(err, domainErrors.ErrPaymentProcessing) {
		t.Fatalf("expected payment processing error, got %v", err)
	}
	var perr *domainErrors.PaymentError
	if !errors.As(err, &perr) || perr.Provider != "stripe" {
		t.Fatalf("expected stripe payment error, got %v", err)
	}
}

func TestPaymentUseCaseRedirectURL(t *testing.T) {
	successful := &model.TransactionVerification{Status: "success", TransactionStatus: "successful", TxRef: "ref 42"}
	pending := &model.TransactionVerification{Status: "success", TransactionStatus: "pending", TxRef: "ref-43"}
	const (
		success = "https://shop.example.com/checkout-flutterwave?payment=successful&ref=ref+42"
		failure = "https://shop.example.com/checkout-flutterwave?payment=failed"
	)

	cases := []struct {
		name     string
		id       string
		status   string
		verifier *testhelpers.VerifierStub
		want     string
	}{
		{"verified success", "42", "successful", &testhelpers.VerifierStub{Verification: successful}, success},
		{"query says cancelled", "42", "cancelled", &testhelpers.VerifierStub{Verification: successful}, failure},
		{"provider says pending", "43", "successful", &testhelpers.VerifierStub{Verification: pending}, failure},
		{"verification error", "44", "successful", &testhelpers.VerifierStub{Err: errors.New("timeout")}, failure},
		{"missing transaction", "", "successful", &testhelpers.VerifierStub{Verification: successful}, failure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := newPaymentUseCase(&testhelpers.CardProviderStub{}, tc.verifier)
			if got := uc.RedirectURL(context.Background(), tc.id, tc.status); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
