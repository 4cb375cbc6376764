package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	domainErrors "github.com/polkiloo/deeshop/internal/domain/errors"
	"github.com/polkiloo/deeshop/internal/domain/model"
	"github.com/polkiloo/deeshop/internal/server/http/dto"
	"github.com/polkiloo/deeshop/internal/test/facadestub"
	"github.com/polkiloo/deeshop/internal/usecase"
)

func TestPaymentHandlerCreateIntent(t *testing.T) {
	var got usecase.CardPaymentInput
	handler := NewPaymentHandler(&facadestub.Shop{CreateCardPaymentFn: func(_ context.Context, in usecase.CardPaymentInput) (*model.PaymentIntent, error) {
		got = in
		return &model.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret"}, nil
	}})

	body, _ := json.Marshal(dto.PaymentIntentRequest{
		Items:       []dto.PaymentItem{{ProductID: lampID.String(), Quantity: 2}},
		Shipping:    dto.ShippingAddress{Line1: "1 Main St", Name: "Dee", Phone: "123"},
		Description: "DeeShop order",
		Coupon:      &dto.Coupon{Name: "SAVE10", Discount: 10},
	})
	resp := performRequest(t, http.MethodPost, "/intent", "/intent", handler.CreateIntent, nil, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var out dto.PaymentIntentResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.ClientSecret != "pi_1_secret" {
		t.Fatalf("unexpected client secret %q", out.ClientSecret)
	}
	if len(got.Items) != 1 || got.Items[0].ProductID != lampID.String() || got.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items %+v", got.Items)
	}
	if got.Shipping.Name != "Dee" || got.Description != "DeeShop order" {
		t.Fatalf("unexpected input %+v", got)
	}
	if got.Coupon == nil || !got.Coupon.Applies() {
		t.Fatalf("expected applying coupon, got %+v", got.Coupon)
	}
}

func TestPaymentHandlerCreateIntentFailures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		body    string
		status  int
		message string
	}{
		{"malformed", nil, "{", http.StatusBadRequest, "Invalid payment request"},
		{"unknown product", domainErrors.NewValidationError("Invalid payment items"), `{"items":[]}`, http.StatusBadRequest, "Invalid payment items"},
		{"provider failure", &domainErrors.PaymentError{Provider: "stripe", Cause: errors.New("card_declined")}, `{"items":[]}`, http.StatusInternalServerError, "Failed to process payment"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewPaymentHandler(&facadestub.Shop{CreateCardPaymentFn: func(context.Context, usecase.CardPaymentInput) (*model.PaymentIntent, error) {
				return nil, tc.err
			}})
			resp := performRequest(t, http.MethodPost, "/intent", "/intent", handler.CreateIntent, nil, []byte(tc.body))
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
			if msg := decodeMessage(t, resp).Message; msg != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, msg)
			}
		})
	}
}

func TestPaymentHandlerFlutterwaveResponse(t *testing.T) {
	var gotID, gotStatus string
	handler := NewPaymentHandler(&facadestub.Shop{PaymentRedirectFn: func(_ context.Context, id, status string) string {
		gotID, gotStatus = id, status
		return "http://frontend.test/checkout-flutterwave?payment=successful&ref=abc"
	}})

	resp := performRequest(t, http.MethodGet, "/response", "/response?status=successful&tx_ref=abc&transaction_id=1163068",
		handler.FlutterwaveResponse, nil, nil)
	if resp.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); loc != "http://frontend.test/checkout-flutterwave?payment=successful&ref=abc" {
		t.Fatalf("unexpected redirect %q", loc)
	}
	if gotID != "1163068" || gotStatus != "successful" {
		t.Fatalf("unexpected query forwarding: id=%q status=%q", gotID, gotStatus)
	}
}
