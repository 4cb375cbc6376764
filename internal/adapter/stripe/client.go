package stripe

import (
	"context"
	"errors"
	"fmt"

	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"

	"github.com/polkiloo/deeshop/internal/domain/model"
)

// Client opens payment intents through the Stripe API.
type Client struct {
	api    *client.API
	logger *zap.Logger
}

// NewClient builds a Stripe client. An empty apiURL targets the public API.
// Network retries are disabled so a failed charge attempt is never repeated.
func NewClient(secretKey, apiURL string, logger *zap.Logger) (*Client, error) {
	if secretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}

	cfg := &stripego.BackendConfig{
		MaxNetworkRetries: stripego.Int64(0),
		LeveledLogger:     logger.Sugar(),
	}
	if apiURL != "" {
		cfg.URL = stripego.String(apiURL)
	}

	backends := &stripego.Backends{
		API:     stripego.GetBackendWithConfig(stripego.APIBackend, cfg),
		Connect: stripego.GetBackend(stripego.ConnectBackend),
		Uploads: stripego.GetBackend(stripego.UploadsBackend),
	}
	return &Client{api: client.New(secretKey, backends), logger: logger}, nil
}

// CreatePaymentIntent opens a pending charge with automatic payment methods.
func (c *Client) CreatePaymentIntent(ctx context.Context, req model.PaymentIntentRequest) (*model.PaymentIntent, error) {
	params := &stripego.PaymentIntentParams{
		Amount:   stripego.Int64(req.Amount),
		Currency: stripego.String(req.Currency),
		AutomaticPaymentMethods: &stripego.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripego.Bool(true),
		},
	}
	params.Context = ctx
	if req.Description != "" {
		params.Description = stripego.String(req.Description)
	}
	if shipping := shippingParams(req.Shipping); shipping != nil {
		params.Shipping = shipping
	}

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		var stripeErr *stripego.Error
		if errors.As(err, &stripeErr) {
			c.logger.Error("stripe rejected payment intent",
				zap.Int("status", stripeErr.HTTPStatusCode),
				zap.String("type", string(stripeErr.Type)),
				zap.String("code", string(stripeErr.Code)),
				zap.String("message", stripeErr.Msg),
			)
		} else {
			c.logger.Error("stripe request failed", zap.Error(err))
		}
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	return &model.PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret, Amount: pi.Amount}, nil
}

func shippingParams(a model.ShippingAddress) *stripego.ShippingDetailsParams {
	if a.IsZero() {
		return nil
	}
	address := &stripego.AddressParams{}
	setIfPresent(&address.Line1, a.Line1)
	setIfPresent(&address.Line2, a.Line2)
	setIfPresent(&address.City, a.City)
	setIfPresent(&address.Country, a.Country)
	setIfPresent(&address.PostalCode, a.PostalCode)

	shipping := &stripego.ShippingDetailsParams{Address: address}
	setIfPresent(&shipping.Name, a.Name)
	setIfPresent(&shipping.Phone, a.Phone)
	return shipping
}

func setIfPresent(dst **string, v string) {
	if v != "" {
		*dst = stripego.String(v)
	}
}
