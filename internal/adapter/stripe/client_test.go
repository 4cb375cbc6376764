package stripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/polkiloo/deeshop/internal/domain/model"
)

func TestNewClientRequiresSecret(t *testing.T) {
	_, err := NewClient("", "", zap.NewNop())
	assert.Error(t, err)
}

func TestCreatePaymentIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseForm())

		assert.Equal(t, "10500", r.PostForm.Get("amount"))
		assert.Equal(t, "gbp", r.PostForm.Get("currency"))
		assert.Equal(t, "true", r.PostForm.Get("automatic_payment_methods[enabled]"))
		assert.Equal(t, "DeeShop order", r.PostForm.Get("description"))
		assert.Equal(t, "Ada Lovelace", r.PostForm.Get("shipping[name]"))
		assert.Equal(t, "+44 20 0000", r.PostForm.Get("shipping[phone]"))
		assert.Equal(t, "1 Main St", r.PostForm.Get("shipping[address][line1]"))
		assert.Equal(t, "London", r.PostForm.Get("shipping[address][city]"))
		assert.Equal(t, "GB", r.PostForm.Get("shipping[address][country]"))
		_, hasLine2 := r.PostForm["shipping[address][line2]"]
		assert.False(t, hasLine2, "empty fields must not be sent")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_123","object":"payment_intent","amount":10500,"client_secret":"pi_123_secret_abc"}`))
	}))
	defer server.Close()

	client, err := NewClient("sk_test", server.URL, zap.NewNop())
	require.NoError(t, err)

	intent, err := client.CreatePaymentIntent(context.Background(), model.PaymentIntentRequest{
		Amount:      10500,
		Currency:    "gbp",
		Description: "DeeShop order",
		Shipping: model.ShippingAddress{
			Line1:   "1 Main St",
			City:    "London",
			Country: "GB",
			Name:    "Ada Lovelace",
			Phone:   "+44 20 0000",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret_abc", intent.ClientSecret)
	assert.EqualValues(t, 10500, intent.Amount)
}

func TestCreatePaymentIntentWithoutShipping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		for key := range r.PostForm {
			assert.NotContains(t, key, "shipping")
		}
		_, _ = w.Write([]byte(`{"id":"pi_1","object":"payment_intent","amount":100,"client_secret":"s"}`))
	}))
	defer server.Close()

	client, err := NewClient("sk_test", server.URL, zap.NewNop())
	require.NoError(t, err)

	_, err = client.CreatePaymentIntent(context.Background(), model.PaymentIntentRequest{Amount: 100, Currency: "gbp"})
	require.NoError(t, err)
}

func TestCreatePaymentIntentProviderError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`))
	}))
	defer server.Close()

	client, err := NewClient("sk_test", server.URL, zap.NewNop())
	require.NoError(t, err)

	_, err = client.CreatePaymentIntent(context.Background(), model.PaymentIntentRequest{Amount: 100, Currency: "gbp"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "create payment intent")
	assert.EqualValues(t, 1, calls.Load(), "failed requests must not be retried")
}
