package test

import (
	"context"
	"strings"
	"sync"

	"github.com/polkiloo/deeshop/internal/domain/model"
)

// RendererStub renders a plain listing of the cart.
type RendererStub struct {
	Err error
}

func (r RendererStub) RenderOrderConfirmation(customer string, items []model.CartItem) (string, error) {
	if r.Err != nil {
		return "", r.Err
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return "Hello " + customer + ": " + strings.Join(names, ", "), nil
}

// CardProviderStub records payment intent requests.
type CardProviderStub struct {
	Requests []model.PaymentIntentRequest
	Intent   *model.PaymentIntent
	Err      error
}

func (s *CardProviderStub) CreatePaymentIntent(_ context.Context, req model.PaymentIntentRequest) (*model.PaymentIntent, error) {
	s.Requests = append(s.Requests, req)
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Intent != nil {
		return s.Intent, nil
	}
	return &model.PaymentIntent{ID: "pi_test", ClientSecret: "pi_test_secret", Amount: req.Amount}, nil
}

// VerifierStub answers transaction verification with a fixed result.
type VerifierStub struct {
	Verification *model.TransactionVerification
	Err          error
	Calls        []string
}

func (s *VerifierStub) VerifyTransaction(_ context.Context, transactionID string) (*model.TransactionVerification, error) {
	s.Calls = append(s.Calls, transactionID)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Verification, nil
}

// MailSenderStub records sent notifications; FailFor lists ids that fail.
type MailSenderStub struct {
	mu      sync.Mutex
	Sent    []model.Notification
	FailFor map[int64]error
}

func (s *MailSenderStub) Send(_ context.Context, n model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.FailFor[n.ID]; ok {
		return err
	}
	s.Sent = append(s.Sent, n)
	return nil
}

// SentCount returns the number of delivered notifications.
func (s *MailSenderStub) SentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Sent)
}
