// Package facadestub provides a configurable ShopFacade for HTTP tests.
package facadestub

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/deeshop/internal/domain/errors"
	"github.com/polkiloo/deeshop/internal/domain/model"
	pkgAuth "github.com/polkiloo/deeshop/internal/pkg/auth"
	testhelpers "github.com/polkiloo/deeshop/internal/test"
	"github.com/polkiloo/deeshop/internal/usecase"
)

// ValidToken is accepted by ParseToken when no ParseTokenFn is configured.
const ValidToken = "token"

// Shop stubs every facade operation. Unset functions return canned data.
type Shop struct {
	ParseTokenFn   func(string) (int64, error)
	CurrentUserFn  func(context.Context, int64) (*model.User, error)
	RegisterFn     func(context.Context, usecase.RegisterInput) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)

	PlaceOrderFn   func(context.Context, model.Principal, usecase.CreateOrderInput) (*model.Order, error)
	OrdersFn       func(context.Context, model.Principal) ([]model.Order, error)
	OrderFn        func(context.Context, model.Principal, string) (*model.Order, error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus) error

	CreateProductFn func(context.Context, usecase.CreateProductInput) (*model.Product, error)
	ProductsFn      func(context.Context) ([]model.Product, error)
	ProductFn       func(context.Context, string) (*model.Product, error)

	CreateCardPaymentFn func(context.Context, usecase.CardPaymentInput) (*model.PaymentIntent, error)
	PaymentRedirectFn   func(context.Context, string, string) string
}

// ParseToken accepts ValidToken for the customer account.
func (s *Shop) ParseToken(token string) (int64, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	if token != ValidToken {
		return 0, pkgAuth.ErrInvalidToken
	}
	return testhelpers.Customer.ID, nil
}

func (s *Shop) CurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	if s.CurrentUserFn != nil {
		return s.CurrentUserFn(ctx, userID)
	}
	switch userID {
	case testhelpers.Customer.ID:
		u := *testhelpers.Customer
		return &u, nil
	case testhelpers.Admin.ID:
		u := *testhelpers.Admin
		return &u, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *Shop) Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	return &model.User{ID: 100, Name: in.Name, Email: in.Email, Role: model.RoleCustomer, CreatedAt: time.Unix(0, 0).UTC()}, ValidToken, nil
}

func (s *Shop) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	u := *testhelpers.Customer
	return &u, ValidToken, nil
}

func (s *Shop) PlaceOrder(ctx context.Context, caller model.Principal, in usecase.CreateOrderInput) (*model.Order, error) {
	if s.PlaceOrderFn != nil {
		return s.PlaceOrderFn(ctx, caller, in)
	}
	return &model.Order{ID: uuid.New(), UserID: caller.UserID, Status: in.Status}, nil
}

func (s *Shop) Orders(ctx context.Context, caller model.Principal) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, caller)
	}
	return nil, nil
}

func (s *Shop) Order(ctx context.Context, caller model.Principal, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, caller, id)
	}
	return nil, domainErrors.ErrNotFound
}

func (s *Shop) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	return nil
}

func (s *Shop) CreateProduct(ctx context.Context, in usecase.CreateProductInput) (*model.Product, error) {
	if s.CreateProductFn != nil {
		return s.CreateProductFn(ctx, in)
	}
	return &model.Product{ID: uuid.New(), Name: in.Name, Price: in.Price, Quantity: in.Quantity}, nil
}

func (s *Shop) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return nil, nil
}

func (s *Shop) Product(ctx context.Context, id string) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

func (s *Shop) CreateCardPayment(ctx context.Context, in usecase.CardPaymentInput) (*model.PaymentIntent, error) {
	if s.CreateCardPaymentFn != nil {
		return s.CreateCardPaymentFn(ctx, in)
	}
	return &model.PaymentIntent{ID: "pi_stub", ClientSecret: "secret_stub"}, nil
}

func (s *Shop) PaymentRedirect(ctx context.Context, transactionID, status string) string {
	if s.PaymentRedirectFn != nil {
		return s.PaymentRedirectFn(ctx, transactionID, status)
	}
	return "http://frontend.test/checkout-flutterwave?payment=failed"
}
