package handlers

import (
	"context"

	"github.com/polkiloo/deeshop/internal/domain/model"
	"github.com/polkiloo/deeshop/internal/server/http/middleware"
	"github.com/polkiloo/deeshop/internal/usecase"
)

// UserFacade describes account capabilities required by handlers.
type UserFacade interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	CurrentUser(ctx context.Context, userID int64) (*model.User, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, caller model.Principal, in usecase.CreateOrderInput) (*model.Order, error)
	Orders(ctx context.Context, caller model.Principal) ([]model.Order, error)
	Order(ctx context.Context, caller model.Principal, id string) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error
}

// ProductFacade provides catalogue operations.
type ProductFacade interface {
	CreateProduct(ctx context.Context, in usecase.CreateProductInput) (*model.Product, error)
	Products(ctx context.Context) ([]model.Product, error)
	Product(ctx context.Context, id string) (*model.Product, error)
}

// PaymentFacade opens card payments and resolves gateway redirects.
type PaymentFacade interface {
	CreateCardPayment(ctx context.Context, in usecase.CardPaymentInput) (*model.PaymentIntent, error)
	PaymentRedirect(ctx context.Context, transactionID, status string) string
}

// ShopFacade aggregates the full set of operations used across handlers.
type ShopFacade interface {
	middleware.SessionResolver
	UserFacade
	OrderFacade
	ProductFacade
	PaymentFacade
}
