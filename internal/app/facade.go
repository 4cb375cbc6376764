package app

import (
	"context"

	"github.com/polkiloo/deeshop/internal/domain/model"
	"github.com/polkiloo/deeshop/internal/usecase"
)

// ShopFacade fronts the use cases for the HTTP layer, the dispatcher and the CLI.
type ShopFacade struct {
	auth          *usecase.AuthUseCase
	orders        *usecase.OrderUseCase
	products      *usecase.ProductUseCase
	payments      *usecase.PaymentUseCase
	notifications *usecase.NotificationUseCase
}

func NewShopFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	products *usecase.ProductUseCase,
	payments *usecase.PaymentUseCase,
	notifications *usecase.NotificationUseCase,
) *ShopFacade {
	return &ShopFacade{
		auth:          auth,
		orders:        orders,
		products:      products,
		payments:      payments,
		notifications: notifications,
	}
}

func (f *ShopFacade) Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error) {
	return f.auth.Register(ctx, in)
}

func (f *ShopFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *ShopFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *ShopFacade) CurrentUser(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.GetByID(ctx, userID)
}

func (f *ShopFacade) PlaceOrder(ctx context.Context, caller model.Principal, in usecase.CreateOrderInput) (*model.Order, error) {
	return f.orders.Create(ctx, caller, in)
}

func (f *ShopFacade) Orders(ctx context.Context, caller model.Principal) ([]model.Order, error) {
	return f.orders.List(ctx, caller)
}

func (f *ShopFacade) Order(ctx context.Context, caller model.Principal, id string) (*model.Order, error) {
	return f.orders.Get(ctx, caller, id)
}

func (f *ShopFacade) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	return f.orders.UpdateStatus(ctx, id, status)
}

func (f *ShopFacade) CreateProduct(ctx context.Context, in usecase.CreateProductInput) (*model.Product, error) {
	return f.products.Create(ctx, in)
}

func (f *ShopFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.products.List(ctx)
}

func (f *ShopFacade) Product(ctx context.Context, id string) (*model.Product, error) {
	return f.products.Get(ctx, id)
}

func (f *ShopFacade) CreateCardPayment(ctx context.Context, in usecase.CardPaymentInput) (*model.PaymentIntent, error) {
	return f.payments.CreateCardPayment(ctx, in)
}

func (f *ShopFacade) PaymentRedirect(ctx context.Context, transactionID, status string) string {
	return f.payments.RedirectURL(ctx, transactionID, status)
}

func (f *ShopFacade) PendingNotifications(ctx context.Context, limit int) ([]model.Notification, error) {
	return f.notifications.Pending(ctx, limit)
}

func (f *ShopFacade) DeliverNotification(ctx context.Context, n model.Notification) error {
	return f.notifications.Deliver(ctx, n)
}

// Promote grants the administrator role by email.
func (f *ShopFacade) Promote(ctx context.Context, email string) error {
	return f.auth.Promote(ctx, email)
}
