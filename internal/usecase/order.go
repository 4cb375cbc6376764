package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/deeshop/internal/config"
	domainErrors "github.com/polkiloo/deeshop/internal/domain/errors"
	"github.com/polkiloo/deeshop/internal/domain/model"
	"github.com/polkiloo/deeshop/internal/domain/repository"
)

// OrderConfirmationSubject is the subject line of the order placed email.
const OrderConfirmationSubject = "New Order Placed - DeeShop App"

// ConfirmationRenderer produces the HTML body of the order placed email.
type ConfirmationRenderer interface {
	RenderOrderConfirmation(customer string, items []model.CartItem) (string, error)
}

// CreateOrderInput is a checkout submitted by the caller.
type CreateOrderInput struct {
	OrderDate       string                 `json:"orderDate"`
	OrderTime       string                 `json:"orderTime"`
	Amount          decimal.Decimal        `json:"orderAmount"`
	Status          model.OrderStatus      `json:"orderStatus" validate:"required,order_status"`
	CartItems       []model.CartItem       `json:"cartItems" validate:"required,min=1"`
	ShippingAddress *model.ShippingAddress `json:"shippingAddress" validate:"required"`
	PaymentMethod   model.PaymentMethod    `json:"paymentMethod" validate:"required,payment_method"`
	Coupon          *model.Coupon          `json:"coupon"`
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders   repository.OrderRepository
	renderer ConfirmationRenderer
	replyTo  string
	validate *validator.Validate
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, renderer ConfirmationRenderer, cfg *config.Config) *OrderUseCase {
	return &OrderUseCase{
		orders:   orders,
		renderer: renderer,
		replyTo:  cfg.Mail.ReplyTo,
		validate: newValidator(),
	}
}

// Create stores the order for the caller, reserves stock and queues the confirmation email.
func (u *OrderUseCase) Create(ctx context.Context, caller model.Principal, in CreateOrderInput) (*model.Order, error) {
	if err := u.validateOrder(in); err != nil {
		return nil, err
	}

	body, err := u.renderer.RenderOrderConfirmation(caller.Name, in.CartItems)
	if err != nil {
		return nil, fmt.Errorf("render confirmation: %w", err)
	}

	order := &model.Order{
		UserID:          caller.UserID,
		OrderDate:       in.OrderDate,
		OrderTime:       in.OrderTime,
		Amount:          in.Amount,
		Status:          in.Status,
		CartItems:       in.CartItems,
		ShippingAddress: *in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		Coupon:          in.Coupon,
	}
	confirmation := &model.Notification{
		Subject:   OrderConfirmationSubject,
		Recipient: caller.Email,
		ReplyTo:   u.replyTo,
		Body:      body,
	}

	return u.orders.Create(ctx, order, confirmation)
}

func (u *OrderUseCase) validateOrder(in CreateOrderInput) error {
	details, err := fieldErrors(u.validate.Struct(in))
	if err != nil {
		return err
	}

	if in.ShippingAddress != nil && in.ShippingAddress.IsZero() {
		details = append(details, domainErrors.ValidationDetail{Field: "shippingAddress", Message: "is required"})
	}
	if in.Amount.IsNegative() {
		details = append(details, domainErrors.ValidationDetail{Field: "orderAmount", Message: "must not be negative"})
	}
	for i, item := range in.CartItems {
		field := fmt.Sprintf("cartItems[%d]", i)
		if item.ProductID == uuid.Nil {
			details = append(details, domainErrors.ValidationDetail{Field: field + ".productId", Message: "is required"})
		}
		if item.Quantity < 1 {
			details = append(details, domainErrors.ValidationDetail{Field: field + ".quantity", Message: "must be at least 1"})
		}
	}
	details = append(details, couponErrors(in.Coupon)...)

	if len(details) > 0 {
		return domainErrors.NewValidationError(MessageOrderDataMissing, details...)
	}
	return nil
}

var hundred = decimal.NewFromInt(100)

func couponErrors(c *model.Coupon) []domainErrors.ValidationDetail {
	if !c.Applies() {
		return nil
	}
	if c.Discount.IsNegative() || c.Discount.GreaterThan(hundred) {
		return []domainErrors.ValidationDetail{{Field: "coupon.discount", Message: "must be between 0 and 100"}}
	}
	return nil
}

// List returns every order for administrators and the caller's own orders otherwise, newest first.
func (u *OrderUseCase) List(ctx context.Context, caller model.Principal) ([]model.Order, error) {
	if caller.IsAdmin() {
		return u.orders.ListAll(ctx)
	}
	return u.orders.ListByUser(ctx, caller.UserID)
}

// Get returns the order when the caller may see it.
func (u *OrderUseCase) Get(ctx context.Context, caller model.Principal, rawID string) (*model.Order, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !caller.CanView(order) {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// UpdateStatus moves the order to the given status.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, rawID string, status model.OrderStatus) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	if !status.Valid() {
		return domainErrors.NewValidationError("Invalid order status", domainErrors.ValidationDetail{
			Field: "orderStatus", Message: "is not a known order status",
		})
	}

	return u.orders.UpdateStatus(ctx, id, status)
}

// parseID treats malformed identifiers as unknown records.
func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, domainErrors.ErrNotFound
	}
	return id, nil
}
