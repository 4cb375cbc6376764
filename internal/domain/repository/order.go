package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/deeshop/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create stores the order, takes the ordered quantities out of stock and
	// enqueues the confirmation in one atomic step.
	Create(ctx context.Context, order *model.Order, confirmation *model.Notification) (*model.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error
}
