package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/deeshop/internal/domain/model"
)

// ProductRepository describes persistence operations with products.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
}
