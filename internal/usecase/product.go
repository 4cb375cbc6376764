package usecase

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/deeshop/internal/domain/errors"
	"github.com/polkiloo/deeshop/internal/domain/model"
	"github.com/polkiloo/deeshop/internal/domain/repository"
)

// CreateProductInput describes a catalogue entry added by an administrator.
type CreateProductInput struct {
	Name     string          `json:"name" validate:"required,max=200"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" validate:"min=0"`
}

type ProductUseCase struct {
	products repository.ProductRepository
	validate *validator.Validate
}

func NewProductUseCase(products repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{products: products, validate: newValidator()}
}

func (u *ProductUseCase) Create(ctx context.Context, in CreateProductInput) (*model.Product, error) {
	in.Name = strings.TrimSpace(in.Name)

	details, err := fieldErrors(u.validate.Struct(in))
	if err != nil {
		return nil, err
	}
	if in.Price.IsNegative() {
		details = append(details, domainErrors.ValidationDetail{Field: "price", Message: "must not be negative"})
	}
	if len(details) > 0 {
		return nil, domainErrors.NewValidationError("Please fill in all fields", details...)
	}

	return u.products.Create(ctx, &model.Product{
		Name:     in.Name,
		Price:    in.Price.Round(2),
		Quantity: in.Quantity,
	})
}

func (u *ProductUseCase) List(ctx context.Context) ([]model.Product, error) {
	return u.products.List(ctx)
}

func (u *ProductUseCase) Get(ctx context.Context, rawID string) (*model.Product, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	return u.products.GetByID(ctx, id)
}
