package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/deeshop/internal/domain/errors"
	"github.com/polkiloo/deeshop/internal/domain/model"
)

const productColumns = `id, name, price_minor, quantity, created_at`

func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	created := *product
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	const query = `INSERT INTO products (id, name, price_minor, quantity) VALUES ($1, $2, $3, $4) RETURNING created_at`
	err := r.storage.pool.QueryRow(ctx, query, created.ID.String(), created.Name,
		model.MinorUnits(created.Price), created.Quantity).Scan(&created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return &created, nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}
	const query = `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1::uuid[])`
	return r.list(ctx, query, keys)
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *productRepository) list(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		p     model.Product
		id    string
		price int64
	)
	if err := row.Scan(&id, &p.Name, &price, &p.Quantity, &p.CreatedAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("decode product id: %w", err)
	}
	p.ID = parsed
	p.Price = model.FromMinorUnits(price)
	return &p, nil
}
