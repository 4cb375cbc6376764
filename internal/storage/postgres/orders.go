package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/deeshop/internal/domain/errors"
	"github.com/polkiloo/deeshop/internal/domain/model"
)

const orderColumns = `id, user_id, order_date, order_time, amount_minor, status, cart_items,
                      shipping_address, payment_method, coupon, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *model.Order, confirmation *model.Notification) (*model.Order, error) {
	created := *order
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}

	items, err := json.Marshal(created.CartItems)
	if err != nil {
		return nil, fmt.Errorf("encode cart items: %w", err)
	}
	address, err := json.Marshal(created.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("encode shipping address: %w", err)
	}
	var coupon []byte
	if created.Coupon != nil {
		if coupon, err = json.Marshal(created.Coupon); err != nil {
			return nil, fmt.Errorf("encode coupon: %w", err)
		}
	}

	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (id, user_id, order_date, order_time, amount_minor, status,
                                                 cart_items, shipping_address, payment_method, coupon)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                             RETURNING created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder,
			created.ID.String(), created.UserID, created.OrderDate, created.OrderTime,
			model.MinorUnits(created.Amount), string(created.Status), items, address,
			string(created.PaymentMethod), coupon,
		).Scan(&created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for _, item := range created.CartItems {
			if err := takeStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if confirmation != nil {
			const insertNotification = `INSERT INTO notifications (subject, recipient, reply_to, body, status)
                                        VALUES ($1, $2, $3, $4, $5)`
			if _, err := tx.Exec(ctx, insertNotification, confirmation.Subject, confirmation.Recipient,
				confirmation.ReplyTo, confirmation.Body, string(model.NotificationStatusPending)); err != nil {
				return fmt.Errorf("enqueue confirmation: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// takeStock decrements product quantity only when enough stock remains, so
// concurrent orders can never drive it below zero.
func takeStock(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) error {
	const decrement = `UPDATE products SET quantity = quantity - $1 WHERE id = $2 AND quantity >= $1`
	tag, err := tx.Exec(ctx, decrement, quantity, productID.String())
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	const lookup = `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`
	if err := tx.QueryRow(ctx, lookup, productID.String()).Scan(&exists); err != nil {
		return fmt.Errorf("lookup product: %w", err)
	}
	if !exists {
		return domainErrors.NewValidationError("Order data missing!", domainErrors.ValidationDetail{
			Field:   "cartItems",
			Message: "unknown product " + productID.String(),
		})
	}
	return fmt.Errorf("product %s: %w", productID, domainErrors.ErrInsufficientStock)
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, string(status), id.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o                      model.Order
		id, status, method     string
		amount                 int64
		items, address, coupon []byte
	)
	err := row.Scan(&id, &o.UserID, &o.OrderDate, &o.OrderTime, &amount, &status, &items,
		&address, &method, &coupon, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if o.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("decode order id: %w", err)
	}
	o.Amount = model.FromMinorUnits(amount)
	o.Status = model.OrderStatus(status)
	o.PaymentMethod = model.PaymentMethod(method)
	if err := json.Unmarshal(items, &o.CartItems); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}
	if err := json.Unmarshal(address, &o.ShippingAddress); err != nil {
		return nil, fmt.Errorf("decode shipping address: %w", err)
	}
	if len(coupon) > 0 {
		o.Coupon = &model.Coupon{}
		if err := json.Unmarshal(coupon, o.Coupon); err != nil {
			return nil, fmt.Errorf("decode coupon: %w", err)
		}
	}
	return &o, nil
}
