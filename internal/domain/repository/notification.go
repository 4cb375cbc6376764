package repository

import (
	"context"

	"github.com/polkiloo/deeshop/internal/domain/model"
)

// NotificationRepository is the outbox of emails awaiting delivery.
type NotificationRepository interface {
	ClaimBatch(ctx context.Context, limit int) ([]model.Notification, error)
	MarkSent(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, reason string, maxAttempts int) error
}
