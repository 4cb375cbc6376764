package usecase

import (
	"context"

	"github.com/polkiloo/deeshop/internal/config"
	"github.com/polkiloo/deeshop/internal/domain/model"
	"github.com/polkiloo/deeshop/internal/domain/repository"
)

// MailSender delivers a rendered notification.
type MailSender interface {
	Send(ctx context.Context, n model.Notification) error
}

// NotificationUseCase drains the email outbox.
type NotificationUseCase struct {
	notifications repository.NotificationRepository
	sender        MailSender
	maxAttempts   int
}

func NewNotificationUseCase(notifications repository.NotificationRepository, sender MailSender, cfg *config.Config) *NotificationUseCase {
	return &NotificationUseCase{notifications: notifications, sender: sender, maxAttempts: cfg.Notify.MaxAttempts}
}

// Pending claims up to limit notifications for delivery.
func (u *NotificationUseCase) Pending(ctx context.Context, limit int) ([]model.Notification, error) {
	return u.notifications.ClaimBatch(ctx, limit)
}

// Deliver sends n and records the outcome. A failed send is returned after it
// has been recorded so the caller can log it.
func (u *NotificationUseCase) Deliver(ctx context.Context, n model.Notification) error {
	if sendErr := u.sender.Send(ctx, n); sendErr != nil {
		if err := u.notifications.MarkFailed(ctx, n.ID, sendErr.Error(), u.maxAttempts); err != nil {
			return err
		}
		return sendErr
	}
	return u.notifications.MarkSent(ctx, n.ID)
}
