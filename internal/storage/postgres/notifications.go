package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/deeshop/internal/domain/model"
)

// ClaimBatch moves up to limit pending notifications to sending and returns them.
// Rows left in sending by a crashed dispatcher are reclaimed after five minutes.
func (r *notificationRepository) ClaimBatch(ctx context.Context, limit int) ([]model.Notification, error) {
	const selectQuery = `SELECT id, subject, recipient, reply_to, body, status, attempts, last_error, created_at, updated_at
                         FROM notifications
                         WHERE status = 'pending'
                            OR (status = 'sending' AND updated_at < NOW() - INTERVAL '5 minutes')
                         ORDER BY created_at
                         LIMIT $1
                         FOR UPDATE SKIP LOCKED`

	var batch []model.Notification
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				n      model.Notification
				status string
			)
			if err := rows.Scan(&n.ID, &n.Subject, &n.Recipient, &n.ReplyTo, &n.Body, &status,
				&n.Attempts, &n.LastError, &n.CreatedAt, &n.UpdatedAt); err != nil {
				return err
			}
			n.Status = model.NotificationStatus(status)
			batch = append(batch, n)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		rows.Close()

		for i := range batch {
			const claim = `UPDATE notifications SET status='sending', attempts=attempts+1, updated_at=NOW() WHERE id=$1`
			if _, err := tx.Exec(ctx, claim, batch[i].ID); err != nil {
				return err
			}
			batch[i].Status = model.NotificationStatusSending
			batch[i].Attempts++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func (r *notificationRepository) MarkSent(ctx context.Context, id int64) error {
	const query = `UPDATE notifications SET status='sent', last_error='', updated_at=NOW() WHERE id=$1`
	_, err := r.storage.pool.Exec(ctx, query, id)
	return err
}

// MarkFailed records the delivery error and requeues the notification until
// maxAttempts is reached.
func (r *notificationRepository) MarkFailed(ctx context.Context, id int64, reason string, maxAttempts int) error {
	const query = `UPDATE notifications
                   SET status = CASE WHEN attempts >= $3 THEN 'failed' ELSE 'pending' END,
                       last_error = $2,
                       updated_at = NOW()
                   WHERE id = $1`
	_, err := r.storage.pool.Exec(ctx, query, id, reason, maxAttempts)
	return err
}
