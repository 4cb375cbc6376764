package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/polkiloo/deeshop/internal/domain/model"
)

// NotificationFacade exposes the subset of application functionality required by the worker.
type NotificationFacade interface {
	PendingNotifications(ctx context.Context, limit int) ([]model.Notification, error)
	DeliverNotification(ctx context.Context, n model.Notification) error
}

// NotificationDispatcher polls the email outbox and delivers notifications concurrently.
type NotificationDispatcher struct {
	facade       NotificationFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *zap.Logger

	jobs   chan model.Notification
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewNotificationDispatcher constructs the dispatcher worker pool.
func NewNotificationDispatcher(facade NotificationFacade, pollInterval time.Duration, batchSize, workers int, logger *zap.Logger) *NotificationDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &NotificationDispatcher{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
	}
}

// Start launches background processing. Calling Start on a running dispatcher is a no-op.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.jobs = make(chan model.Notification, d.batchSize*d.workers)

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx, d.jobs)
	}

	d.wg.Add(1)
	go d.dispatch(runCtx, d.jobs)
}

// Stop waits for all workers to finish.
func (d *NotificationDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *NotificationDispatcher) dispatch(ctx context.Context, jobs chan<- model.Notification) {
	defer d.wg.Done()
	defer close(jobs)
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.fetchAndDispatch(ctx, jobs)
		}
	}
}

func (d *NotificationDispatcher) fetchAndDispatch(ctx context.Context, jobs chan<- model.Notification) {
	batch, err := d.facade.PendingNotifications(ctx, d.batchSize)
	if err != nil {
		if ctx.Err() == nil {
			d.logger.Error("claim notifications failed", zap.Error(err))
		}
		return
	}
	for _, n := range batch {
		select {
		case <-ctx.Done():
			return
		case jobs <- n:
		}
	}
}

func (d *NotificationDispatcher) worker(ctx context.Context, jobs <-chan model.Notification) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-jobs:
			if !ok {
				return
			}
			d.deliver(ctx, n)
		}
	}
}

func (d *NotificationDispatcher) deliver(ctx context.Context, n model.Notification) {
	if err := d.facade.DeliverNotification(ctx, n); err != nil {
		d.logger.Warn("notification delivery failed",
			zap.Int64("id", n.ID),
			zap.Int("attempt", n.Attempts),
			zap.Error(err),
		)
		return
	}
	d.logger.Debug("notification delivered", zap.Int64("id", n.ID))
}
