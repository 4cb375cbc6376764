package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/polkiloo/deeshop/internal/domain/model"
)

// NotificationFacadeStub mimics worker interactions with the shop facade.
type NotificationFacadeStub struct {
	Batches   [][]model.Notification
	PendingFn func(context.Context, int) ([]model.Notification, error)
	DeliverFn func(context.Context, model.Notification) error
	Delivered []model.Notification
	Limits    []int

	mu         sync.Mutex
	batchCalls int32
}

// Lock exposes internal mutex for external synchronization.
func (s *NotificationFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *NotificationFacadeStub) Unlock() { s.mu.Unlock() }

// PendingNotifications returns batches from configured queue.
func (s *NotificationFacadeStub) PendingNotifications(ctx context.Context, limit int) ([]model.Notification, error) {
	s.mu.Lock()
	s.Limits = append(s.Limits, limit)
	s.mu.Unlock()

	if s.PendingFn != nil {
		return s.PendingFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.batchCalls, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// DeliverNotification records delivery attempts.
func (s *NotificationFacadeStub) DeliverNotification(ctx context.Context, n model.Notification) error {
	s.mu.Lock()
	s.Delivered = append(s.Delivered, n)
	s.mu.Unlock()

	if s.DeliverFn != nil {
		return s.DeliverFn(ctx, n)
	}
	return nil
}

// DeliveredCount returns the number of delivery attempts so far.
func (s *NotificationFacadeStub) DeliveredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Delivered)
}
