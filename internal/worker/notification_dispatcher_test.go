package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/polkiloo/deeshop/internal/domain/model"
	testhelpers "github.com/polkiloo/deeshop/internal/test"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.After(timeout)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for condition")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewNotificationDispatcherDefaults(t *testing.T) {
	d := NewNotificationDispatcher(&testhelpers.NotificationFacadeStub{}, 0, 0, 0, zap.NewNop())
	if d.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", d.batchSize)
	}
	if d.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", d.workers)
	}
	if d.pollInterval != time.Second {
		t.Fatalf("expected poll interval default to 1s, got %s", d.pollInterval)
	}
}

func TestNotificationDispatcherDeliversBatch(t *testing.T) {
	facade := &testhelpers.NotificationFacadeStub{
		Batches: [][]model.Notification{{{ID: 1}, {ID: 2}, {ID: 3}}},
	}
	d := NewNotificationDispatcher(facade, 5*time.Millisecond, 8, 2, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)
	waitFor(t, time.Second, func() bool { return facade.DeliveredCount() == 3 })
	d.Stop()

	facade.Lock()
	defer facade.Unlock()
	seen := map[int64]bool{}
	for _, n := range facade.Delivered {
		seen[n.ID] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected each notification delivered once, got %v", facade.Delivered)
	}
	if facade.Limits[0] != 8 {
		t.Fatalf("expected batch size limit 8, got %d", facade.Limits[0])
	}
}

func TestNotificationDispatcherLogsDeliveryFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	facade := &testhelpers.NotificationFacadeStub{
		Batches:   [][]model.Notification{{{ID: 5, Attempts: 2}}},
		DeliverFn: func(context.Context, model.Notification) error { return errors.New("smtp down") },
	}
	d := NewNotificationDispatcher(facade, 5*time.Millisecond, 1, 1, zap.New(core))

	d.Start(context.Background())
	waitFor(t, time.Second, func() bool { return logs.FilterMessage("notification delivery failed").Len() > 0 })
	d.Stop()

	entry := logs.FilterMessage("notification delivery failed").All()[0]
	if entry.ContextMap()["id"] != int64(5) {
		t.Fatalf("expected id field 5, got %v", entry.ContextMap()["id"])
	}
}

func TestNotificationDispatcherSurvivesClaimErrors(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	calls := 0
	facade := &testhelpers.NotificationFacadeStub{}
	facade.PendingFn = func(context.Context, int) ([]model.Notification, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("db unavailable")
		}
		if calls == 2 {
			return []model.Notification{{ID: 9}}, nil
		}
		return nil, nil
	}
	d := NewNotificationDispatcher(facade, 5*time.Millisecond, 1, 1, zap.New(core))

	d.Start(context.Background())
	waitFor(t, time.Second, func() bool { return facade.DeliveredCount() == 1 })
	d.Stop()

	if logs.FilterMessage("claim notifications failed").Len() != 1 {
		t.Fatalf("expected claim failure to be logged once, got %d", logs.FilterMessage("claim notifications failed").Len())
	}
}

func TestNotificationDispatcherStopIsIdempotent(t *testing.T) {
	d := NewNotificationDispatcher(&testhelpers.NotificationFacadeStub{}, 5*time.Millisecond, 1, 1, zap.NewNop())
	d.Stop()

	d.Start(context.Background())
	d.Start(context.Background())
	d.Stop()
	d.Stop()
}

func TestNotificationDispatcherStopsWithParentContext(t *testing.T) {
	d := NewNotificationDispatcher(&testhelpers.NotificationFacadeStub{}, 5*time.Millisecond, 1, 2, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		d.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop after context cancellation")
	}
}
