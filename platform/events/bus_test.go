package events

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"advisory_portal_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
}

func (testEvent) EventName() string { return "test.happened" }

func TestPublishSyncRunsAllHandlers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))
	var calls atomic.Int32
	for i := 0; i < 3; i++ {
		bus.Subscribe("test.happened", HandlerFunc(func(context.Context, Event) error {
			calls.Add(1)
			return nil
		}))
	}
	bus.Subscribe("other", HandlerFunc(func(context.Context, Event) error {
		t.Errorf("unrelated handler called")
		return nil
	}))

	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent()}); err != nil {
		t.Fatalf("PublishSync: %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 calls, got %d", calls.Load())
	}
}

func TestPublishSyncReturnsHandlerError(t *testing.T) {
	bus := NewInMemoryBus(nil)
	boom := errors.New("boom")
	bus.Subscribe("test.happened", HandlerFunc(func(context.Context, Event) error { return boom }))

	if err := bus.PublishSync(context.Background(), testEvent{}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestPublishRecoversPanicsAndLogs(t *testing.T) {
	var buf bytes.Buffer
	bus := NewInMemoryBus(logger.NewWithWriter("production", &buf))
	bus.Subscribe("test.happened", HandlerFunc(func(context.Context, Event) error {
		panic("kaboom")
	}))

	bus.Publish(context.Background(), testEvent{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := bus.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !strings.Contains(buf.String(), "event_handler_failed") || !strings.Contains(buf.String(), "kaboom") {
		t.Fatalf("expected logged failure, got %q", buf.String())
	}
}

func TestPublishOutlivesCancelledContext(t *testing.T) {
	bus := NewInMemoryBus(nil)
	done := make(chan error, 1)
	bus.Subscribe("test.happened", HandlerFunc(func(ctx context.Context, _ Event) error {
		done <- ctx.Err()
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, testEvent{})

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("handler saw cancelled context: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("handler did not run")
	}
}
