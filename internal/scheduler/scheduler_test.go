package scheduler

import (
	"context"
	"errors"
	"io"
	"testing"

	"advisory_portal_backend/internal/events"
	"advisory_portal_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

type testSchedulerConfig struct {
	url string
}

func (c testSchedulerConfig) GetRedisURL() string     { return c.url }
func (testSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (testSchedulerConfig) GetAsynqQueueName() string { return "notifications" }
func (testSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

type testNotifier struct {
	delivered []events.LeadCaptured
	err       error
}

func (n *testNotifier) DeliverLeadCaptured(_ context.Context, e events.LeadCaptured) error {
	n.delivered = append(n.delivered, e)
	return n.err
}

func lead() events.LeadCaptured {
	return events.LeadCaptured{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    uuid.New(),
		Name:      "Ana García",
		Email:     "ana@example.com",
		Source:    "website",
		Assessment: &events.AssessmentSummary{
			Kind:     "costs",
			Headline: "Setup cost 1370-2710 EUR over 5-10 weeks",
		},
	}
}

func TestEnqueueLeadNotification(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(testSchedulerConfig{url: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer func() { _ = client.Close() }()

	e := lead()
	if err := client.EnqueueLeadNotification(context.Background(), e); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := client.EnqueueLeadNotification(context.Background(), e); !errors.Is(err, asynq.ErrTaskIDConflict) {
		t.Fatalf("expected duplicate lead to conflict, got %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()
	n, err := rdb.LLen(context.Background(), "asynq:{notifications}:pending").Result()
	if err != nil {
		t.Fatalf("llen: %v", err)
	}
	if n != 1 {
		t.Fatalf("pending tasks = %d", n)
	}
}

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{}); err == nil {
		t.Fatalf("expected error without redis url")
	}
}

func TestWorkerDeliversPayload(t *testing.T) {
	notifier := &testNotifier{}
	w := newWorker(nil, notifier, logger.NewWithWriter("test", io.Discard))

	e := lead()
	task, err := NewLeadNotificationTask(LeadNotificationPayload{Lead: e})
	if err != nil {
		t.Fatalf("task: %v", err)
	}
	if err := w.handleLeadNotification(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(notifier.delivered) != 1 {
		t.Fatalf("expected one delivery")
	}
	got := notifier.delivered[0]
	if got.LeadID != e.LeadID || got.Assessment == nil || got.Assessment.Headline != e.Assessment.Headline {
		t.Fatalf("payload not preserved: %+v", got)
	}
}

func TestWorkerSkipsRetryOnBadPayload(t *testing.T) {
	w := newWorker(nil, &testNotifier{}, logger.NewWithWriter("test", io.Discard))
	err := w.handleLeadNotification(context.Background(), asynq.NewTask(TaskLeadNotification, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestWorkerPropagatesDeliveryErrors(t *testing.T) {
	w := newWorker(nil, &testNotifier{err: errors.New("smtp down")}, logger.NewWithWriter("test", io.Discard))
	task, _ := NewLeadNotificationTask(LeadNotificationPayload{Lead: lead()})
	if err := w.handleLeadNotification(context.Background(), task); err == nil {
		t.Fatalf("expected error so the task is retried")
	}
}
