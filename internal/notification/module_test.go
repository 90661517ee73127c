package notification

import (
	"context"
	"errors"
	"io"
	"testing"

	"advisory_portal_backend/internal/email"
	"advisory_portal_backend/internal/events"
	"advisory_portal_backend/platform/logger"

	"github.com/google/uuid"
)

type testNotificationConfig struct {
	inbox string
}

func (c testNotificationConfig) GetAdvisorInbox() string { return c.inbox }
func (testNotificationConfig) GetAppBaseURL() string     { return "https://advisory.example.com/" }

type sentNotification struct {
	to   string
	lead email.LeadNotification
}

type sentAck struct {
	to, name, assessment string
}

type testSender struct {
	notifications []sentNotification
	acks          []sentAck
	notifyErr     error
}

func (s *testSender) SendLeadNotification(_ context.Context, to string, lead email.LeadNotification) error {
	if s.notifyErr != nil {
		return s.notifyErr
	}
	s.notifications = append(s.notifications, sentNotification{to: to, lead: lead})
	return nil
}

func (s *testSender) SendLeadAcknowledgement(_ context.Context, to, name, assessment string) error {
	s.acks = append(s.acks, sentAck{to: to, name: name, assessment: assessment})
	return nil
}

func (s *testSender) SendCustomEmail(context.Context, string, string, string) error { return nil }

func leadCaptured() events.LeadCaptured {
	return events.LeadCaptured{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    uuid.MustParse("5b0f1e7c-1d1a-4d4e-9d38-2c8e0f7d9a10"),
		Name:      "Ana García",
		Email:     "ana@example.com",
		Source:    "website",
		Assessment: &events.AssessmentSummary{
			Kind:     "residency",
			Headline: "Residency risk VERY_HIGH (score 80/100)",
			Findings: []string{"You spend 200 days per year in Spain"},
		},
	}
}

func TestLeadCapturedNotifiesAdvisorAndVisitor(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testNotificationConfig{inbox: "advisors@example.com"}, logger.NewWithWriter("test", io.Discard))

	if err := m.Handle(context.Background(), leadCaptured()); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(sender.notifications) != 1 {
		t.Fatalf("expected one advisor notification, got %d", len(sender.notifications))
	}
	n := sender.notifications[0]
	if n.to != "advisors@example.com" {
		t.Fatalf("notification sent to %q", n.to)
	}
	if n.lead.LeadURL != "https://advisory.example.com/admin/leads/5b0f1e7c-1d1a-4d4e-9d38-2c8e0f7d9a10" {
		t.Fatalf("lead url = %q", n.lead.LeadURL)
	}
	if n.lead.Assessment != "Residency risk VERY_HIGH (score 80/100)" || len(n.lead.Findings) != 1 {
		t.Fatalf("unexpected assessment in notification %+v", n.lead)
	}

	if len(sender.acks) != 1 || sender.acks[0].to != "ana@example.com" || sender.acks[0].assessment == "" {
		t.Fatalf("unexpected acknowledgements %+v", sender.acks)
	}
}

func TestLeadCapturedWithoutInboxOnlyAcknowledges(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testNotificationConfig{}, logger.NewWithWriter("test", io.Discard))

	e := leadCaptured()
	e.Assessment = nil
	if err := m.Handle(context.Background(), e); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sender.notifications) != 0 {
		t.Fatalf("no inbox configured, expected no notification")
	}
	if len(sender.acks) != 1 || sender.acks[0].assessment != "" {
		t.Fatalf("unexpected acknowledgements %+v", sender.acks)
	}
}

func TestNotificationFailureStillAcknowledges(t *testing.T) {
	sender := &testSender{notifyErr: errors.New("smtp down")}
	m := New(sender, testNotificationConfig{inbox: "advisors@example.com"}, logger.NewWithWriter("test", io.Discard))

	err := m.Handle(context.Background(), leadCaptured())
	if err == nil {
		t.Fatalf("expected the notification error to be returned")
	}
	if len(sender.acks) != 1 {
		t.Fatalf("acknowledgement should still be sent")
	}
}

type failureCounter int

func (f *failureCounter) NotificationFailed() { *f++ }

func TestDeliveryFailuresAreCounted(t *testing.T) {
	sender := &testSender{notifyErr: errors.New("smtp down")}
	m := New(sender, testNotificationConfig{inbox: "advisors@example.com"}, logger.NewWithWriter("test", io.Discard))
	var failures failureCounter
	m.SetFailureRecorder(&failures)

	_ = m.DeliverLeadCaptured(context.Background(), leadCaptured())
	if failures != 1 {
		t.Fatalf("failures = %d", failures)
	}
}

func TestSubscribedThroughBus(t *testing.T) {
	sender := &testSender{}
	bus := events.NewInMemoryBus(logger.NewWithWriter("test", io.Discard))
	New(sender, testNotificationConfig{inbox: "advisors@example.com"}, logger.NewWithWriter("test", io.Discard)).RegisterHandlers(bus)

	if err := bus.PublishSync(context.Background(), leadCaptured()); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(sender.notifications) != 1 {
		t.Fatalf("expected the bus to deliver LeadCaptured")
	}
}

func TestIgnoresOtherEvents(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testNotificationConfig{inbox: "x@example.com"}, logger.NewWithWriter("test", io.Discard))
	if err := m.Handle(context.Background(), otherEvent{}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sender.notifications)+len(sender.acks) != 0 {
		t.Fatalf("unexpected sends")
	}
}

type otherEvent struct{ events.BaseEvent }

func (otherEvent) EventName() string { return "other" }

type testQueue struct {
	queued []events.LeadCaptured
	err    error
}

func (q *testQueue) EnqueueLeadNotification(_ context.Context, e events.LeadCaptured) error {
	if q.err != nil {
		return q.err
	}
	q.queued = append(q.queued, e)
	return nil
}

func TestQueuedDelivery(t *testing.T) {
	sender := &testSender{}
	queue := &testQueue{}
	m := New(sender, testNotificationConfig{inbox: "advisors@example.com"}, logger.NewWithWriter("test", io.Discard))
	m.SetQueue(queue)

	if err := m.Handle(context.Background(), leadCaptured()); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(queue.queued) != 1 || len(sender.notifications) != 0 {
		t.Fatalf("expected the lead to be queued, not sent inline")
	}

	queue.err = errors.New("redis unavailable")
	if err := m.Handle(context.Background(), leadCaptured()); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sender.notifications) != 1 {
		t.Fatalf("expected inline delivery when the queue is down")
	}
}
