// Package notification provides event handlers for sending notifications in
// response to domain events. Domain modules publish events and never talk to
// email providers or templates themselves.
package notification

import (
	"context"
	"errors"
	"strings"

	"advisory_portal_backend/internal/email"
	"advisory_portal_backend/internal/events"
	"advisory_portal_backend/platform/config"
	"advisory_portal_backend/platform/logger"
)

// LeadNotificationQueue defers delivery to a background worker.
type LeadNotificationQueue interface {
	EnqueueLeadNotification(ctx context.Context, e events.LeadCaptured) error
}

// FailureRecorder counts failed deliveries.
type FailureRecorder interface {
	NotificationFailed()
}

// Module handles all notification-related event subscriptions.
type Module struct {
	sender   email.Sender
	cfg      config.NotificationConfig
	log      *logger.Logger
	queue    LeadNotificationQueue
	failures FailureRecorder
}

// New creates a new notification module.
func New(sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Module {
	return &Module{sender: sender, cfg: cfg, log: log}
}

// SetQueue routes lead emails through q instead of sending them inline.
func (m *Module) SetQueue(q LeadNotificationQueue) { m.queue = q }

// SetFailureRecorder attaches a metrics recorder.
func (m *Module) SetFailureRecorder(r FailureRecorder) { m.failures = r }

// RegisterHandlers subscribes the module to the events it reacts to.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadCaptured{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadCaptured:
		return m.handleLeadCaptured(ctx, e)
	default:
		return nil
	}
}

func (m *Module) handleLeadCaptured(ctx context.Context, e events.LeadCaptured) error {
	if m.queue == nil {
		return m.DeliverLeadCaptured(ctx, e)
	}
	if err := m.queue.EnqueueLeadNotification(ctx, e); err != nil {
		m.log.Warn("failed to enqueue lead notification, sending inline", "leadId", e.LeadID, "error", err)
		return m.DeliverLeadCaptured(ctx, e)
	}
	return nil
}

// DeliverLeadCaptured alerts the advisor inbox and acknowledges the visitor. Both
// are attempted even when one fails.
func (m *Module) DeliverLeadCaptured(ctx context.Context, e events.LeadCaptured) error {
	var errs []error

	if inbox := m.cfg.GetAdvisorInbox(); inbox != "" {
		if err := m.sender.SendLeadNotification(ctx, inbox, m.leadNotification(e)); err != nil {
			m.log.Error("failed to send lead notification", "leadId", e.LeadID, "error", err)
			m.recordFailure()
			errs = append(errs, err)
		} else {
			m.log.Info("lead notification sent", "leadId", e.LeadID)
		}
	}

	if err := m.sender.SendLeadAcknowledgement(ctx, e.Email, e.Name, headline(e.Assessment)); err != nil {
		m.log.Error("failed to send lead acknowledgement", "leadId", e.LeadID, "error", err)
		m.recordFailure()
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (m *Module) recordFailure() {
	if m.failures != nil {
		m.failures.NotificationFailed()
	}
}

func (m *Module) leadNotification(e events.LeadCaptured) email.LeadNotification {
	n := email.LeadNotification{
		LeadID:  e.LeadID.String(),
		Name:    e.Name,
		Email:   e.Email,
		Phone:   e.Phone,
		Company: e.Company,
		Message: e.Message,
		Source:  e.Source,
		LeadURL: m.buildURL("/admin/leads", e.LeadID.String()),
	}
	if e.Assessment != nil {
		n.Assessment = e.Assessment.Headline
		n.Findings = e.Assessment.Findings
	}
	return n
}

func (m *Module) buildURL(path string, id string) string {
	base := strings.TrimRight(m.cfg.GetAppBaseURL(), "/")
	if base == "" {
		return ""
	}
	return base + path + "/" + id
}

func headline(a *events.AssessmentSummary) string {
	if a == nil {
		return ""
	}
	return a.Headline
}
