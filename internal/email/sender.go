package email

import (
	"context"
	"fmt"
	"time"

	"advisory_portal_backend/platform/config"
)

const sendTimeout = 15 * time.Second

// LeadNotification is what an advisor sees about a new lead.
type LeadNotification struct {
	LeadID     string
	Name       string
	Email      string
	Phone      string
	Company    string
	Message    string
	Source     string
	Assessment string
	Findings   []string
	LeadURL    string
}

type Sender interface {
	SendLeadNotification(ctx context.Context, toEmail string, lead LeadNotification) error
	SendLeadAcknowledgement(ctx context.Context, toEmail, name, assessment string) error
	SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error
}

type NoopSender struct{}

func (NoopSender) SendLeadNotification(ctx context.Context, toEmail string, lead LeadNotification) error {
	return nil
}

func (NoopSender) SendLeadAcknowledgement(ctx context.Context, toEmail, name, assessment string) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}

// transport delivers one rendered message.
type transport interface {
	send(ctx context.Context, toEmail, subject, htmlContent string) error
}

// templateSender renders the embedded templates and hands the result to a transport.
type templateSender struct {
	transport transport
}

func (s templateSender) SendLeadNotification(ctx context.Context, toEmail string, lead LeadNotification) error {
	subject := fmt.Sprintf(subjectLeadNotificationFmt, lead.Name)
	content, err := renderEmailTemplate("lead_notification.html", leadNotificationEmailData{
		baseEmailData: baseEmailData{
			Title:      "New lead",
			Heading:    "New lead from the website",
			Subheading: lead.Assessment,
			CTALabel:   "Open lead",
			CTAURL:     lead.LeadURL,
		},
		Lead: lead,
	})
	if err != nil {
		return err
	}
	return s.transport.send(ctx, toEmail, subject, content)
}

func (s templateSender) SendLeadAcknowledgement(ctx context.Context, toEmail, name, assessment string) error {
	content, err := renderEmailTemplate("lead_acknowledgement.html", leadAcknowledgementEmailData{
		baseEmailData: baseEmailData{
			Title:   "We received your request",
			Heading: "Thank you for contacting us",
		},
		Name:       name,
		Assessment: assessment,
	})
	if err != nil {
		return err
	}
	return s.transport.send(ctx, toEmail, subjectLeadAcknowledgement, content)
}

func (s templateSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return s.transport.send(ctx, toEmail, subject, htmlContent)
}

// NewSender picks the delivery channel from configuration: SMTP when a host is
// set, otherwise the Brevo API. Disabled email yields a NoopSender.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}

	if cfg.GetSMTPHost() != "" {
		return NewSMTPSender(cfg.GetSMTPHost(), cfg.GetSMTPPort(), cfg.GetSMTPUsername(), cfg.GetSMTPPassword(),
			cfg.GetEmailFromAddress(), cfg.GetEmailFromName()), nil
	}
	if cfg.GetBrevoAPIKey() != "" {
		return NewBrevoSender(cfg.GetBrevoAPIKey(), cfg.GetEmailFromAddress(), cfg.GetEmailFromName()), nil
	}
	return nil, fmt.Errorf("email enabled but neither SMTP_HOST nor BREVO_API_KEY is set")
}
