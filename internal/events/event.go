// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"advisory_portal_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// AssessmentSummary is the headline of the assessment attached to a lead.
type AssessmentSummary struct {
	Kind     string   `json:"kind"`
	Version  string   `json:"version"`
	Headline string   `json:"headline"`
	Findings []string `json:"findings"`
}

// LeadCaptured is published after a lead has been stored.
type LeadCaptured struct {
	BaseEvent
	LeadID     uuid.UUID          `json:"leadId"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone,omitempty"`
	Company    string             `json:"company,omitempty"`
	Message    string             `json:"message,omitempty"`
	Source     string             `json:"source"`
	Assessment *AssessmentSummary `json:"assessment,omitempty"`
}

func (e LeadCaptured) EventName() string { return "leads.lead.captured" }
