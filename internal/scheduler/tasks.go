package scheduler

import (
	"encoding/json"

	"advisory_portal_backend/internal/events"

	"github.com/hibiken/asynq"
)

const TaskLeadNotification = "notification.lead_captured"

// LeadNotificationPayload carries the captured lead to the worker.
type LeadNotificationPayload struct {
	Lead events.LeadCaptured `json:"lead"`
}

func NewLeadNotificationTask(payload LeadNotificationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadNotification, data), nil
}

func ParseLeadNotificationPayload(task *asynq.Task) (LeadNotificationPayload, error) {
	var payload LeadNotificationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadNotificationPayload{}, err
	}
	return payload, nil
}
