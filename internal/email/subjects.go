package email

const (
	subjectLeadNotificationFmt = "New lead: %s"
	subjectLeadAcknowledgement = "We received your request"
)
