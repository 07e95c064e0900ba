package model

// Event types emitted by the outreach automation layer.
const (
	EventProfileView        = "profile_view"
	EventConnectionSent     = "connection_sent"
	EventConnectionAccepted = "connection_accepted"
	EventConnectionDeclined = "connection_declined"
	EventMessageSent        = "message_sent"
	EventResponseReceived   = "response_received"
	EventTemplateUsed       = "template_used"
	EventCampaignStarted    = "campaign_started"
	EventCampaignCompleted  = "campaign_completed"
)

// EventRequest represents an incoming event payload.
type EventRequest struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Timestamp    int64  `json:"timestamp"` // epoch milliseconds
	ProfileID    string `json:"profile_id"`
	TemplateID   string `json:"template_id"`
	TemplateName string `json:"template_name"`
	CampaignID   string `json:"campaign_id"`
	MessageID    string `json:"message_id"`
	ResultType   string `json:"result_type"`
}

// Event is the domain model persisted in the event store. Timestamp is
// epoch milliseconds; every field besides Type and Timestamp may be empty.
type Event struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Timestamp    int64  `json:"timestamp"`
	ProfileID    string `json:"profile_id,omitempty"`
	TemplateID   string `json:"template_id,omitempty"`
	TemplateName string `json:"template_name,omitempty"`
	CampaignID   string `json:"campaign_id,omitempty"`
	MessageID    string `json:"message_id,omitempty"`
	ResultType   string `json:"result_type,omitempty"`
}

// Valid reports whether the event carries the two fields every
// aggregation needs. Invalid events are skipped per tally, never fatal.
func (e Event) Valid() bool {
	return e.Type != "" && e.Timestamp > 0
}

// EventResult is returned after an event is accepted for ingestion.
type EventResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
