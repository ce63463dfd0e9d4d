package entity

import "time"

// Webhook event processing outcomes.
const (
	EventOutcomeProcessed = "processed"
	EventOutcomeIgnored   = "ignored"
	EventOutcomeFailed    = "failed"
)

// WebhookEvent stores a received webhook payload together with its processing
// outcome so operators can audit what the store sent us.
type WebhookEvent struct {
	ID         string    `json:"id" db:"id"`
	Provider   string    `json:"provider" db:"provider"`
	EventType  string    `json:"event_type" db:"event_type"`
	Payload    string    `json:"payload" db:"payload"`
	Outcome    string    `json:"outcome" db:"outcome"`
	Detail     string    `json:"detail" db:"detail"`
	ReceivedAt time.Time `json:"received_at" db:"received_at"`
}
