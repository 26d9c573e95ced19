package domain

import (
	"encoding/json"
	"time"
)

// MessageLog is an append-only record of a send attempt. ProviderResponse
// carries the raw per-channel results for the history view.
type MessageLog struct {
	ID               int64           `json:"id" db:"id"`
	VisitorID        *int64          `json:"visitor_id,omitempty" db:"visitor_id"`
	VisitorName      string          `json:"visitor_name" db:"visitor_name"`
	Phone            string          `json:"phone" db:"phone"`
	Message          string          `json:"message" db:"message"`
	Status           MessageStatus   `json:"status" db:"status"`
	ProviderResponse json.RawMessage `json:"provider_response,omitempty" db:"provider_response"`
	SentAt           time.Time       `json:"sent_at" db:"sent_at"`
}
