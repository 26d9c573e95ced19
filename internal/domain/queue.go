package domain

import (
	"time"

	"github.com/google/uuid"
)

type MessageStatus string

const (
	StatusPending MessageStatus = "pending"
	StatusSent    MessageStatus = "sent"
	StatusFailed  MessageStatus = "failed"
)

// QueuedMessage is a follow-up scheduled for a visitor. The message body is
// captured at enqueue time; the processor re-renders from the live template
// when it dispatches. Status is monotonic: pending moves to sent or failed
// and never leaves a terminal state.
type QueuedMessage struct {
	ID          int64         `json:"id" db:"id"`
	VisitorID   int64         `json:"visitor_id" db:"visitor_id"`
	TemplateID  int64         `json:"template_id" db:"template_id"`
	Phone       string        `json:"phone" db:"phone"`
	Message     string        `json:"message" db:"message"`
	ScheduledFor time.Time    `json:"scheduled_for" db:"scheduled_for"`
	Status      MessageStatus `json:"status" db:"status"`
	BatchID     *uuid.UUID    `json:"batch_id,omitempty" db:"batch_id"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}
