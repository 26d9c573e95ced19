package domain

import "time"

type TriggerType string

const (
	TriggerInstant   TriggerType = "instant"
	TriggerDelay     TriggerType = "delay"
	TriggerScheduled TriggerType = "scheduled"
	TriggerBirthday  TriggerType = "birthday"
)

// Template is a message body with placeholder tokens. DelayDays is only
// meaningful when TriggerType is "delay".
type Template struct {
	ID          int64       `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Message     string      `json:"message" db:"message"`
	TriggerType TriggerType `json:"trigger_type" db:"trigger_type"`
	DelayDays   int         `json:"delay_days" db:"delay_days"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
}
