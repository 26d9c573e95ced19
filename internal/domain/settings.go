package domain

import "time"

type MessageChannel string

const (
	ChannelSMS      MessageChannel = "sms"
	ChannelWhatsApp MessageChannel = "whatsapp"
	ChannelBoth     MessageChannel = "both"
)

const (
	ProviderTermii         = "termii"
	ProviderTwilio         = "twilio"
	ProviderTermiiWhatsApp = "termii-whatsapp"
	ProviderTwilioWhatsApp = "twilio-whatsapp"
)

// Settings is the singleton record governing church identity and messaging.
type Settings struct {
	ID                int64          `json:"id" db:"id"`
	ChurchName        string         `json:"church_name" db:"church_name"`
	Logo              string         `json:"logo" db:"logo"`
	SenderID          string         `json:"sender_id" db:"sender_id"`
	MessageChannel    MessageChannel `json:"message_channel" db:"message_channel"`
	SMSProvider       string         `json:"sms_provider" db:"sms_provider"`
	WhatsAppProvider  string         `json:"whatsapp_provider" db:"whatsapp_provider"`
	AutomationEnabled bool           `json:"automation_enabled" db:"automation_enabled"`
	UpdatedAt         time.Time      `json:"updated_at" db:"updated_at"`
}

// Channels expands MessageChannel into the list of channels to dispatch on.
// An unset channel defaults to SMS.
func (s *Settings) Channels() []MessageChannel {
	switch s.MessageChannel {
	case ChannelBoth:
		return []MessageChannel{ChannelSMS, ChannelWhatsApp}
	case ChannelWhatsApp:
		return []MessageChannel{ChannelWhatsApp}
	default:
		return []MessageChannel{ChannelSMS}
	}
}
