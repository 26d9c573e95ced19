package dto

import (
	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
	"github.com/omotosho-cloud/church-visitor-manager/internal/services"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type VisitorResponse struct {
	Success bool            `json:"success"`
	Visitor *domain.Visitor `json:"visitor"`
}

type PromoteResponse struct {
	Success bool           `json:"success"`
	Member  *domain.Member `json:"member"`
}

type SendMessageRequest struct {
	Phone   string `json:"phone" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type BulkSendRequest struct {
	Visitors []services.BulkRecipient `json:"visitors" binding:"required"`
	Message  string                   `json:"message" binding:"required"`
}

type TemplateRequest struct {
	Name        string             `json:"name" binding:"required"`
	Message     string             `json:"message" binding:"required"`
	TriggerType domain.TriggerType `json:"trigger_type" binding:"required"`
	DelayDays   int                `json:"delay_days"`
}

type SettingsRequest struct {
	ChurchName        string                `json:"church_name"`
	Logo              string                `json:"logo"`
	SenderID          string                `json:"sender_id"`
	MessageChannel    domain.MessageChannel `json:"message_channel"`
	SMSProvider       string                `json:"sms_provider"`
	WhatsAppProvider  string                `json:"whatsapp_provider"`
	AutomationEnabled bool                  `json:"automation_enabled"`
}

type ChurchInfoResponse struct {
	ChurchName string `json:"church_name"`
	Logo       string `json:"logo"`
}

type ServiceRequest struct {
	Name string `json:"name" binding:"required"`
}

type LogsResponse struct {
	Logs  []domain.MessageLog `json:"logs"`
	Total int64               `json:"total"`
}

type QueueResponse struct {
	Items []domain.QueuedMessage `json:"items"`
}

type QueueStatsResponse struct {
	Pending int64 `json:"pending"`
	Sent    int64 `json:"sent"`
	Failed  int64 `json:"failed"`
}

type PurgeResponse struct {
	Deleted int64 `json:"deleted"`
}

type JobResponse struct {
	Status string `json:"status"`
}

type BirthdayResponse struct {
	Message string `json:"message"`
	Total   int    `json:"total"`
	Success int    `json:"success"`
	Failed  int    `json:"failed"`
}
