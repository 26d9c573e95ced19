package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/omotosho-cloud/church-visitor-manager/config"
	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
)

type termiiWhatsApp struct {
	cfg    *config.ProvidersConfig
	client *http.Client
}

// NewTermiiWhatsApp sends WhatsApp messages through Termii's template API.
// Termii requires a pre-approved template and a device registered in the
// dashboard; without both the adapter fails fast.
func NewTermiiWhatsApp(cfg *config.ProvidersConfig) Sender {
	return &termiiWhatsApp{cfg: cfg, client: newHTTPClient()}
}

type termiiTemplatePayload struct {
	APIKey      string            `json:"api_key"`
	PhoneNumber string            `json:"phone_number"`
	DeviceID    string            `json:"device_id"`
	TemplateID  string            `json:"template_id"`
	Data        map[string]string `json:"data"`
}

func (t *termiiWhatsApp) Send(ctx context.Context, phone, message string) Result {
	if t.cfg.TermiiAPIKey == "" {
		return configFailure(domain.ProviderTermiiWhatsApp, "API key missing")
	}
	if t.cfg.TermiiDeviceID == "" || t.cfg.TermiiWhatsAppTemplateID == "" {
		return configFailure(domain.ProviderTermiiWhatsApp, "WhatsApp configuration incomplete")
	}

	payload := termiiTemplatePayload{
		APIKey:      t.cfg.TermiiAPIKey,
		PhoneNumber: NormalizePhone(phone, t.cfg.CountryCode),
		DeviceID:    t.cfg.TermiiDeviceID,
		TemplateID:  t.cfg.TermiiWhatsAppTemplateID,
		Data: map[string]string{
			"product_name": "Church Visitor Manager",
			"message":      message,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return transportFailure(domain.ProviderTermiiWhatsApp, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.TermiiBaseURL+"/api/send/template", bytes.NewReader(body))
	if err != nil {
		return transportFailure(domain.ProviderTermiiWhatsApp, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return transportFailure(domain.ProviderTermiiWhatsApp, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	var parsed struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &parsed)

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300 &&
		(parsed.Code == "ok" || parsed.Message == "Successfully Sent")
	return Result{Success: ok, Provider: domain.ProviderTermiiWhatsApp, Response: raw}
}
