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

type termiiSMS struct {
	cfg    *config.ProvidersConfig
	client *http.Client
}

// NewTermiiSMS sends plain SMS through the Termii messaging API.
func NewTermiiSMS(cfg *config.ProvidersConfig) Sender {
	return &termiiSMS{cfg: cfg, client: newHTTPClient()}
}

type termiiPayload struct {
	To      string `json:"to"`
	SMS     string `json:"sms"`
	From    string `json:"from"`
	Type    string `json:"type"`
	Channel string `json:"channel"`
	APIKey  string `json:"api_key"`
}

func (t *termiiSMS) Send(ctx context.Context, phone, message string) Result {
	if t.cfg.TermiiAPIKey == "" {
		return configFailure(domain.ProviderTermii, "API key missing")
	}

	payload := termiiPayload{
		To:   NormalizePhone(phone, t.cfg.CountryCode),
		SMS:  message,
		From: t.cfg.TermiiSenderID,
		Type: "plain",
		// DND channel is the reliable one for Nigerian numbers
		Channel: "dnd",
		APIKey:  t.cfg.TermiiAPIKey,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return transportFailure(domain.ProviderTermii, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.TermiiBaseURL+"/api/sms/send", bytes.NewReader(body))
	if err != nil {
		return transportFailure(domain.ProviderTermii, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return transportFailure(domain.ProviderTermii, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	var parsed struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &parsed)

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300 && parsed.Message == "Successfully Sent"
	return Result{Success: ok, Provider: domain.ProviderTermii, Response: raw}
}
