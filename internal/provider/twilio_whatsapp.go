package provider

import (
	"context"
	"net/http"
	"net/url"

	"github.com/omotosho-cloud/church-visitor-manager/config"
	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
)

type twilioWhatsApp struct {
	cfg    *config.ProvidersConfig
	client *http.Client
}

// NewTwilioWhatsApp reuses the Twilio Messages API with whatsapp: addressing.
// The From number defaults to the Twilio sandbox.
func NewTwilioWhatsApp(cfg *config.ProvidersConfig) Sender {
	return &twilioWhatsApp{cfg: cfg, client: newHTTPClient()}
}

func (t *twilioWhatsApp) Send(ctx context.Context, phone, message string) Result {
	if t.cfg.TwilioAccountSID == "" || t.cfg.TwilioAuthToken == "" {
		return configFailure(domain.ProviderTwilioWhatsApp, "Twilio credentials missing")
	}

	form := url.Values{
		"To":   {"whatsapp:" + NormalizePhoneE164(phone, t.cfg.CountryCode)},
		"From": {t.cfg.TwilioWhatsAppNumber},
		"Body": {message},
	}

	return twilioPost(ctx, t.client, t.cfg, domain.ProviderTwilioWhatsApp, form)
}
