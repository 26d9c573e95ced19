package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/omotosho-cloud/church-visitor-manager/config"
	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
)

type twilioSMS struct {
	cfg    *config.ProvidersConfig
	client *http.Client
}

// NewTwilioSMS sends SMS through the Twilio Messages API.
func NewTwilioSMS(cfg *config.ProvidersConfig) Sender {
	return &twilioSMS{cfg: cfg, client: newHTTPClient()}
}

func (t *twilioSMS) Send(ctx context.Context, phone, message string) Result {
	if t.cfg.TwilioAccountSID == "" || t.cfg.TwilioAuthToken == "" || t.cfg.TwilioPhoneNumber == "" {
		return configFailure(domain.ProviderTwilio, "Twilio credentials missing")
	}

	form := url.Values{
		"To":   {NormalizePhoneE164(phone, t.cfg.CountryCode)},
		"From": {t.cfg.TwilioPhoneNumber},
		"Body": {message},
	}

	return twilioPost(ctx, t.client, t.cfg, domain.ProviderTwilio, form)
}

// twilioPost performs a form-encoded Basic-auth call against the Twilio
// Messages endpoint; both the SMS and WhatsApp adapters go through it.
func twilioPost(ctx context.Context, client *http.Client, cfg *config.ProvidersConfig, providerName string, form url.Values) Result {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", cfg.TwilioBaseURL, cfg.TwilioAccountSID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return transportFailure(providerName, err)
	}
	req.SetBasicAuth(cfg.TwilioAccountSID, cfg.TwilioAuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return transportFailure(providerName, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	return Result{Success: ok, Provider: providerName, Response: raw}
}
