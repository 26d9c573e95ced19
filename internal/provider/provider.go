// Package provider implements the notification backends. Each adapter makes
// one outbound HTTP call per Send and normalizes every failure mode (missing
// credentials, transport error, non-2xx status, provider-reported failure)
// into a Result with Success=false. Retrying is the caller's concern.
package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/omotosho-cloud/church-visitor-manager/config"
	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
)

// Result is the uniform outcome of a single provider call. Response carries
// the raw provider body for the audit log.
type Result struct {
	Success  bool            `json:"success"`
	Provider string          `json:"provider"`
	Response json.RawMessage `json:"response,omitempty"`
	Err      string          `json:"error,omitempty"`
}

type Sender interface {
	Send(ctx context.Context, phone, message string) Result
}

const requestTimeout = 10 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

func configFailure(provider, reason string) Result {
	return Result{Success: false, Provider: provider, Err: reason}
}

func transportFailure(provider string, err error) Result {
	return Result{Success: false, Provider: provider, Err: err.Error()}
}

// Registry maps a channel and provider name to an adapter. Unknown names
// fall back to the channel default so a bad settings row never blocks sends.
type Registry struct {
	sms      map[string]Sender
	whatsapp map[string]Sender
}

func NewRegistry(cfg *config.ProvidersConfig) *Registry {
	return &Registry{
		sms: map[string]Sender{
			domain.ProviderTermii: NewTermiiSMS(cfg),
			domain.ProviderTwilio: NewTwilioSMS(cfg),
		},
		whatsapp: map[string]Sender{
			domain.ProviderTermiiWhatsApp: NewTermiiWhatsApp(cfg),
			domain.ProviderTwilioWhatsApp: NewTwilioWhatsApp(cfg),
		},
	}
}

func (r *Registry) ForChannel(channel domain.MessageChannel, name string) Sender {
	switch channel {
	case domain.ChannelWhatsApp:
		if s, ok := r.whatsapp[name]; ok {
			return s
		}
		return r.whatsapp[domain.ProviderTwilioWhatsApp]
	default:
		if s, ok := r.sms[name]; ok {
			return s
		}
		return r.sms[domain.ProviderTermii]
	}
}
