// Package dispatch routes a message to the channels enabled in settings.
package dispatch

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
	"github.com/omotosho-cloud/church-visitor-manager/internal/metrics"
	"github.com/omotosho-cloud/church-visitor-manager/internal/provider"
)

// ChannelResult is one channel's outcome within a dispatch.
type ChannelResult struct {
	Channel  domain.MessageChannel `json:"channel"`
	Success  bool                  `json:"success"`
	Provider string                `json:"provider"`
	Response json.RawMessage       `json:"response,omitempty"`
	Err      string                `json:"error,omitempty"`
}

// Outcome aggregates the per-channel results of one dispatch. Success is
// true when at least one channel delivered; redundancy is the point of
// enabling both channels.
type Outcome struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Results []ChannelResult `json:"results"`
}

// ResultsJSON renders the per-channel results for the audit log.
func (o Outcome) ResultsJSON() json.RawMessage {
	raw, err := json.Marshal(o.Results)
	if err != nil {
		return nil
	}
	return raw
}

// ServiceError is the outcome reported when settings cannot be loaded. The
// caller gets a failed result, never an error.
func ServiceError() Outcome {
	return Outcome{Success: false, Message: "service error", Results: []ChannelResult{}}
}

type Router struct {
	registry *provider.Registry
	logger   zerolog.Logger
}

func NewRouter(registry *provider.Registry, logger zerolog.Logger) *Router {
	return &Router{
		registry: registry,
		logger:   logger.With().Str("component", "dispatch").Logger(),
	}
}

// Send dispatches the message on every channel enabled in settings,
// sequentially, and reports overall success as the OR across channels.
func (r *Router) Send(ctx context.Context, settings *domain.Settings, phone, message string) Outcome {
	if settings == nil {
		return ServiceError()
	}

	results := make([]ChannelResult, 0, 2)
	for _, channel := range settings.Channels() {
		name := settings.SMSProvider
		if channel == domain.ChannelWhatsApp {
			name = settings.WhatsAppProvider
		}

		sender := r.registry.ForChannel(channel, name)
		res := sender.Send(ctx, phone, message)

		metrics.RecordDispatch(string(channel), res.Provider, res.Success)
		r.logger.Debug().
			Str("channel", string(channel)).
			Str("provider", res.Provider).
			Bool("success", res.Success).
			Msg("channel dispatch finished")

		results = append(results, ChannelResult{
			Channel:  channel,
			Success:  res.Success,
			Provider: res.Provider,
			Response: res.Response,
			Err:      res.Err,
		})
	}

	anySuccess := false
	for _, res := range results {
		if res.Success {
			anySuccess = true
			break
		}
	}

	msg := "All channels failed"
	if anySuccess {
		msg = "Message sent"
	}
	return Outcome{Success: anySuccess, Message: msg, Results: results}
}
