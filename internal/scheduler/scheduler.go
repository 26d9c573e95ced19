// Package scheduler runs calendar-based jobs, currently the daily birthday
// reminder batch.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/omotosho-cloud/church-visitor-manager/internal/services"
	"github.com/omotosho-cloud/church-visitor-manager/internal/types"
)

type Scheduler struct {
	cron      *cron.Cron
	messaging services.MessagingService
	logger    zerolog.Logger
}

func NewScheduler(messaging services.MessagingService, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		messaging: messaging,
		logger:    logger.With().Str("component", "scheduler").Logger(),
	}
}

func (s *Scheduler) Start() {
	// birthday greetings go out every morning
	s.cron.AddFunc("0 8 * * *", s.runBirthdayBatch)
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runBirthdayBatch() {
	ctx := context.Background()

	report, err := s.messaging.SendBirthdayReminders(ctx, time.Now())
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			s.logger.Warn().Msg("no birthday template configured, skipping batch")
			return
		}
		s.logger.Error().Err(err).Msg("birthday batch failed")
		return
	}

	if report.Total > 0 {
		s.logger.Info().
			Int("total", report.Total).
			Int("success", report.Success).
			Int("failed", report.Failed).
			Msg("birthday reminders processed")
	}
}
