package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
	"github.com/omotosho-cloud/church-visitor-manager/internal/metrics"
	"github.com/omotosho-cloud/church-visitor-manager/internal/render"
	"github.com/omotosho-cloud/church-visitor-manager/internal/repository"
)

// ProcessorService moves due queue items to a terminal state. Each item is
// processed independently: look up the visitor and template, render the
// message, dispatch, log, then update status. pending -> sent|failed, one
// attempt only; failures are not retried.
type ProcessorService interface {
	ProcessDueMessages(ctx context.Context) error
}

type processorService struct {
	queueRepo    repository.QueueRepository
	visitorRepo  repository.VisitorRepository
	templateRepo repository.TemplateRepository
	messaging    MessagingService
	logger       zerolog.Logger
}

func NewProcessorService(
	queueRepo repository.QueueRepository,
	visitorRepo repository.VisitorRepository,
	templateRepo repository.TemplateRepository,
	messaging MessagingService,
	logger zerolog.Logger,
) ProcessorService {
	return &processorService{
		queueRepo:    queueRepo,
		visitorRepo:  visitorRepo,
		templateRepo: templateRepo,
		messaging:    messaging,
		logger:       logger.With().Str("component", "processor").Logger(),
	}
}

func (s *processorService) ProcessDueMessages(ctx context.Context) error {
	due, err := s.queueRepo.ListDue(ctx, time.Now())
	if err != nil {
		return err
	}

	metrics.SetDueBacklog(len(due))
	if len(due) == 0 {
		return nil
	}

	s.logger.Info().Int("due", len(due)).Msg("processing due follow-ups")

	for _, item := range due {
		s.processItem(ctx, item)
	}
	return nil
}

func (s *processorService) processItem(ctx context.Context, item domain.QueuedMessage) {
	visitor, err := s.visitorRepo.GetByID(ctx, item.VisitorID)
	if err != nil {
		s.failItem(ctx, item, "visitor lookup failed", err)
		return
	}

	template, err := s.templateRepo.GetByID(ctx, item.TemplateID)
	if err != nil {
		s.failItem(ctx, item, "template lookup failed", err)
		return
	}

	message := render.Render(template.Message, render.Vars{
		Name:            visitor.Name,
		ChurchName:      s.messaging.ChurchName(ctx),
		ServiceAttended: visitor.Service,
	})

	outcome := s.messaging.Send(ctx, visitor.Phone, message)

	status := domain.StatusFailed
	if outcome.Success {
		status = domain.StatusSent
	}

	if err := s.queueRepo.UpdateStatus(ctx, item.ID, status); err != nil {
		// The item may stay pending and be retried next tick; accepted
		// residual inconsistency.
		s.logger.Error().Err(err).Int64("item_id", item.ID).Msg("failed to update queue item status")
	} else {
		metrics.RecordQueueItem(string(status))
	}

	s.messaging.LogOutcome(ctx, &visitor.ID, visitor.Name, visitor.Phone, message, outcome)
}

func (s *processorService) failItem(ctx context.Context, item domain.QueuedMessage, reason string, cause error) {
	s.logger.Error().Err(cause).Int64("item_id", item.ID).Msg(reason)

	if err := s.queueRepo.UpdateStatus(ctx, item.ID, domain.StatusFailed); err != nil {
		s.logger.Error().Err(err).Int64("item_id", item.ID).Msg("failed to update queue item status")
		return
	}
	metrics.RecordQueueItem(string(domain.StatusFailed))
}
