package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
	"github.com/omotosho-cloud/church-visitor-manager/internal/repository"
)

type BroadcastTarget string

const (
	TargetAll       BroadcastTarget = "all"
	TargetDateRange BroadcastTarget = "date_range"
)

type ScheduleBroadcastInput struct {
	TemplateID  int64           `json:"template_id" binding:"required"`
	Target      BroadcastTarget `json:"target" binding:"required"`
	StartDate   *time.Time      `json:"start_date"`
	EndDate     *time.Time      `json:"end_date"`
	ScheduledAt *time.Time      `json:"scheduled_at"`
}

type BroadcastReport struct {
	Count   int       `json:"count"`
	BatchID uuid.UUID `json:"batch_id"`
}

type BroadcastService interface {
	// Enqueues one message per targeted visitor. An empty target set
	// enqueues nothing and reports count 0.
	Schedule(ctx context.Context, input ScheduleBroadcastInput) (BroadcastReport, error)
}

type broadcastService struct {
	visitorRepo  repository.VisitorRepository
	templateRepo repository.TemplateRepository
	queueRepo    repository.QueueRepository
	logger       zerolog.Logger
}

func NewBroadcastService(
	visitorRepo repository.VisitorRepository,
	templateRepo repository.TemplateRepository,
	queueRepo repository.QueueRepository,
	logger zerolog.Logger,
) BroadcastService {
	return &broadcastService{
		visitorRepo:  visitorRepo,
		templateRepo: templateRepo,
		queueRepo:    queueRepo,
		logger:       logger.With().Str("component", "broadcast").Logger(),
	}
}

func (s *broadcastService) Schedule(ctx context.Context, input ScheduleBroadcastInput) (BroadcastReport, error) {
	report := BroadcastReport{BatchID: uuid.New()}

	template, err := s.templateRepo.GetByID(ctx, input.TemplateID)
	if err != nil {
		return report, err
	}

	var visitors []domain.Visitor
	if input.Target == TargetDateRange {
		start := time.Time{}
		if input.StartDate != nil {
			start = *input.StartDate
		}
		end := time.Now()
		if input.EndDate != nil {
			end = *input.EndDate
		}
		visitors, err = s.visitorRepo.ListCreatedBetween(ctx, start, end)
	} else {
		visitors, err = s.visitorRepo.List(ctx)
	}
	if err != nil {
		return report, err
	}

	scheduledFor := time.Now()
	if input.ScheduledAt != nil {
		scheduledFor = *input.ScheduledAt
	}

	for _, visitor := range visitors {
		item := &domain.QueuedMessage{
			VisitorID:    visitor.ID,
			TemplateID:   template.ID,
			Phone:        visitor.Phone,
			Message:      template.Message,
			ScheduledFor: scheduledFor,
			Status:       domain.StatusPending,
			BatchID:      &report.BatchID,
		}
		if err := s.queueRepo.Enqueue(ctx, item); err != nil {
			s.logger.Error().Err(err).Int64("visitor_id", visitor.ID).Msg("failed to enqueue broadcast message")
			continue
		}
		report.Count++
	}

	s.logger.Info().
		Str("batch_id", report.BatchID.String()).
		Int("count", report.Count).
		Time("scheduled_for", scheduledFor).
		Msg("broadcast scheduled")

	return report, nil
}
