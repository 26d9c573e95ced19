package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
	"github.com/omotosho-cloud/church-visitor-manager/internal/metrics"
	"github.com/omotosho-cloud/church-visitor-manager/internal/render"
	"github.com/omotosho-cloud/church-visitor-manager/internal/repository"
	"github.com/omotosho-cloud/church-visitor-manager/internal/types"
)

type CreateVisitorInput struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Gender  string `json:"gender" binding:"required"`
	Service string `json:"service"`
	Notes   string `json:"notes"`
}

type PromoteInput struct {
	Category         domain.MemberCategory   `json:"category"`
	MembershipStatus domain.MembershipStatus `json:"membership_status"`
	JoinDate         string                  `json:"join_date"`
}

type BulkReport struct {
	Success int `json:"success"`
	Errors  int `json:"errors"`
}

type VisitorService interface {
	// Creates a visitor and runs the follow-up automation: instant
	// template dispatch and delay template enqueuing. Automation errors
	// never fail the creation.
	Create(ctx context.Context, input CreateVisitorInput) (*domain.Visitor, error)
	List(ctx context.Context) ([]domain.Visitor, error)
	Delete(ctx context.Context, id int64) error
	// Copies visitor fields into a new member and deletes the visitor.
	// No message side effects.
	Promote(ctx context.Context, visitorID int64, input PromoteInput) (*domain.Member, error)
	// Imports a CSV of visitors, running the intake automation per row.
	// Invalid and duplicate rows are counted and skipped.
	BulkImport(ctx context.Context, r io.Reader) (BulkReport, error)
}

type visitorService struct {
	visitorRepo  repository.VisitorRepository
	memberRepo   repository.MemberRepository
	templateRepo repository.TemplateRepository
	queueRepo    repository.QueueRepository
	messaging    MessagingService
	logger       zerolog.Logger
}

func NewVisitorService(
	visitorRepo repository.VisitorRepository,
	memberRepo repository.MemberRepository,
	templateRepo repository.TemplateRepository,
	queueRepo repository.QueueRepository,
	messaging MessagingService,
	logger zerolog.Logger,
) VisitorService {
	return &visitorService{
		visitorRepo:  visitorRepo,
		memberRepo:   memberRepo,
		templateRepo: templateRepo,
		queueRepo:    queueRepo,
		messaging:    messaging,
		logger:       logger.With().Str("component", "visitors").Logger(),
	}
}

func (s *visitorService) Create(ctx context.Context, input CreateVisitorInput) (*domain.Visitor, error) {
	if input.Name == "" || input.Phone == "" || input.Gender == "" {
		return nil, fmt.Errorf("missing required fields")
	}

	exists, err := s.visitorRepo.ExistsByPhone(ctx, input.Phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, types.ErrDuplicatePhone
	}

	visitor := &domain.Visitor{
		Name:    input.Name,
		Phone:   input.Phone,
		Gender:  strings.ToLower(input.Gender),
		Service: input.Service,
		Notes:   input.Notes,
	}
	if err := s.visitorRepo.Create(ctx, visitor); err != nil {
		return nil, err
	}

	// Best effort; a provider outage must not block intake.
	s.runIntakeAutomation(ctx, visitor)

	return visitor, nil
}

func (s *visitorService) runIntakeAutomation(ctx context.Context, visitor *domain.Visitor) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("intake automation panicked")
		}
	}()

	instant, err := s.templateRepo.FirstByTrigger(ctx, domain.TriggerInstant)
	if err != nil && err != types.ErrNotFound {
		s.logger.Error().Err(err).Msg("failed to look up instant template")
	}
	if err == nil {
		message := render.Render(instant.Message, render.Vars{
			Name:            visitor.Name,
			ChurchName:      s.messaging.ChurchName(ctx),
			ServiceAttended: visitor.Service,
		})

		outcome := s.messaging.Send(ctx, visitor.Phone, message)
		s.messaging.LogOutcome(ctx, &visitor.ID, visitor.Name, visitor.Phone, message, outcome)
	}

	delayed, err := s.templateRepo.ListByTrigger(ctx, domain.TriggerDelay)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up delay templates")
		return
	}

	for _, template := range delayed {
		if template.DelayDays <= 0 {
			continue
		}

		item := &domain.QueuedMessage{
			VisitorID:    visitor.ID,
			TemplateID:   template.ID,
			Phone:        visitor.Phone,
			Message:      template.Message,
			ScheduledFor: time.Now().AddDate(0, 0, template.DelayDays),
			Status:       domain.StatusPending,
		}
		if err := s.queueRepo.Enqueue(ctx, item); err != nil {
			s.logger.Error().Err(err).
				Int64("visitor_id", visitor.ID).
				Int64("template_id", template.ID).
				Msg("failed to enqueue follow-up")
		}
	}
}

func (s *visitorService) List(ctx context.Context) ([]domain.Visitor, error) {
	return s.visitorRepo.List(ctx)
}

func (s *visitorService) Delete(ctx context.Context, id int64) error {
	return s.visitorRepo.Delete(ctx, id)
}

func (s *visitorService) Promote(ctx context.Context, visitorID int64, input PromoteInput) (*domain.Member, error) {
	visitor, err := s.visitorRepo.GetByID(ctx, visitorID)
	if err != nil {
		return nil, err
	}

	category := input.Category
	if category == "" {
		category = domain.CategoryAdult
	}
	status := input.MembershipStatus
	if status == "" {
		status = domain.MembershipActive
	}
	joinDate := input.JoinDate
	if joinDate == "" {
		joinDate = time.Now().Format("2006-01-02")
	}

	member := &domain.Member{
		Name:             visitor.Name,
		Phone:            visitor.Phone,
		Gender:           visitor.Gender,
		Category:         category,
		MembershipStatus: status,
		BirthMonth:       visitor.BirthMonth,
		BirthDay:         visitor.BirthDay,
		MaritalStatus:    visitor.MaritalStatus,
		AnniversaryMonth: visitor.AnniversaryMonth,
		AnniversaryDay:   visitor.AnniversaryDay,
		Notes:            visitor.Notes,
		JoinDate:         joinDate,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	if err := s.visitorRepo.Delete(ctx, visitorID); err != nil {
		s.logger.Error().Err(err).Int64("visitor_id", visitorID).Msg("failed to delete promoted visitor")
	}

	return member, nil
}

func (s *visitorService) BulkImport(ctx context.Context, r io.Reader) (BulkReport, error) {
	var report BulkReport

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return report, fmt.Errorf("CSV file is empty")
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Errors++
			metrics.RecordBatchItem("visitor_import", false)
			continue
		}

		input := CreateVisitorInput{
			Name:    field(row, "name"),
			Phone:   field(row, "phone"),
			Gender:  field(row, "gender"),
			Service: field(row, "service"),
			Notes:   field(row, "notes"),
		}

		if _, err := s.Create(ctx, input); err != nil {
			report.Errors++
			metrics.RecordBatchItem("visitor_import", false)
			continue
		}
		report.Success++
		metrics.RecordBatchItem("visitor_import", true)
	}

	return report, nil
}
