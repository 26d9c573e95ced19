package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/omotosho-cloud/church-visitor-manager/internal/cache"
	"github.com/omotosho-cloud/church-visitor-manager/internal/dispatch"
	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
	"github.com/omotosho-cloud/church-visitor-manager/internal/metrics"
	"github.com/omotosho-cloud/church-visitor-manager/internal/render"
	"github.com/omotosho-cloud/church-visitor-manager/internal/repository"
	"github.com/omotosho-cloud/church-visitor-manager/internal/types"
)

// BulkRecipient identifies one target of a bulk send.
type BulkRecipient struct {
	VisitorID *int64 `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
}

type BulkSendResult struct {
	Name    string `json:"visitor"`
	Phone   string `json:"phone"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type BulkSendReport struct {
	Total        int              `json:"total"`
	SuccessCount int              `json:"successCount"`
	FailCount    int              `json:"failCount"`
	Results      []BulkSendResult `json:"results"`
}

type BirthdayReport struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

type MessagingService interface {
	// Dispatches one message using current settings. A settings load
	// failure degrades to a service-error outcome, never an error.
	Send(ctx context.Context, phone, message string) dispatch.Outcome
	// Appends an audit log entry for a dispatch outcome.
	LogOutcome(ctx context.Context, visitorID *int64, visitorName, phone, message string, outcome dispatch.Outcome)
	// Church name from settings, falling back to the configured default.
	ChurchName(ctx context.Context) string
	// Recent-first send history, served through the cache index.
	GetLogs(ctx context.Context, page, pageSize int) ([]domain.MessageLog, int64, error)
	// Sends one message to each recipient; per-item failures are counted
	// and the batch always completes.
	SendBulk(ctx context.Context, recipients []BulkRecipient, message string) BulkSendReport
	// Sends the birthday template to every member whose birthday is today.
	SendBirthdayReminders(ctx context.Context, today time.Time) (BirthdayReport, error)
}

type messagingService struct {
	router       *dispatch.Router
	settingsRepo repository.SettingsRepository
	logRepo      repository.LogRepository
	logCache     cache.LogCache
	memberRepo   repository.MemberRepository
	templateRepo repository.TemplateRepository
	defaultName  string
	logger       zerolog.Logger
}

func NewMessagingService(
	router *dispatch.Router,
	settingsRepo repository.SettingsRepository,
	logRepo repository.LogRepository,
	logCache cache.LogCache,
	memberRepo repository.MemberRepository,
	templateRepo repository.TemplateRepository,
	defaultChurchName string,
	logger zerolog.Logger,
) MessagingService {
	return &messagingService{
		router:       router,
		settingsRepo: settingsRepo,
		logRepo:      logRepo,
		logCache:     logCache,
		memberRepo:   memberRepo,
		templateRepo: templateRepo,
		defaultName:  defaultChurchName,
		logger:       logger.With().Str("component", "messaging").Logger(),
	}
}

func (s *messagingService) Send(ctx context.Context, phone, message string) dispatch.Outcome {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load settings for dispatch")
		return dispatch.ServiceError()
	}
	return s.router.Send(ctx, settings, phone, message)
}

func (s *messagingService) LogOutcome(ctx context.Context, visitorID *int64, visitorName, phone, message string, outcome dispatch.Outcome) {
	status := domain.StatusFailed
	if outcome.Success {
		status = domain.StatusSent
	}

	entry := &domain.MessageLog{
		VisitorID:        visitorID,
		VisitorName:      visitorName,
		Phone:            phone,
		Message:          message,
		Status:           status,
		ProviderResponse: outcome.ResultsJSON(),
	}

	if err := s.logRepo.Create(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("phone", phone).Msg("failed to write message log")
		return
	}

	go s.cacheLogEntry(context.WithoutCancel(ctx), entry.ID, entry.SentAt)
}

func (s *messagingService) cacheLogEntry(ctx context.Context, logID int64, sentAt time.Time) {
	if err := s.logCache.AddLogEntry(ctx, logID, sentAt); err != nil {
		s.logger.Warn().Err(err).Int64("log_id", logID).Msg("failed to cache log entry")
	}
}

func (s *messagingService) ChurchName(ctx context.Context) string {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil || settings.ChurchName == "" {
		return s.defaultName
	}
	return settings.ChurchName
}

func (s *messagingService) GetLogs(ctx context.Context, page, pageSize int) ([]domain.MessageLog, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	ids, total, err := s.logCache.GetLogIDs(ctx, page, pageSize)
	if err != nil {
		// Cache down; serve straight from the table.
		return s.logRepo.List(ctx, pageSize, (page-1)*pageSize)
	}

	if len(ids) == 0 {
		return []domain.MessageLog{}, total, nil
	}

	logs, err := s.logRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (s *messagingService) SendBulk(ctx context.Context, recipients []BulkRecipient, message string) BulkSendReport {
	report := BulkSendReport{
		Total:   len(recipients),
		Results: make([]BulkSendResult, 0, len(recipients)),
	}

	for _, recipient := range recipients {
		outcome := s.Send(ctx, recipient.Phone, message)
		s.LogOutcome(ctx, recipient.VisitorID, recipient.Name, recipient.Phone, message, outcome)
		metrics.RecordBatchItem("bulk_send", outcome.Success)

		if outcome.Success {
			report.SuccessCount++
		} else {
			report.FailCount++
		}
		result := BulkSendResult{Name: recipient.Name, Phone: recipient.Phone, Success: outcome.Success}
		if !outcome.Success {
			result.Error = outcome.Message
		}
		report.Results = append(report.Results, result)
	}

	return report
}

func (s *messagingService) SendBirthdayReminders(ctx context.Context, today time.Time) (BirthdayReport, error) {
	var report BirthdayReport

	celebrants, err := s.memberRepo.ListByBirthday(ctx, int(today.Month()), today.Day())
	if err != nil {
		return report, err
	}
	report.Total = len(celebrants)
	if len(celebrants) == 0 {
		return report, nil
	}

	template, err := s.templateRepo.FirstByTrigger(ctx, domain.TriggerBirthday)
	if err != nil {
		if err == types.ErrNotFound {
			return report, types.ErrNotFound
		}
		return report, err
	}

	churchName := s.ChurchName(ctx)
	for _, member := range celebrants {
		message := render.Render(template.Message, render.Vars{
			Name:       member.Name,
			ChurchName: churchName,
		})

		outcome := s.Send(ctx, member.Phone, message)
		s.LogOutcome(ctx, nil, member.Name, member.Phone, message, outcome)
		metrics.RecordBatchItem("birthday", outcome.Success)

		if outcome.Success {
			report.Success++
		} else {
			report.Failed++
		}
	}

	return report, nil
}
