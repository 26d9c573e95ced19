package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/omotosho-cloud/church-visitor-manager/internal/api/dto"
	"github.com/omotosho-cloud/church-visitor-manager/internal/repository"
	"github.com/omotosho-cloud/church-visitor-manager/internal/services"
	"github.com/omotosho-cloud/church-visitor-manager/internal/types"
	"github.com/omotosho-cloud/church-visitor-manager/internal/worker"
)

type Handler struct {
	visitorService   services.VisitorService
	memberService    services.MemberService
	messagingService services.MessagingService
	broadcastService services.BroadcastService
	templateRepo     repository.TemplateRepository
	queueRepo        repository.QueueRepository
	settingsRepo     repository.SettingsRepository
	serviceRepo      repository.ServiceRepository
	jobManager       *worker.JobManager
	appCtx           context.Context
	logger           zerolog.Logger
}

func NewHandler(
	visitorService services.VisitorService,
	memberService services.MemberService,
	messagingService services.MessagingService,
	broadcastService services.BroadcastService,
	templateRepo repository.TemplateRepository,
	queueRepo repository.QueueRepository,
	settingsRepo repository.SettingsRepository,
	serviceRepo repository.ServiceRepository,
	jobManager *worker.JobManager,
	appCtx context.Context,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		visitorService:   visitorService,
		memberService:    memberService,
		messagingService: messagingService,
		broadcastService: broadcastService,
		templateRepo:     templateRepo,
		queueRepo:        queueRepo,
		settingsRepo:     settingsRepo,
		serviceRepo:      serviceRepo,
		jobManager:       jobManager,
		appCtx:           appCtx,
		logger:           logger.With().Str("component", "api").Logger(),
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, types.ErrDuplicatePhone):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, types.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
}

func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
