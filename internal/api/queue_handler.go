package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/omotosho-cloud/church-visitor-manager/internal/api/dto"
	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
	"github.com/omotosho-cloud/church-visitor-manager/internal/services"
)

func (h *Handler) listQueueHandler(c *gin.Context) {
	items, err := h.queueRepo.ListPending(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.QueueResponse{Items: items})
}

func (h *Handler) queueStatsHandler(c *gin.Context) {
	counts, err := h.queueRepo.CountByStatus(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.QueueStatsResponse{
		Pending: counts[domain.StatusPending],
		Sent:    counts[domain.StatusSent],
		Failed:  counts[domain.StatusFailed],
	})
}

// toggleJobHandler starts or stops the follow-up processor job based on its
// current state.
func (h *Handler) toggleJobHandler(c *gin.Context) {
	var err error
	var response dto.JobResponse

	if h.jobManager.IsRunning() {
		err = h.jobManager.Stop()
		response = dto.JobResponse{Status: "stopped"}
	} else {
		err = h.jobManager.Start(h.appCtx)
		response = dto.JobResponse{Status: "started"}
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) purgeTerminalHandler(c *gin.Context) {
	cutoff, err := time.Parse(time.RFC3339, c.Query("before"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "before must be an RFC3339 timestamp"})
		return
	}

	deleted, err := h.queueRepo.PurgeTerminalBefore(c.Request.Context(), cutoff)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PurgeResponse{Deleted: deleted})
}

func (h *Handler) scheduleBroadcastHandler(c *gin.Context) {
	var input services.ScheduleBroadcastInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "template_id and target required"})
		return
	}

	report, err := h.broadcastService.Schedule(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
