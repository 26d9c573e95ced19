package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/omotosho-cloud/church-visitor-manager/internal/api/dto"
	"github.com/omotosho-cloud/church-visitor-manager/internal/types"
)

// sendMessageHandler dispatches one ad-hoc message through the configured
// channels and reports the aggregated outcome.
func (h *Handler) sendMessageHandler(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "phone and message required"})
		return
	}

	outcome := h.messagingService.Send(c.Request.Context(), req.Phone, req.Message)
	h.messagingService.LogOutcome(c.Request.Context(), nil, "", req.Phone, req.Message, outcome)

	c.JSON(http.StatusOK, outcome)
}

func (h *Handler) bulkSendHandler(c *gin.Context) {
	var req dto.BulkSendRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Visitors) == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "no visitors selected"})
		return
	}

	report := h.messagingService.SendBulk(c.Request.Context(), req.Visitors, req.Message)
	c.JSON(http.StatusOK, report)
}

func (h *Handler) birthdayRemindersHandler(c *gin.Context) {
	report, err := h.messagingService.SendBirthdayReminders(c.Request.Context(), time.Now())
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "no birthday template found, create one in the templates page",
			})
			return
		}
		h.respondError(c, err)
		return
	}

	message := "Birthday reminders processed"
	if report.Total == 0 {
		message = "No birthdays today"
	}
	c.JSON(http.StatusOK, dto.BirthdayResponse{
		Message: message,
		Total:   report.Total,
		Success: report.Success,
		Failed:  report.Failed,
	})
}

func (h *Handler) listLogsHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	logs, total, err := h.messagingService.GetLogs(c.Request.Context(), page, pageSize)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LogsResponse{Logs: logs, Total: total})
}
