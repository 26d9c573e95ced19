package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omotosho-cloud/church-visitor-manager/internal/api/dto"
	"github.com/omotosho-cloud/church-visitor-manager/internal/services"
)

// createVisitorHandler handles the public visitor form submission. Creating
// the visitor also triggers the follow-up automation.
func (h *Handler) createVisitorHandler(c *gin.Context) {
	var input services.CreateVisitorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "missing required fields"})
		return
	}

	visitor, err := h.visitorService.Create(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VisitorResponse{Success: true, Visitor: visitor})
}

func (h *Handler) listVisitorsHandler(c *gin.Context) {
	visitors, err := h.visitorService.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, visitors)
}

func (h *Handler) deleteVisitorHandler(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid id"})
		return
	}
	if err := h.visitorService.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) promoteVisitorHandler(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid id"})
		return
	}

	var input services.PromoteInput
	// Body is optional; defaults are applied by the service.
	_ = c.ShouldBindJSON(&input)

	member, err := h.visitorService.Promote(c.Request.Context(), id, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PromoteResponse{Success: true, Member: member})
}

func (h *Handler) bulkUploadVisitorsHandler(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "no file provided"})
		return
	}
	defer file.Close()

	report, err := h.visitorService.BulkImport(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
