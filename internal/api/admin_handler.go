package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omotosho-cloud/church-visitor-manager/internal/api/dto"
	"github.com/omotosho-cloud/church-visitor-manager/internal/domain"
)

func (h *Handler) createTemplateHandler(c *gin.Context) {
	var req dto.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "missing required fields"})
		return
	}

	template := &domain.Template{
		Name:        req.Name,
		Message:     req.Message,
		TriggerType: req.TriggerType,
		DelayDays:   req.DelayDays,
	}
	if err := h.templateRepo.Create(c.Request.Context(), template); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *Handler) listTemplatesHandler(c *gin.Context) {
	templates, err := h.templateRepo.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *Handler) updateTemplateHandler(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid id"})
		return
	}

	var req dto.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "missing required fields"})
		return
	}

	template := &domain.Template{
		ID:          id,
		Name:        req.Name,
		Message:     req.Message,
		TriggerType: req.TriggerType,
		DelayDays:   req.DelayDays,
	}
	if err := h.templateRepo.Update(c.Request.Context(), template); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *Handler) deleteTemplateHandler(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid id"})
		return
	}
	if err := h.templateRepo.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) getSettingsHandler(c *gin.Context) {
	settings, err := h.settingsRepo.Get(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) updateSettingsHandler(c *gin.Context) {
	var req dto.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid settings payload"})
		return
	}

	settings, err := h.settingsRepo.Get(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	settings.ChurchName = req.ChurchName
	settings.Logo = req.Logo
	settings.SenderID = req.SenderID
	settings.MessageChannel = req.MessageChannel
	settings.SMSProvider = req.SMSProvider
	settings.WhatsAppProvider = req.WhatsAppProvider
	settings.AutomationEnabled = req.AutomationEnabled

	if err := h.settingsRepo.Update(c.Request.Context(), settings); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// churchInfoHandler serves the public subset of settings used by the
// visitor form.
func (h *Handler) churchInfoHandler(c *gin.Context) {
	settings, err := h.settingsRepo.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, dto.ChurchInfoResponse{ChurchName: "Church"})
		return
	}
	c.JSON(http.StatusOK, dto.ChurchInfoResponse{ChurchName: settings.ChurchName, Logo: settings.Logo})
}

func (h *Handler) listServicesHandler(c *gin.Context) {
	names, err := h.serviceRepo.ListNames(c.Request.Context())
	if err != nil {
		// The visitor form still needs choices when the lookup fails.
		c.JSON(http.StatusOK, []string{"Sunday Morning", "Sunday Evening", "Wednesday Service"})
		return
	}
	c.JSON(http.StatusOK, names)
}

func (h *Handler) createServiceHandler(c *gin.Context) {
	var req dto.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "name required"})
		return
	}
	if err := h.serviceRepo.Create(c.Request.Context(), req.Name); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *Handler) deleteServiceHandler(c *gin.Context) {
	if err := h.serviceRepo.DeleteByName(c.Request.Context(), c.Param("name")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
