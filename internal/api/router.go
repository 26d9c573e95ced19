package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omotosho-cloud/church-visitor-manager/internal/metrics"
)

func NewRouter(h *Handler, debug bool) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware())

	router.GET("/health", h.healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		visitors := api.Group("/visitors")
		{
			visitors.POST("/", h.createVisitorHandler)
			visitors.GET("/", h.listVisitorsHandler)
			visitors.DELETE("/:id", h.deleteVisitorHandler)
			visitors.POST("/:id/promote", h.promoteVisitorHandler)
			visitors.POST("/bulk", h.bulkUploadVisitorsHandler)
		}

		members := api.Group("/members")
		{
			members.POST("/", h.createMemberHandler)
			members.GET("/", h.listMembersHandler)
			members.PUT("/:id", h.updateMemberHandler)
			members.DELETE("/:id", h.deleteMemberHandler)
			members.POST("/bulk", h.bulkUploadMembersHandler)
		}

		templates := api.Group("/templates")
		{
			templates.POST("/", h.createTemplateHandler)
			templates.GET("/", h.listTemplatesHandler)
			templates.PUT("/:id", h.updateTemplateHandler)
			templates.DELETE("/:id", h.deleteTemplateHandler)
		}

		messages := api.Group("/messages")
		{
			messages.POST("/", h.sendMessageHandler)
			messages.POST("/bulk", h.bulkSendHandler)
		}

		queue := api.Group("/queue")
		{
			queue.GET("/", h.listQueueHandler)
			queue.GET("/stats", h.queueStatsHandler)
			queue.PUT("/toggle-job", h.toggleJobHandler)
			queue.DELETE("/terminal", h.purgeTerminalHandler)
		}

		api.POST("/broadcasts", h.scheduleBroadcastHandler)
		api.POST("/birthday-reminders", h.birthdayRemindersHandler)
		api.GET("/logs", h.listLogsHandler)

		api.GET("/settings", h.getSettingsHandler)
		api.PUT("/settings", h.updateSettingsHandler)
		api.GET("/church-info", h.churchInfoHandler)

		api.GET("/services", h.listServicesHandler)
		api.POST("/services", h.createServiceHandler)
		api.DELETE("/services/:name", h.deleteServiceHandler)
	}

	return router
}
