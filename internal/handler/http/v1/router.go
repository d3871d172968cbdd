package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)

	secured := api.Group("", PrincipalAuthMiddleware(h.cfg, h.logger))
	{
		// Прием отчетов от источников координат
		secured.POST("/reports", h.submitReport)

		entities := secured.Group("/entities")
		{
			entities.GET("", h.listEntities)
			entities.POST("", h.createEntity)
			entities.GET("/:id/position", h.currentPosition)
			entities.GET("/:id/history", h.recentHistory)
			entities.GET("/:id/stream", h.streamPosition)
		}

		secured.POST("/admin/principals/:id/revoke", h.revokeSessions)
	}
}
