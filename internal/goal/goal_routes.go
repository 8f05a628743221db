package goal

import (
	"unicube-hr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	goals := r.Group("/goals")
	goals.Use(middleware.AuthMiddleware())
	{
		goals.GET("", handler.GetAll)
		goals.POST("", middleware.AdminOnly(), handler.Create)
		goals.PATCH("/:id/status", handler.SetStatus)
		goals.DELETE("/:id", middleware.AdminOnly(), handler.Delete)
	}
}
