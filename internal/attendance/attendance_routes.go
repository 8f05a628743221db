package attendance

import (
	"unicube-hr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware())
	{
		attendance.GET("", handler.GetAll)
		attendance.PUT("", middleware.AdminOnly(), handler.SetStatus)
	}
}
