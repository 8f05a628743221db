package insight

import (
	"unicube-hr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	insights := r.Group("/insights")
	insights.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		// upstream calls are expensive, keep the button rate-limited
		insights.POST("/report", middleware.RateLimitByUser(0.2, 2), handler.GenerateReport)
	}
}
