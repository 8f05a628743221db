package app

import (
	"context"
	"os"
	"time"

	"unicube-hr/internal/attendance"
	"unicube-hr/internal/auth"
	"unicube-hr/internal/goal"
	"unicube-hr/internal/insight"
	"unicube-hr/internal/leave"
	"unicube-hr/internal/messaging/kafka"
	"unicube-hr/internal/middleware"
	"unicube-hr/internal/recordstore"
	"unicube-hr/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func registerModules(
	router *gin.Engine,
	store recordstore.Store,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	userRepo := user.NewRepository(store)
	leaveRepo := leave.NewRepository(store)
	attendanceRepo := attendance.NewRepository(store)
	goalRepo := goal.NewRepository(store)
	outboxRepo := kafka.NewOutboxRepository(store)

	if err := user.Seed(context.Background(), userRepo, logger); err != nil {
		return err
	}

	// --- Services ---
	insightURL := os.Getenv("INSIGHT_API_URL")
	generator := insight.NewHTTPGenerator(insightURL, 30*time.Second)
	insightService := insight.NewService(leaveRepo, generator, rdb)

	attendanceService := attendance.NewService(attendanceRepo, leaveRepo, userRepo)
	leaveService := leave.NewServiceWithHooks(leaveRepo, attendanceService, outboxRepo, insightService)
	goalService := goal.NewService(goalRepo, userRepo)
	authService := auth.NewService(userRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	attendanceHandler := attendance.NewHandler(attendanceService)
	goalHandler := goal.NewHandler(goalService)
	insightHandler := insight.NewHandler(insightService)

	// --- Routes Registration ---
	idempotency := gin.HandlerFunc(func(c *gin.Context) { c.Next() })
	if rdb != nil {
		idempotency = middleware.Idempotency(rdb)
	}

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		leave.RegisterRoutes(api, leaveHandler, idempotency)
		attendance.RegisterRoutes(api, attendanceHandler)
		goal.RegisterRoutes(api, goalHandler)
		insight.RegisterRoutes(api, insightHandler)
	}

	return nil
}
