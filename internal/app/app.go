package app

import (
	"fmt"
	"os"

	"unicube-hr/internal/recordstore"
	"unicube-hr/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp wires infrastructure and registers every module on the router.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	store, err := buildStore()
	if err != nil {
		return err
	}

	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			return err
		}
		logger.Info("redis connection established")
	} else {
		logger.Warn("REDIS_ADDR not set, report caching and idempotency disabled")
	}

	return registerModules(router, store, rdb)
}

// buildStore picks the record store backend from STORE_DRIVER: "postgres"
// for the gorm-backed store, anything else for JSON files under DATA_DIR.
func buildStore() (recordstore.Store, error) {
	switch os.Getenv("STORE_DRIVER") {
	case "postgres":
		db, err := connection.ConnectGORMWithRetry(
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_SSLMODE"),
			5,
		)
		if err != nil {
			return nil, err
		}
		store := recordstore.NewGormStore(db)
		if err := store.Migrate(); err != nil {
			return nil, fmt.Errorf("record store migration failed: %w", err)
		}
		return store, nil

	default:
		dataDir := os.Getenv("DATA_DIR")
		if dataDir == "" {
			dataDir = "data"
		}
		return recordstore.NewFileStore(dataDir)
	}
}
