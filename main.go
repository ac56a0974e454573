package main

import (
	"context"
	"net/http"

	"food-ordering-api/auth"
	"food-ordering-api/config"
	"food-ordering-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	db, err := config.OpenDB(cfg.DBPath)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Sessions live in redis when configured, in process memory otherwise.
	var sessions auth.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if _, err := client.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		sessions = auth.NewRedisStore(client, 0)
	} else {
		logrus.Warn("REDIS_ADDR not set, using in-memory session store")
		sessions = auth.NewMemoryStore()
	}

	if err := config.SeedAdmin(db, cfg); err != nil {
		logrus.Fatalf("failed to seed admin: %v", err)
	}

	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	routes.SetupRoutes(r, db, sessions)

	logrus.Infof("server running on :%s", cfg.AppPort)
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("failed to start server: %v", err)
	}
}
