package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/myth3x/mythex-snapshare/internal/config"
	"github.com/myth3x/mythex-snapshare/internal/database"
	"github.com/myth3x/mythex-snapshare/internal/handlers"
	"github.com/myth3x/mythex-snapshare/internal/links"
	"github.com/myth3x/mythex-snapshare/internal/middleware"
	"github.com/myth3x/mythex-snapshare/internal/models"
	"github.com/myth3x/mythex-snapshare/internal/routes"
	"github.com/myth3x/mythex-snapshare/internal/storage"
	"github.com/myth3x/mythex-snapshare/pkg/logger"
)

func main() {
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting snapshare backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	database.Connect()
	database.InitRedis()

	if err := database.DB.AutoMigrate(&models.User{}, &models.Screenshot{}); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run database migrations")
	}
	logger.Info().Msg("Database migrations complete")

	store, err := storage.NewClient(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to init storage client")
	}

	registry := links.NewRegistry(database.DB).WithCache(database.LinkCache{})
	resolver := links.NewResolver(registry, store)
	handlers.Init(registry, resolver, store)

	r := gin.New()

	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	api.Use(middleware.GeneralRateLimit())
	{
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		routes.RegisterAuthRoutes(auth)

		routes.RegisterScreenshotRoutes(api)
		routes.RegisterAdminRoutes(api)
	}

	// Public short-link redirects, rate limited separately
	routes.RegisterLinkRoutes(r)

	// Health check with DB and Redis status
	r.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		redisStatus := "ok"

		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "error"
		}

		if database.Redis != nil {
			if _, err := database.Redis.Ping(context.Background()).Result(); err != nil {
				redisStatus = "error"
			}
		} else {
			redisStatus = "not configured"
		}

		status := "ok"
		if dbStatus != "ok" || (redisStatus != "ok" && redisStatus != "not configured") {
			status = "degraded"
		}

		c.JSON(200, gin.H{
			"status": status,
			"checks": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	})

	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Str("env", env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
