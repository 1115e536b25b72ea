package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mrnewton/activity-api/internal/config"
	"github.com/mrnewton/activity-api/internal/database"
	"github.com/mrnewton/activity-api/internal/handler"
	"github.com/mrnewton/activity-api/internal/middleware"
	"github.com/mrnewton/activity-api/internal/models"
	"github.com/mrnewton/activity-api/internal/repository"
	"github.com/mrnewton/activity-api/internal/router"
	"github.com/mrnewton/activity-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Activity{},
		&models.DeploymentInstance{},
		&models.Submission{},
		&models.ConfigParamsSchema{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer cache.Close()
	} else {
		logger.Warn().Msg("redis url not configured, schema caching disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	activityRepo := repository.NewActivityRepository(db)
	instanceRepo := repository.NewInstanceRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	schemaRepo := repository.NewParamSchemaRepository(db)

	activityService := service.NewActivityService(activityRepo, instanceRepo, submissionRepo, schemaRepo, cache, cfg, logger)
	activityFacade := service.NewActivityFacade(activityService, logger)

	activityHandler := handler.NewActivityHandler(activityFacade, activityService, validate, logger)
	instanceHandler := handler.NewInstanceHandler(activityService, validate, logger)
	submissionHandler := handler.NewSubmissionHandler(activityService, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ActivityHandler:   activityHandler,
		InstanceHandler:   instanceHandler,
		SubmissionHandler: submissionHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
