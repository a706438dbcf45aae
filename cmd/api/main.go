package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"org-alerts/internal/config"
	"org-alerts/internal/handler"
	"org-alerts/internal/middleware"
	"org-alerts/internal/pkg/logging"
	"org-alerts/internal/pkg/seed"
	"org-alerts/internal/repository"
	"org-alerts/internal/repository/memory"
	"org-alerts/internal/scheduler"
	"org-alerts/internal/service"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFile)
	if envErr != nil {
		log.Info("No .env file found, using environment variables")
	}

	repos, closeStore := openStore(cfg, log)
	defer closeStore()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}
	if redis != nil {
		defer redis.Close()
	}

	services := service.NewServices(repos, redis, cfg, log)

	if cfg.SeedOnStart {
		applySeed(cfg, services.Seed, log)
	}

	if cfg.ReminderSchedule != "" {
		sched, err := scheduler.New(cfg.ReminderSchedule, services.Reminder, cfg.Location(), log)
		if err != nil {
			log.WithError(err).Fatal("Failed to configure reminder scheduler")
		}
		sched.Start()
		defer sched.Stop()
	}

	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, OPTIONS",
	}))

	handler.SetupRoutes(app, handlers)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Server shutdown failed")
		}
	}()

	log.WithField("port", cfg.Port).Info("Server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}

func openStore(cfg *config.Config, log *logrus.Logger) (*repository.Repositories, func()) {
	if cfg.StoreDriver != config.StorePostgres {
		log.Info("Using in-memory store")
		return memory.NewRepositories(), func() {}
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repository.Migrate(ctx, db); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}

	return repository.NewRepositories(db), func() { _ = db.Close() }
}

func applySeed(cfg *config.Config, seeds seed.Service, log *logrus.Logger) {
	fx, err := seed.Load(cfg.SeedFile)
	if err != nil {
		log.WithError(err).Fatal("Failed to load seed fixture")
	}

	applied, err := seeds.Apply(context.Background(), fx)
	if err != nil {
		log.WithError(err).Fatal("Failed to apply seed fixture")
	}
	if applied {
		log.WithFields(logrus.Fields{
			"teams":  len(fx.Teams),
			"users":  len(fx.Users),
			"alerts": len(fx.Alerts),
		}).Info("Seed data applied")
	}
}
