package main

// @title           Fake Bot API
// @version         1.0
// @description     Local stand-in for a Telegram-style Bot API. Serves long-poll getUpdates, getMe and sendMessage, records every other call, and exposes admin endpoints for test drivers.
// @host            localhost:8081
// @BasePath        /

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"golang.org/x/sync/errgroup"

	_ "github.com/Alwanly/service-feed-poller/docs/fakeapi"

	"github.com/Alwanly/service-feed-poller/internal/config"
	"github.com/Alwanly/service-feed-poller/internal/server/fakeapi/handler"
	"github.com/Alwanly/service-feed-poller/pkg/database"
	"github.com/Alwanly/service-feed-poller/pkg/deps"
	"github.com/Alwanly/service-feed-poller/pkg/logger"
	"github.com/Alwanly/service-feed-poller/pkg/middleware"
)

func main() {
	log, err := logger.NewLoggerFromEnv("fakeapi")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("starting fake bot api service")

	cfg, err := config.LoadFakeAPIConfig()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	log.Info("configuration loaded",
		logger.String("server_addr", cfg.ServerAddr),
		logger.String("database_path", cfg.DatabasePath),
		logger.Duration("max_hold", cfg.MaxHold),
	)

	db, err := database.NewSQLiteDB(cfg.DatabasePath)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	if err := database.RunMigrations(db); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}
	log.Info("database ready", logger.String("path", cfg.DatabasePath))

	app := fiber.New(fiber.Config{
		AppName:               "Fake Bot API",
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.CanonicalLoggerMiddleware(log))

	// before the handler routes, /:bot/:method would swallow it
	app.Get("/swagger/*", swagger.HandlerDefault)

	handler.NewHandler(deps.App{
		Fiber:    app,
		Logger:   log,
		Database: db,
	}, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("fake bot api is running", logger.String("address", cfg.ServerAddr))
		return app.Listen(cfg.ServerAddr)
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutdown signal received")

		if err := app.ShutdownWithTimeout(cfg.MaxHold); err != nil {
			log.WithError(err).Error("failed to shutdown fiber app")
			return err
		}

		conn, err := db.DB()
		if err != nil {
			return err
		}
		return conn.Close()
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("fake bot api encountered an error")
	}

	log.Info("fake bot api stopped gracefully")
}
