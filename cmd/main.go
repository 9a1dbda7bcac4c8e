// Package main wires the HTTP server for the loop newsletter service.
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"loopedin/config"
	"loopedin/internal/adapter/sms"
	"loopedin/internal/adapter/storage"
	"loopedin/internal/adapter/textgen"
	"loopedin/internal/auth"
	"loopedin/internal/repository"
	"loopedin/internal/transport/http/middleware"
	handlers_fiber "loopedin/internal/transport/http/server/handlers-fiber"
	"loopedin/internal/usecase"
	"loopedin/internal/usecase/domain"
	"loopedin/internal/worker"
	"loopedin/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}

	repo, err := repository.New(ctx, "postgres", log, cfg)
	if err != nil {
		log.Errorw("repository initialization error", "error", err)
		return
	}
	if err := repo.OnStart(ctx); err != nil {
		log.Errorw("repository start error", "error", err)
		return
	}
	defer func() {
		_ = repo.OnStop(context.Background())
	}()

	store, err := storage.NewStore(log, cfg.Storage)
	if err != nil {
		log.Errorw("storage initialization error", "error", err)
		return
	}
	if err := store.Initialize(ctx); err != nil {
		log.Errorw("storage start error", "error", err)
		return
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	uc := usecase.New(log, ctx, repo, domain.Collaborators{
		SMS:           sms.NewClient(log, cfg.Twilio),
		Media:         store,
		Textgen:       textgen.NewClient(log, cfg.Textgen),
		Tokens:        tokens,
		PublicBaseURL: cfg.Server.PublicURL,
	}, cfg.HTTP.RequestTimeout)

	if cfg.Reminder.Enabled {
		loc, err := time.LoadLocation(cfg.Reminder.Timezone)
		if err != nil {
			log.Errorw("invalid reminder timezone", "error", err)
			return
		}
		go worker.NewReminderWorker(log, uc, loc).Run(ctx)
	}

	serv := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.RequestTimeout,
		WriteTimeout: cfg.HTTP.RequestTimeout,
	})
	serv.Use(recover.New())
	serv.Use(requestid.New())
	serv.Use(middleware.RequestLogger(log))

	serv.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	h := handlers_fiber.NewHandler(log, uc)
	handlers_fiber.RegisterRoutes(serv, h, tokens)

	go func() {
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			log.Errorw("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = serv.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warnw("server shutdown timeout", "timeout", cfg.Server.ShutdownTimeout)
	}
}
