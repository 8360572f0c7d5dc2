package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/dtroode/interview-coach/database"
	httpctx "github.com/dtroode/interview-coach/internal/api/http/context"
	"github.com/dtroode/interview-coach/internal/api/http/router"
	httpServer "github.com/dtroode/interview-coach/internal/api/http/server"
	"github.com/dtroode/interview-coach/internal/completion"
	"github.com/dtroode/interview-coach/internal/model"
	"github.com/dtroode/interview-coach/internal/repository/postgres"
	"github.com/dtroode/interview-coach/internal/server"
	"github.com/dtroode/interview-coach/internal/service"
	storage "github.com/dtroode/interview-coach/internal/storage/minio"
	"github.com/dtroode/interview-coach/internal/worker"
)

// serveFunc runs the server; migrate reports whether pending migrations are applied first.
type serveFunc func(migrate bool) error

func newServeCommand(run serveFunc) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply pending migrations before serving")

	return cmd
}

func serve(migrate bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, logger := bootstrap()
	if cfg.LogLevel > int(slog.LevelDebug) {
		gin.SetMode(gin.ReleaseMode)
	}

	if migrate {
		if err := database.Migrate(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	coverLetterRepo := postgres.NewCoverLetterRepository(db)
	interviewRepo := postgres.NewInterviewRepository(db)

	provider, err := completion.NewProvider(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize completion provider", "error", err)
	}
	if closer, ok := provider.(io.Closer); ok {
		defer closer.Close()
	}
	completer := completion.NewClient(provider, cfg.Completion.Timeout, logger)

	var archive model.Storage
	if cfg.Storage.Enabled {
		a, err := storage.New(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("failed to initialize report archive", "error", err)
		}
		archive = a
	}

	pool := worker.NewPool(cfg.Worker.Count, cfg.Worker.QueueSize, cfg.Worker.TaskTimeout, logger)

	userService := service.NewUser(userRepo, coverLetterRepo, interviewRepo, logger)
	coverLetterService := service.NewCoverLetter(coverLetterRepo, userRepo, completer, pool, logger)
	interviewService := service.NewInterview(interviewRepo, userRepo, coverLetterRepo, completer, archive, logger)
	feedbackService := service.NewFeedback(completer, logger)

	if n, err := coverLetterService.RecoverPending(ctx); err != nil {
		logger.Error("failed to recover pending cover letters", "error", err)
	} else if n > 0 {
		logger.Info("requeued pending cover letters", "count", n)
	}

	r := router.New(router.Services{
		Users:        userService,
		CoverLetters: coverLetterService,
		Interviews:   interviewService,
		Feedback:     feedbackService,
		Database:     db,
	}, httpctx.NewManager(), logger)

	httpSrv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), cfg.HTTP.ReadTimeout)
	sl := server.NewSecurityLayer(cfg.HTTP)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(httpSrv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpSrv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpSrv.Address())
	}
	wg.Wait()

	if err := pool.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during worker pool shutdown", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}
