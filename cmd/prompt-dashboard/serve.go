package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aescanero/dago-prompt-dashboard/internal/config"
	"github.com/aescanero/dago-prompt-dashboard/internal/publish"
	"github.com/aescanero/dago-prompt-dashboard/internal/server"
	"github.com/aescanero/dago-prompt-dashboard/internal/view"
	"github.com/aescanero/dago-prompt-dashboard/internal/worker"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := initLogger(cfg.LogLevel, "stdout")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting prompt dashboard",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// Log configuration (without sensitive data)
	logger.Info("configuration loaded", zap.String("config", cfg.String()))

	pipeline, err := loadPipeline(cfg, cfg.DashboardFile, logger)
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sinks publish.Multi
	checks := map[string]server.Check{}

	if cfg.OutputDir != "" {
		fileSink, err := publish.NewFileSink(cfg.OutputDir, cfg.OutputFilename)
		if err != nil {
			return err
		}
		sinks = append(sinks, fileSink)
		logger.Info("writing prompts to disk", zap.String("path", fileSink.Path()))
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("failed to close redis connection", zap.Error(err))
			}
		}()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

		sinks = append(sinks, publish.NewStreamSink(redisClient, cfg.PromptStream, logger))
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	srv := server.New(server.Options{
		Port:           cfg.HTTPPort,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Filename:       cfg.OutputFilename,
	}, pipeline, view.NewPages(view.NewEngine()), sinks, logger)

	healthServer := server.NewHealthServer(cfg.HealthPort, checks, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error { return healthServer.Run(gctx) })

	if cfg.WorkerEnabled {
		w := worker.NewWorker(cfg, redisClient, pipeline, logger)
		g.Go(func() error { return w.Run(gctx) })
	}

	logger.Info("prompt dashboard running, press Ctrl+C to stop")

	if err := g.Wait(); err != nil {
		logger.Error("prompt dashboard stopped with error", zap.Error(err))
		return err
	}

	logger.Info("prompt dashboard stopped gracefully")
	return nil
}
