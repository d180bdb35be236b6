package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"team-pulse/config"
	"team-pulse/internal/collector"
	"team-pulse/internal/httpserver"
	"team-pulse/internal/memory"
	"team-pulse/internal/notify"
	"team-pulse/internal/pulse"
	"team-pulse/internal/pulse/usecase"
	"team-pulse/pkg/kv"
	"team-pulse/pkg/log"
	"team-pulse/pkg/telegram"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting team-pulse API...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Storage dir: %s", cfg.Storage.Dir)

	// 3. Storage
	fileStore, err := kv.NewFileStore(cfg.Storage.Dir)
	if err != nil {
		logger.Errorf(ctx, "Failed to open storage dir: %v", err)
		return
	}
	memStore := memory.New(fileStore, logger)

	// 4. Text intelligence (optional; the pipeline degrades to heuristics)
	intel := buildAnalyzer(ctx, cfg, logger)

	// 5. Notifier (optional)
	var notifier pulse.Notifier
	if cfg.Telegram.Enabled && cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		bot := telegram.NewBot(cfg.Telegram.BotToken)
		notifier = notify.NewTelegramNotifier(bot, cfg.Telegram.ChatID, logger)
		logger.Info(ctx, "Telegram digest notifier enabled")
	}

	// 6. Collectors. Sources register here; an empty registry still yields
	// valid (empty) runs, which keeps the API usable before sources exist.
	registry := collector.NewRegistry(logger)

	// 7. UseCase
	pulseUC := usecase.New(logger, registry, intel, memStore, notifier)

	// 8. Scheduled runs
	if cfg.Schedule.Enabled && cfg.Schedule.Cron != "" {
		c := cron.New()
		_, cronErr := c.AddFunc(cfg.Schedule.Cron, func() {
			runCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
			defer cancel()
			if _, runErr := pulseUC.Run(runCtx, pulse.RunInput{}); runErr != nil {
				logger.Errorf(runCtx, "Scheduled run failed: %v", runErr)
			}
		})
		if cronErr != nil {
			logger.Errorf(ctx, "Invalid cron expression %q: %v", cfg.Schedule.Cron, cronErr)
			return
		}
		c.Start()
		defer c.Stop()
		logger.Infof(ctx, "Scheduled runs enabled: %q", cfg.Schedule.Cron)
	}

	// 9. HTTP server
	srv, err := httpserver.New(httpserver.Config{
		Logger:       logger,
		Port:         cfg.HTTPServer.Port,
		Mode:         cfg.HTTPServer.Mode,
		Environment:  cfg.Environment.Name,
		APIKey:       cfg.HTTPServer.APIKey,
		PulseUseCase: pulseUC,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to create HTTP server: %v", err)
		return
	}

	logger.Infof(ctx, "Listening on :%d", cfg.HTTPServer.Port)
	if err := srv.Run(ctx); err != nil {
		logger.Errorf(ctx, "HTTP server stopped: %v", err)
	}
	logger.Info(ctx, "Shutdown complete")
}
