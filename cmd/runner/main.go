package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"team-pulse/config"
	"team-pulse/internal/collector"
	"team-pulse/internal/memory"
	"team-pulse/internal/notify"
	"team-pulse/internal/pulse"
	"team-pulse/internal/pulse/usecase"
	"team-pulse/pkg/kv"
	"team-pulse/pkg/log"
	"team-pulse/pkg/telegram"
)

// main is the entry point for the one-shot runner.
// It executes a single processing run and exits — suited to external
// schedulers (systemd timers, CI cron) where the API binary is not wanted.
//
// Pattern:
//  1. Initialize infra (same as cmd/api/main.go)
//  2. Create UseCase
//  3. Run once, print the summary, exit
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting one-shot run...")

	fileStore, err := kv.NewFileStore(cfg.Storage.Dir)
	if err != nil {
		logger.Errorf(ctx, "Failed to open storage dir: %v", err)
		os.Exit(1)
	}
	memStore := memory.New(fileStore, logger)

	intel := buildAnalyzer(ctx, cfg, logger)

	var notifier pulse.Notifier
	if cfg.Telegram.Enabled && cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		bot := telegram.NewBot(cfg.Telegram.BotToken)
		notifier = notify.NewTelegramNotifier(bot, cfg.Telegram.ChatID, logger)
	}

	registry := collector.NewRegistry(logger)
	pulseUC := usecase.New(logger, registry, intel, memStore, notifier)

	runCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	out, err := pulseUC.Run(runCtx, pulse.RunInput{})
	if err != nil {
		logger.Errorf(runCtx, "Run failed: %v", err)
		os.Exit(1)
	}

	logger.Infof(runCtx, "Run complete: date=%s events=%d correlations=%d contributors=%d action_items=%d topics=%d",
		out.Date, out.TotalEvents, out.CorrelationCount, out.ContributorCount, out.ActionItemCount, out.TrendingTopicCount)
}
