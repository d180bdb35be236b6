package main

import (
	"context"
	"sort"
	"time"

	"team-pulse/config"
	"team-pulse/pkg/log"
	"team-pulse/pkg/textintel"
)

// buildAnalyzer assembles the provider chain from config, ordered by
// priority. Returns nil when no provider is usable.
func buildAnalyzer(ctx context.Context, cfg *config.Config, logger log.Logger) textintel.Analyzer {
	providerCfgs := make([]config.ProviderConfig, 0, len(cfg.LLM.Providers))
	for _, pc := range cfg.LLM.Providers {
		if pc.Enabled && pc.APIKey != "" {
			providerCfgs = append(providerCfgs, pc)
		}
	}
	sort.Slice(providerCfgs, func(i, j int) bool {
		return providerCfgs[i].Priority < providerCfgs[j].Priority
	})

	var providers []textintel.Provider
	for _, pc := range providerCfgs {
		timeout, _ := time.ParseDuration(pc.Timeout)
		switch pc.Name {
		case "gemini":
			p, err := textintel.NewGeminiProvider(textintel.GeminiConfig{
				APIKey:  pc.APIKey,
				BaseURL: pc.BaseURL,
				Model:   pc.Model,
				Timeout: timeout,
			})
			if err != nil {
				logger.Warnf(ctx, "Skipping provider %s: %v", pc.Name, err)
				continue
			}
			providers = append(providers, p)
		case "deepseek":
			p, err := textintel.NewDeepSeekProvider(textintel.DeepSeekConfig{
				APIKey:  pc.APIKey,
				BaseURL: pc.BaseURL,
				Model:   pc.Model,
				Timeout: timeout,
			})
			if err != nil {
				logger.Warnf(ctx, "Skipping provider %s: %v", pc.Name, err)
				continue
			}
			providers = append(providers, p)
		default:
			logger.Warnf(ctx, "Unknown provider %q, skipping", pc.Name)
		}
	}

	if len(providers) == 0 {
		logger.Warn(ctx, "No LLM providers available; analysis runs on heuristics only")
		return nil
	}

	retryDelay, _ := time.ParseDuration(cfg.LLM.RetryDelay)
	client, err := textintel.New(providers, textintel.Config{
		RetryAttempts: cfg.LLM.RetryAttempts,
		RetryDelay:    retryDelay,
		RatePerMinute: cfg.LLM.RatePerMinute,
	}, logger)
	if err != nil {
		logger.Warnf(ctx, "Text intelligence unavailable: %v", err)
		return nil
	}

	logger.Infof(ctx, "Text intelligence enabled with %d provider(s)", len(providers))
	return client
}
