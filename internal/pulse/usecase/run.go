package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"team-pulse/internal/memory"
	"team-pulse/internal/model"
	"team-pulse/internal/normalizer"
	"team-pulse/internal/pulse"
	"team-pulse/internal/trends"
)

// Run executes one full processing run. The four analysis passes operate on
// the same immutable normalized slice; correlation, profiling, and trend
// extraction run concurrently, action-item extraction follows because it
// takes the correlations as input. The memory update is the only mutable
// step and is serialized per date key inside the store.
func (uc *implUseCase) Run(ctx context.Context, input pulse.RunInput) (pulse.RunOutput, error) {
	now := uc.nowFn()
	windowStart, windowEnd := input.WindowStart, input.WindowEnd
	if windowEnd.IsZero() {
		windowEnd = now
	}
	if windowStart.IsZero() {
		windowStart = windowEnd.Add(-24 * time.Hour)
	}

	uc.l.Infof(ctx, "Run: window %s .. %s", windowStart.Format(time.RFC3339), windowEnd.Format(time.RFC3339))

	raw := uc.registry.Collect(ctx, windowStart, windowEnd)
	events := normalizer.Normalize(raw)
	uc.l.Infof(ctx, "Run: %d raw events, %d after normalization", len(raw), len(events))

	prior := uc.recallPriorProfiles(ctx, events)

	var (
		wg           sync.WaitGroup
		correlations []model.Correlation
		contributors []model.ContributorProfile
		trendingTop  []model.TrendingTopic
		summaryStats model.SummaryStats
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		correlations = uc.engine.Correlate(ctx, events)
	}()
	go func() {
		defer wg.Done()
		contributors = uc.profiler.BuildProfiles(ctx, events, prior)
	}()
	go func() {
		defer wg.Done()
		trendingTop, summaryStats = trends.Extract(events)
	}()
	wg.Wait()

	actionItems := uc.extractor.Extract(ctx, events, correlations)

	processed := &model.ProcessedData{
		Events:         events,
		Correlations:   correlations,
		Contributors:   contributors,
		ActionItems:    actionItems,
		TrendingTopics: trendingTop,
		SummaryStats:   summaryStats,
	}

	date := memory.DateOf(now)
	if err := uc.memory.Update(ctx, date, processed); err != nil {
		return pulse.RunOutput{}, err
	}
	if err := uc.memory.Cleanup(ctx); err != nil {
		uc.l.Warnf(ctx, "Run: memory cleanup failed: %v", err)
	}

	report := uc.buildReport(ctx, date, processed)
	if err := uc.memory.StoreReport(ctx, report); err != nil {
		uc.l.Warnf(ctx, "Run: failed to store report: %v", err)
	}

	if uc.notifier != nil {
		if err := uc.notifier.SendDigest(ctx, *report); err != nil {
			uc.l.Warnf(ctx, "Run: digest notification failed (non-fatal): %v", err)
		}
	}

	return pulse.RunOutput{
		Date:               date,
		TotalEvents:        len(events),
		CorrelationCount:   len(correlations),
		ContributorCount:   len(contributors),
		ActionItemCount:    len(actionItems),
		TrendingTopicCount: len(trendingTop),
	}, nil
}

// recallPriorProfiles looks up the rolling memory for every author in the
// batch so the profiler can merge instead of starting cold.
func (uc *implUseCase) recallPriorProfiles(ctx context.Context, events []model.Event) map[string]model.ContributorProfile {
	prior := make(map[string]model.ContributorProfile)
	for _, ev := range events {
		if _, done := prior[ev.Author.ID]; done {
			continue
		}
		if profile, ok := uc.memory.RecallProfile(ctx, ev.Author.ID); ok {
			prior[ev.Author.ID] = profile
		}
	}
	return prior
}

// buildReport assembles the persisted daily summary.
func (uc *implUseCase) buildReport(ctx context.Context, date string, data *model.ProcessedData) *model.DailyReport {
	report := &model.DailyReport{
		Date:               date,
		TotalEvents:        data.SummaryStats.TotalEvents,
		CorrelationCount:   len(data.Correlations),
		ActionItemCount:    len(data.ActionItems),
		UniqueContributors: data.SummaryStats.UniqueContributors,
		TopTopics:          data.TrendingTopics,
		Velocity:           computeReportVelocity(data),
	}

	if prev, ok := uc.memory.RecallPreviousReport(ctx); ok {
		uc.l.Infof(ctx, "Run: previous report %s: %d events (today %d)",
			prev.Date, prev.TotalEvents, report.TotalEvents)
	}
	return report
}

func computeReportVelocity(data *model.ProcessedData) model.VelocityMetrics {
	var vm model.VelocityMetrics
	for subtype, n := range data.SummaryStats.EventsBySubtype {
		switch {
		case strings.Contains(subtype, "pr"):
			vm.DailyPRCount += n
		case strings.Contains(subtype, "issue"):
			vm.DailyIssueCount += n
		}
		if strings.Contains(subtype, "deploy") {
			vm.DeploymentFrequency += n
		}
	}
	return vm
}
