package usecase

import (
	"context"
	"time"

	"team-pulse/internal/memory"
	"team-pulse/internal/model"
	"team-pulse/internal/pulse"
)

// Report returns the stored report for a calendar date.
func (uc *implUseCase) Report(ctx context.Context, date string) (model.DailyReport, error) {
	if _, err := time.Parse(memory.DateFormat, date); err != nil {
		return model.DailyReport{}, pulse.ErrInvalidDate
	}

	report, ok := uc.memory.GetReport(ctx, date)
	if !ok {
		return model.DailyReport{}, pulse.ErrReportNotFound
	}
	return *report, nil
}

// Contributor recalls a profile from the rolling 7-day window.
func (uc *implUseCase) Contributor(ctx context.Context, id string) (model.ContributorProfile, error) {
	profile, ok := uc.memory.RecallProfile(ctx, id)
	if !ok {
		return model.ContributorProfile{}, pulse.ErrProfileNotFound
	}
	return profile, nil
}

// VelocityTrend returns per-day metrics for the last N days, newest first.
func (uc *implUseCase) VelocityTrend(ctx context.Context, days int) ([]memory.VelocityTrendEntry, error) {
	if days < 1 || days > 30 {
		return nil, pulse.ErrInvalidTrendWindow
	}
	return uc.memory.RecallVelocityTrend(ctx, days), nil
}
