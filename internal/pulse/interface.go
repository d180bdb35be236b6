package pulse

import (
	"context"

	"team-pulse/internal/memory"
	"team-pulse/internal/model"
)

// UseCase defines the business logic interface for the pulse domain.
type UseCase interface {
	// Run executes one full processing run: collect, normalize, analyze,
	// update rolling memory, and store the daily report.
	Run(ctx context.Context, input RunInput) (RunOutput, error)

	// Report returns the stored report for a calendar date (YYYY-MM-DD).
	Report(ctx context.Context, date string) (model.DailyReport, error)

	// Contributor recalls a contributor profile from the rolling memory.
	Contributor(ctx context.Context, id string) (model.ContributorProfile, error)

	// VelocityTrend returns per-day velocity metrics for the last N days.
	VelocityTrend(ctx context.Context, days int) ([]memory.VelocityTrendEntry, error)
}

// Notifier is the outbound notification boundary. Message rendering and
// channel choice live behind it, outside this core.
type Notifier interface {
	SendDigest(ctx context.Context, report model.DailyReport) error
}
