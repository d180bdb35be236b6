package correlation

import (
	"context"

	"team-pulse/internal/model"
	pkgLog "team-pulse/pkg/log"
	"team-pulse/pkg/textintel"
)

// Engine discovers relationships between events across platforms.
type Engine struct {
	intel textintel.Analyzer
	l     pkgLog.Logger
}

// New creates a correlation Engine. intel may be nil, in which case the
// free-text cross-reference pass yields no correlations.
func New(intel textintel.Analyzer, l pkgLog.Logger) *Engine {
	return &Engine{
		intel: intel,
		l:     l,
	}
}

// Correlate runs the three correlation passes over the normalized event
// slice and concatenates their output in pass order. The slice is read-only
// here; no global resort is applied.
func (e *Engine) Correlate(ctx context.Context, events []model.Event) []model.Correlation {
	out := e.matchIdentifiers(ctx, events)
	out = append(out, e.matchCrossReferences(ctx, events)...)
	out = append(out, e.clusterTopics(ctx, events)...)

	e.l.Infof(ctx, "Correlate: %d correlations from %d events", len(out), len(events))
	return out
}
