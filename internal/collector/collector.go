package collector

import (
	"context"
	"time"

	"team-pulse/internal/model"
	pkgLog "team-pulse/pkg/log"
)

// Source fetches activity for one platform. Implementations must return
// already-shaped events and must not fail for partial per-item problems —
// an error means the source is entirely unavailable for the window.
type Source interface {
	Platform() model.Platform
	FetchActivity(ctx context.Context, windowStart, windowEnd time.Time) ([]model.Event, error)
}

// Registry fans in events from all registered sources. A failed source is
// treated as an empty result for that platform and the run continues.
type Registry struct {
	sources []Source
	l       pkgLog.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(l pkgLog.Logger) *Registry {
	return &Registry{l: l}
}

// Register adds a source. Not safe to call concurrently with Collect.
func (r *Registry) Register(src Source) {
	r.sources = append(r.sources, src)
}

// Sources returns the registered platforms (for logging and health output).
func (r *Registry) Sources() []model.Platform {
	out := make([]model.Platform, 0, len(r.sources))
	for _, src := range r.sources {
		out = append(out, src.Platform())
	}
	return out
}

// Collect fetches the window from every source sequentially and
// concatenates the results.
func (r *Registry) Collect(ctx context.Context, windowStart, windowEnd time.Time) []model.Event {
	var all []model.Event

	for _, src := range r.sources {
		events, err := src.FetchActivity(ctx, windowStart, windowEnd)
		if err != nil {
			r.l.Warnf(ctx, "collector %s unavailable, continuing without it: %v", src.Platform(), err)
			continue
		}
		r.l.Infof(ctx, "collector %s: %d events", src.Platform(), len(events))
		all = append(all, events...)
	}

	return all
}
