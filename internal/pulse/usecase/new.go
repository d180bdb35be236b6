package usecase

import (
	"time"

	"team-pulse/internal/actionitem"
	"team-pulse/internal/collector"
	"team-pulse/internal/contributor"
	"team-pulse/internal/correlation"
	"team-pulse/internal/memory"
	"team-pulse/internal/pulse"
	pkgLog "team-pulse/pkg/log"
	"team-pulse/pkg/textintel"
)

type implUseCase struct {
	l         pkgLog.Logger
	registry  *collector.Registry
	engine    *correlation.Engine
	profiler  *contributor.Profiler
	extractor *actionitem.Extractor
	memory    *memory.Store
	notifier  pulse.Notifier
	nowFn     func() time.Time
}

// New creates the pulse UseCase. intel and notifier may be nil; analysis
// then runs on deterministic fallbacks and no digest is sent.
func New(
	l pkgLog.Logger,
	registry *collector.Registry,
	intel textintel.Analyzer,
	mem *memory.Store,
	notifier pulse.Notifier,
) *implUseCase {
	return &implUseCase{
		l:         l,
		registry:  registry,
		engine:    correlation.New(intel, l),
		profiler:  contributor.New(intel, l),
		extractor: actionitem.New(intel, l),
		memory:    mem,
		notifier:  notifier,
		nowFn:     time.Now,
	}
}

// SetClock overrides the usecase's notion of "now" for tests.
func (uc *implUseCase) SetClock(nowFn func() time.Time) { uc.nowFn = nowFn }
