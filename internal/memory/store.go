package memory

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"team-pulse/internal/model"
	"team-pulse/pkg/kv"
	pkgLog "team-pulse/pkg/log"
)

const (
	profileCacheSize = 256
	profileCacheTTL  = 10 * time.Minute
)

// Store persists and recalls the rolling 7-day context keyed by calendar
// date. Read-modify-write per date key is serialized by a per-key mutex;
// concurrent runs for different dates do not block each other.
type Store struct {
	kv    kv.Store
	l     pkgLog.Logger
	nowFn func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	profileCache *expirable.LRU[string, model.ContributorProfile]
}

// New creates a memory Store over the given key-value backing.
func New(backing kv.Store, l pkgLog.Logger) *Store {
	return &Store{
		kv:           backing,
		l:            l,
		nowFn:        time.Now,
		locks:        make(map[string]*sync.Mutex),
		profileCache: expirable.NewLRU[string, model.ContributorProfile](profileCacheSize, nil, profileCacheTTL),
	}
}

// SetClock overrides the store's notion of "now" (used by tests and
// replays).
func (s *Store) SetClock(nowFn func() time.Time) { s.nowFn = nowFn }

func (s *Store) dateLock(date string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[date]
	if !ok {
		l = &sync.Mutex{}
		s.locks[date] = l
	}
	return l
}

// Get reads the memory context for a date. A stored value that cannot be
// deserialized or fails schema validation is deleted so the same poisoned
// entry does not fail every subsequent run; the delete itself is
// best-effort. Returns (nil, false) when no usable context exists.
func (s *Store) Get(ctx context.Context, date string) (*model.MemoryContext, bool) {
	key := ContextKey(date)

	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.l.Warnf(ctx, "memory: read failed for %s: %v", key, err)
		}
		return nil, false
	}

	var mc model.MemoryContext
	if err := json.Unmarshal([]byte(raw), &mc); err != nil || !mc.Valid() {
		s.l.Warnf(ctx, "memory: corrupted context at %s, removing", key)
		if delErr := s.kv.Delete(ctx, key); delErr != nil {
			s.l.Warnf(ctx, "memory: failed to remove corrupted context %s: %v", key, delErr)
		}
		return nil, false
	}

	return &mc, true
}

// Update merges one processing run into the date's context
// (read-modify-write, creating the context on first write for that date).
func (s *Store) Update(ctx context.Context, date string, data *model.ProcessedData) error {
	lock := s.dateLock(date)
	lock.Lock()
	defer lock.Unlock()

	mc, ok := s.Get(ctx, date)
	if !ok {
		mc = model.NewMemoryContext(date)
	}

	for _, profile := range data.Contributors {
		mc.ContributorProfiles[profile.ID] = profile
		s.profileCache.Remove(profile.ID)
	}

	s.rebuildRelationships(mc, data.Events)

	// overwrite, not merge; the extractor already capped the list
	topics := make([]model.TrendingTopic, len(data.TrendingTopics))
	copy(topics, data.TrendingTopics)
	mc.TrendingTopics = topics

	mc.VelocityMetrics = computeVelocity(data.Events)

	mc.ActionItemsHistory = append(mc.ActionItemsHistory, historyEntry(date, data))
	if len(mc.ActionItemsHistory) > model.MaxActionItemsHistory {
		mc.ActionItemsHistory = mc.ActionItemsHistory[len(mc.ActionItemsHistory)-model.MaxActionItemsHistory:]
	}

	raw, err := json.Marshal(mc)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, ContextKey(date), string(raw))
}

// RecallProfile scans the most recent 7 calendar dates (today backward) and
// returns the first profile found for the contributor.
func (s *Store) RecallProfile(ctx context.Context, contributorID string) (model.ContributorProfile, bool) {
	if cached, ok := s.profileCache.Get(contributorID); ok {
		return cached, true
	}

	now := s.nowFn()
	for i := 0; i < model.MemoryWindowDays; i++ {
		date := DateOf(now.AddDate(0, 0, -i))
		mc, ok := s.Get(ctx, date)
		if !ok {
			continue
		}
		if profile, found := mc.ContributorProfiles[contributorID]; found {
			s.profileCache.Add(contributorID, profile)
			return profile, true
		}
	}
	return model.ContributorProfile{}, false
}

// VelocityTrendEntry pairs a date with its velocity metrics.
type VelocityTrendEntry struct {
	Date    string                `json:"date"`
	Metrics model.VelocityMetrics `json:"metrics"`
}

// RecallVelocityTrend returns metrics for the most recent days, newest
// first, skipping dates with no context (no backfill).
func (s *Store) RecallVelocityTrend(ctx context.Context, days int) []VelocityTrendEntry {
	now := s.nowFn()

	out := make([]VelocityTrendEntry, 0, days)
	for i := 0; i < days; i++ {
		date := DateOf(now.AddDate(0, 0, -i))
		mc, ok := s.Get(ctx, date)
		if !ok {
			continue
		}
		out = append(out, VelocityTrendEntry{Date: date, Metrics: mc.VelocityMetrics})
	}
	return out
}

// Cleanup deletes the context exactly 7 days old. Known limitation: this is
// a single-day cutoff, not a ranged sweep, so a date skipped here stays
// until a corruption self-heal removes it.
func (s *Store) Cleanup(ctx context.Context) error {
	date := DateOf(s.nowFn().AddDate(0, 0, -model.MemoryWindowDays))
	return s.kv.Delete(ctx, ContextKey(date))
}

// StoreReport persists the daily report under its date key.
func (s *Store) StoreReport(ctx context.Context, report *model.DailyReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, ReportKey(report.Date), string(raw))
}

// GetReport reads the stored report for a date, if any.
func (s *Store) GetReport(ctx context.Context, date string) (*model.DailyReport, bool) {
	raw, err := s.kv.Get(ctx, ReportKey(date))
	if err != nil {
		return nil, false
	}

	var report model.DailyReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, false
	}
	return &report, true
}

// RecallPreviousReport returns yesterday's report, if any.
func (s *Store) RecallPreviousReport(ctx context.Context) (*model.DailyReport, bool) {
	date := DateOf(s.nowFn().AddDate(0, 0, -1))

	raw, err := s.kv.Get(ctx, ReportKey(date))
	if err != nil {
		return nil, false
	}

	var report model.DailyReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		s.l.Warnf(ctx, "memory: corrupted report at %s, removing", date)
		if delErr := s.kv.Delete(ctx, ReportKey(date)); delErr != nil {
			s.l.Warnf(ctx, "memory: failed to remove corrupted report %s: %v", date, delErr)
		}
		return nil, false
	}
	return &report, true
}

// rebuildRelationships records project->repository and repo:<r>->channel
// edges from events carrying both endpoints, deduplicated by membership.
func (s *Store) rebuildRelationships(mc *model.MemoryContext, events []model.Event) {
	for _, ev := range events {
		if ev.Project != "" && ev.Repository != "" {
			mc.ProjectRelationships[ev.Project] = appendUnique(
				mc.ProjectRelationships[ev.Project], ev.Repository)
		}
		if ev.Repository != "" && ev.Channel != "" {
			key := "repo:" + ev.Repository
			mc.ProjectRelationships[key] = appendUnique(
				mc.ProjectRelationships[key], ev.Channel)
		}
	}
}

// computeVelocity derives this run's throughput numbers from subtype counts.
// Review latency is averaged from the review_time_hours metadata field when
// collectors supply it.
func computeVelocity(events []model.Event) model.VelocityMetrics {
	var vm model.VelocityMetrics
	var reviewHours float64
	var reviewCount int

	for _, ev := range events {
		switch {
		case strings.Contains(ev.Subtype, "pr"):
			vm.DailyPRCount++
		case strings.Contains(ev.Subtype, "issue"):
			vm.DailyIssueCount++
		}
		if strings.Contains(ev.Subtype, "deploy") {
			vm.DeploymentFrequency++
		}
		if v, ok := ev.Metadata["review_time_hours"]; ok {
			if hours, isNum := v.Number(); isNum {
				reviewHours += hours
				reviewCount++
			}
		}
	}

	if reviewCount > 0 {
		vm.AvgReviewTimeHours = reviewHours / float64(reviewCount)
	}
	return vm
}

// historyEntry summarizes the run's action items for the rolling history.
func historyEntry(date string, data *model.ProcessedData) model.ActionItemsHistoryEntry {
	entry := model.ActionItemsHistoryEntry{
		Date:     date,
		NewCount: len(data.ActionItems),
	}
	for _, item := range data.ActionItems {
		if item.Kind == model.ActionOverdue {
			entry.OverdueCount++
		}
	}
	for _, ev := range data.Events {
		if ev.Status == model.StatusClosed || ev.Status == model.StatusMerged {
			entry.ResolvedCount++
		}
	}
	return entry
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
