package contributor

import (
	"context"
	"sort"

	"team-pulse/internal/model"
	pkgLog "team-pulse/pkg/log"
	"team-pulse/pkg/textintel"
)

// Profiler builds and updates per-author behavioral profiles.
type Profiler struct {
	intel textintel.Analyzer
	l     pkgLog.Logger
}

// New creates a Profiler. intel may be nil, forcing the deterministic
// fallback for every author.
func New(intel textintel.Analyzer, l pkgLog.Logger) *Profiler {
	return &Profiler{
		intel: intel,
		l:     l,
	}
}

type accumulator struct {
	profile model.ContributorProfile
	events  []model.Event // ordered as encountered (normalized stream: newest first)
	counts  map[model.Platform]int
}

// BuildProfiles merges this batch's events into contributor profiles.
// prior holds profiles recalled from memory; authors absent from it start
// from an empty skeleton. Trait analysis is delegated per author; on
// collaborator failure the deterministic fallback keeps the run going.
func (p *Profiler) BuildProfiles(ctx context.Context, events []model.Event, prior map[string]model.ContributorProfile) []model.ContributorProfile {
	accs := make(map[string]*accumulator)
	var order []string

	for _, ev := range events {
		acc, ok := accs[ev.Author.ID]
		if !ok {
			acc = &accumulator{
				profile: seedProfile(ev, prior),
				counts:  make(map[model.Platform]int),
			}
			accs[ev.Author.ID] = acc
			order = append(order, ev.Author.ID)
		}

		acc.profile.Platforms[ev.Platform] = ev.Author.ID
		acc.profile.ActivityPatterns.MostActiveHours = addHour(
			acc.profile.ActivityPatterns.MostActiveHours, ev.Timestamp.Hour())
		acc.events = append(acc.events, ev)
		acc.counts[ev.Platform]++
	}

	out := make([]model.ContributorProfile, 0, len(accs))
	for _, id := range order {
		acc := accs[id]
		p.analyzeTraits(ctx, acc)
		out = append(out, acc.profile)
	}
	return out
}

// seedProfile starts from the recalled profile when one exists.
func seedProfile(ev model.Event, prior map[string]model.ContributorProfile) model.ContributorProfile {
	if existing, ok := prior[ev.Author.ID]; ok {
		if existing.Platforms == nil {
			existing.Platforms = make(map[model.Platform]string)
		}
		return existing
	}
	return model.ContributorProfile{
		ID:             ev.Author.ID,
		Name:           ev.Author.Name,
		Platforms:      make(map[model.Platform]string),
		ExpertiseAreas: []string{},
		RecentFocus:    []string{},
	}
}

// analyzeTraits fills intelligence-derived fields, falling back to batch
// statistics when the collaborator is unavailable.
func (p *Profiler) analyzeTraits(ctx context.Context, acc *accumulator) {
	if p.intel != nil {
		traits, err := p.intel.AnalyzeContributor(ctx, textintel.ContributorInput{
			Name:         acc.profile.Name,
			RecentEvents: summaries(acc.events, textintel.MaxContributorEvents),
		})
		if err == nil {
			p.applyTraits(acc, traits)
			return
		}
		p.l.Warnf(ctx, "trait analysis failed for %s, using fallback: %v", acc.profile.ID, err)
	}

	p.applyFallback(acc)
}

func (p *Profiler) applyTraits(acc *accumulator, traits *textintel.ContributorTraits) {
	var preferred []model.Platform
	for _, name := range traits.PreferredPlatforms {
		if pl := parsePlatform(name); pl != "" {
			preferred = append(preferred, pl)
		}
	}
	if len(preferred) > 0 {
		acc.profile.ActivityPatterns.PreferredPlatforms = preferred
	}

	if len(traits.ExpertiseAreas) > 0 {
		acc.profile.ExpertiseAreas = capStrings(traits.ExpertiseAreas, model.MaxExpertiseAreas)
	}
	if len(traits.RecentFocus) > 0 {
		acc.profile.RecentFocus = capStrings(traits.RecentFocus, model.MaxRecentFocus)
	}
	if traits.AvgDailyEvents > 0 {
		acc.profile.ActivityPatterns.AvgDailyEvents = traits.AvgDailyEvents
	}
}

// applyFallback ranks platforms by this batch's event count, keeps existing
// expertise and focus untouched.
func (p *Profiler) applyFallback(acc *accumulator) {
	type platformCount struct {
		platform model.Platform
		count    int
	}
	ranked := make([]platformCount, 0, len(acc.counts))
	for pl, n := range acc.counts {
		ranked = append(ranked, platformCount{pl, n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].platform < ranked[j].platform
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}

	preferred := make([]model.Platform, 0, len(ranked))
	for _, pc := range ranked {
		preferred = append(preferred, pc.platform)
	}

	acc.profile.ActivityPatterns.PreferredPlatforms = preferred
	acc.profile.ActivityPatterns.AvgDailyEvents = float64(len(acc.events))
}

func summaries(events []model.Event, limit int) []textintel.EventSummary {
	if len(events) > limit {
		events = events[:limit]
	}
	out := make([]textintel.EventSummary, 0, len(events))
	for _, ev := range events {
		out = append(out, textintel.EventSummary{
			EventID:    ev.ID,
			Platform:   string(ev.Platform),
			Subtype:    ev.Subtype,
			Title:      ev.Title,
			Priority:   string(ev.Priority),
			Repository: ev.Repository,
			Assignees:  ev.Assignees,
			Timestamp:  ev.Timestamp,
		})
	}
	return out
}

func parsePlatform(name string) model.Platform {
	switch model.Platform(name) {
	case model.PlatformGitHub, model.PlatformGitLab, model.PlatformJira, model.PlatformSlack:
		return model.Platform(name)
	}
	return ""
}

func addHour(hours []int, h int) []int {
	for _, existing := range hours {
		if existing == h {
			return hours
		}
	}
	return append(hours, h)
}

func capStrings(s []string, n int) []string {
	if len(s) > n {
		s = s[:n]
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
