package actionitem

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"team-pulse/internal/model"
	pkgLog "team-pulse/pkg/log"
	"team-pulse/pkg/textintel"
)

// MaxActionItems caps the extractor output.
const MaxActionItems = 20

// Extractor flags events needing human attention.
type Extractor struct {
	intel textintel.Analyzer
	l     pkgLog.Logger
	nowFn func() time.Time
}

// New creates an Extractor. intel may be nil, forcing the deterministic
// fallback rule.
func New(intel textintel.Analyzer, l pkgLog.Logger) *Extractor {
	return &Extractor{
		intel: intel,
		l:     l,
		nowFn: time.Now,
	}
}

// Extract derives action items from the normalized events. Correlations are
// accepted for context but the current rules operate on events alone.
// Output is capped at MaxActionItems.
func (x *Extractor) Extract(ctx context.Context, events []model.Event, correlations []model.Correlation) []model.ActionItem {
	items := x.classify(ctx, events)
	if items == nil {
		items = x.fallback(events)
	}
	if len(items) > MaxActionItems {
		items = items[:MaxActionItems]
	}
	return items
}

// classify is the primary path: up to 30 high/urgent events are sent to the
// collaborator. Returns nil when the collaborator is unavailable so the
// caller can fall back.
func (x *Extractor) classify(ctx context.Context, events []model.Event) []model.ActionItem {
	if x.intel == nil {
		return nil
	}

	byID := make(map[string]model.Event)
	var sample []textintel.EventSummary
	for _, ev := range events {
		if ev.Priority != model.PriorityHigh && ev.Priority != model.PriorityUrgent {
			continue
		}
		byID[ev.ID] = ev
		sample = append(sample, textintel.EventSummary{
			EventID:    ev.ID,
			Platform:   string(ev.Platform),
			Subtype:    ev.Subtype,
			Title:      ev.Title,
			Priority:   string(ev.Priority),
			Repository: ev.Repository,
			Assignees:  ev.Assignees,
			Timestamp:  ev.Timestamp,
		})
		if len(sample) == textintel.MaxClassificationEvents {
			break
		}
	}
	if len(sample) == 0 {
		return []model.ActionItem{}
	}

	classified, err := x.intel.ClassifyActionItems(ctx, sample)
	if err != nil {
		x.l.Warnf(ctx, "action item classification failed, using fallback: %v", err)
		return nil
	}

	now := x.nowFn()
	items := make([]model.ActionItem, 0, len(classified))
	for _, c := range classified {
		ev, ok := byID[c.EventID]
		if !ok {
			// collaborator referenced an event outside the batch
			continue
		}
		kind := model.ActionItemKind(c.Kind)
		if !model.ValidActionItemKind(kind) {
			continue
		}

		items = append(items, model.ActionItem{
			ID:          uuid.NewString(),
			Kind:        kind,
			Title:       c.Title,
			Description: c.Description,
			URL:         ev.URL,
			Assignee:    c.Assignee,
			Priority:    parsePriority(c.Priority, ev.Priority),
			CreatedAt:   now,
			Platform:    ev.Platform,
			Repository:  ev.Repository,
			Project:     ev.Project,
		})
	}
	return items
}

// fallback is the deterministic rule used when no intelligence is available:
// high-priority review requests become review_needed items.
func (x *Extractor) fallback(events []model.Event) []model.ActionItem {
	now := x.nowFn()

	var items []model.ActionItem
	for _, ev := range events {
		if !strings.Contains(ev.Subtype, "review_requested") || ev.Priority != model.PriorityHigh {
			continue
		}

		items = append(items, model.ActionItem{
			ID:          uuid.NewString(),
			Kind:        model.ActionReviewNeeded,
			Title:       ev.Title,
			Description: fmt.Sprintf("review requested from: %s", strings.Join(ev.Assignees, ", ")),
			URL:         ev.URL,
			Assignee:    firstOrEmpty(ev.Assignees),
			Priority:    ev.Priority,
			CreatedAt:   now,
			Platform:    ev.Platform,
			Repository:  ev.Repository,
			Project:     ev.Project,
		})
	}
	return items
}

func parsePriority(s string, fallback model.Priority) model.Priority {
	switch model.Priority(s) {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh, model.PriorityUrgent:
		return model.Priority(s)
	}
	return fallback
}

func firstOrEmpty(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
