package normalizer

import (
	"fmt"
	"sort"

	"team-pulse/internal/model"
)

// Normalize dedups and canonicalizes raw events from all sources into one
// ordered stream. Pure function, no I/O.
//
// The dedup key is (platform, subtype, author id, timestamp); the first
// occurrence wins and later duplicates are dropped. Events missing a
// platform or author id are skipped rather than failing the batch — schema
// validation belongs to the caller. Output is ordered by timestamp
// descending.
func Normalize(raw []model.Event) []model.Event {
	seen := make(map[string]bool, len(raw))
	out := make([]model.Event, 0, len(raw))

	for _, ev := range raw {
		if ev.Platform == "" || ev.Author.ID == "" {
			continue
		}

		key := dedupKey(ev)
		if seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, canonicalize(ev))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	return out
}

// dedupKey builds the composite identity key for duplicate detection.
func dedupKey(ev model.Event) string {
	return fmt.Sprintf("%s|%s|%s|%d", ev.Platform, ev.Subtype, ev.Author.ID, ev.Timestamp.UnixNano())
}

// canonicalize fills defaults so downstream passes never see nil containers
// or a missing priority.
func canonicalize(ev model.Event) model.Event {
	if ev.Labels == nil {
		ev.Labels = []string{}
	}
	if ev.Assignees == nil {
		ev.Assignees = []string{}
	}
	if ev.Metadata == nil {
		ev.Metadata = map[string]model.MetaValue{}
	}
	if ev.Priority == "" {
		ev.Priority = model.PriorityMedium
	}
	return ev
}
