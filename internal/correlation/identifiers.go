package correlation

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"team-pulse/internal/model"
)

// Tracker issue keys look like PROJ-123; browse URLs carry the same key.
var (
	trackerKeyRe = regexp.MustCompile(`\b[A-Z][A-Z0-9]+-\d+\b`)
	trackerURLRe = regexp.MustCompile(`https?://\S+/browse/[A-Z][A-Z0-9]+-\d+`)
)

const identifierConfidence = 0.8

// matchIdentifiers is the deterministic pass: pull-request events referencing
// tracker keys in their title or description are linked to the tracker events
// carrying those keys. O(codeEvents x trackerEvents), acceptable because both
// sets are bounded per processing window.
func (e *Engine) matchIdentifiers(ctx context.Context, events []model.Event) []model.Correlation {
	var out []model.Correlation

	for _, code := range events {
		if !code.Platform.IsCodePlatform() || !strings.Contains(code.Subtype, "pr") {
			continue
		}

		refs := extractTrackerRefs(code.Title + " " + code.Description)
		if len(refs) == 0 {
			continue
		}

		for _, tracker := range events {
			if !tracker.Platform.IsTrackerPlatform() {
				continue
			}

			matched := matchingRefs(tracker, refs)
			if len(matched) == 0 {
				continue
			}

			out = append(out, model.Correlation{
				ID:         uuid.NewString(),
				Events:     []string{code.ID, tracker.ID},
				Kind:       model.CorrelationCodeToTracker,
				Confidence: identifierConfidence,
				Description: fmt.Sprintf("%s %q references tracker item %q",
					code.Platform, code.Title, tracker.Title),
				Keywords: matched,
			})
		}
	}

	e.l.Debugf(ctx, "identifier pass: %d correlations", len(out))
	return out
}

// extractTrackerRefs returns tracker keys and browse URLs found in text.
func extractTrackerRefs(text string) []string {
	refs := trackerKeyRe.FindAllString(text, -1)
	refs = append(refs, trackerURLRe.FindAllString(text, -1)...)

	seen := make(map[string]bool, len(refs))
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// matchingRefs returns the extracted references that denote the given
// tracker event, comparing case-insensitively against its short key or
// against URLs containing its id.
func matchingRefs(tracker model.Event, refs []string) []string {
	key := trackerKey(tracker)

	var matched []string
	for _, ref := range refs {
		if key != "" && strings.EqualFold(ref, key) {
			matched = append(matched, ref)
			continue
		}
		if strings.Contains(ref, "://") && tracker.ID != "" &&
			strings.Contains(strings.ToLower(ref), strings.ToLower(tracker.ID)) {
			matched = append(matched, ref)
		}
	}
	return matched
}

// trackerKey resolves the event's own short identifier: the issue_key
// metadata field when present, else the first key-shaped token in the title.
func trackerKey(ev model.Event) string {
	if v, ok := ev.Metadata["issue_key"]; ok {
		if s := v.String(); s != "" {
			return s
		}
	}
	return trackerKeyRe.FindString(ev.Title)
}
