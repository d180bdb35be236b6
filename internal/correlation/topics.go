package correlation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"team-pulse/internal/model"
	"team-pulse/internal/textutil"
)

const (
	topicMinEvents    = 3
	topicMinPlatforms = 2
	topicMaxResults   = 10
	topicMaxConf      = 0.9
)

// clusterTopics is the deterministic topic pass: keywords shared by at least
// topicMinEvents events across at least topicMinPlatforms platforms become
// cross-platform-topic correlations. Output is capped at topicMaxResults,
// largest clusters first, keyword as tiebreak so runs are reproducible.
func (e *Engine) clusterTopics(ctx context.Context, events []model.Event) []model.Correlation {
	index := make(map[string][]model.Event)

	for _, ev := range events {
		seen := make(map[string]bool)
		for _, word := range textutil.Keywords(ev.Title + " " + ev.Description) {
			if seen[word] {
				continue
			}
			seen[word] = true
			index[word] = append(index[word], ev)
		}
	}

	var out []model.Correlation
	for keyword, evs := range index {
		platforms := distinctPlatforms(evs)
		if len(evs) < topicMinEvents || len(platforms) < topicMinPlatforms {
			continue
		}

		conf := float64(len(evs)) / 10.0
		if conf > topicMaxConf {
			conf = topicMaxConf
		}

		ids := make([]string, 0, len(evs))
		for _, ev := range evs {
			ids = append(ids, ev.ID)
		}

		out = append(out, model.Correlation{
			ID:         uuid.NewString(),
			Events:     ids,
			Kind:       model.CorrelationCrossPlatformTopic,
			Confidence: conf,
			Description: fmt.Sprintf("topic %q spans %s (%d events)",
				keyword, strings.Join(platformNames(platforms), ", "), len(evs)),
			Keywords: []string{keyword},
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Events) != len(out[j].Events) {
			return len(out[i].Events) > len(out[j].Events)
		}
		return out[i].Keywords[0] < out[j].Keywords[0]
	})
	if len(out) > topicMaxResults {
		out = out[:topicMaxResults]
	}

	e.l.Debugf(ctx, "topic pass: %d correlations from %d keywords", len(out), len(index))
	return out
}

func distinctPlatforms(events []model.Event) []model.Platform {
	seen := make(map[model.Platform]bool)
	var out []model.Platform
	for _, ev := range events {
		if !seen[ev.Platform] {
			seen[ev.Platform] = true
			out = append(out, ev.Platform)
		}
	}
	return out
}

func platformNames(platforms []model.Platform) []string {
	out := make([]string, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, string(p))
	}
	sort.Strings(out)
	return out
}
