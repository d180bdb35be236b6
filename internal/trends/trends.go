package trends

import (
	"sort"

	"team-pulse/internal/model"
	"team-pulse/internal/textutil"
)

const minFrequency = 3 // a topic trends only when it appears more than twice

// Extract computes trending keywords and summary statistics in a single
// traversal of the normalized event slice. Topics are sorted by descending
// frequency (keyword ascending as tiebreak) and capped at
// model.MaxTrendingTopics.
func Extract(events []model.Event) ([]model.TrendingTopic, model.SummaryStats) {
	freq := make(map[string]int)
	contexts := make(map[string]map[model.Platform]bool)

	stats := model.SummaryStats{
		TotalEvents:      len(events),
		EventsByPlatform: make(map[model.Platform]int),
		EventsBySubtype:  make(map[string]int),
	}
	authors := make(map[string]bool)
	repos := make(map[string]bool)
	projects := make(map[string]bool)

	for _, ev := range events {
		stats.EventsByPlatform[ev.Platform]++
		stats.EventsBySubtype[ev.Subtype]++
		authors[ev.Author.ID] = true
		if ev.Repository != "" {
			repos[ev.Repository] = true
		}
		if ev.Project != "" {
			projects[ev.Project] = true
		}

		for _, word := range textutil.Keywords(ev.Title + " " + ev.Description) {
			freq[word]++
			if contexts[word] == nil {
				contexts[word] = make(map[model.Platform]bool)
			}
			contexts[word][ev.Platform] = true
		}
	}

	stats.UniqueContributors = len(authors)
	stats.RepositoriesActive = len(repos)
	stats.ProjectsActive = len(projects)

	topics := make([]model.TrendingTopic, 0)
	for word, n := range freq {
		if n < minFrequency {
			continue
		}
		topics = append(topics, model.TrendingTopic{
			Keyword:   word,
			Frequency: n,
			Contexts:  platformSet(contexts[word]),
		})
	}

	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Frequency != topics[j].Frequency {
			return topics[i].Frequency > topics[j].Frequency
		}
		return topics[i].Keyword < topics[j].Keyword
	})
	if len(topics) > model.MaxTrendingTopics {
		topics = topics[:model.MaxTrendingTopics]
	}

	return topics, stats
}

func platformSet(m map[model.Platform]bool) []model.Platform {
	out := make([]model.Platform, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
