package pulse

import "time"

// RunInput bounds one processing run. A zero window defaults to the 24
// hours preceding the run.
type RunInput struct {
	WindowStart time.Time
	WindowEnd   time.Time
}

// RunOutput summarizes what one run produced.
type RunOutput struct {
	Date               string `json:"date"`
	TotalEvents        int    `json:"total_events"`
	CorrelationCount   int    `json:"correlation_count"`
	ContributorCount   int    `json:"contributor_count"`
	ActionItemCount    int    `json:"action_item_count"`
	TrendingTopicCount int    `json:"trending_topic_count"`
}
