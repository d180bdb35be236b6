package model

// SummaryStats holds aggregate counters for one processing run.
type SummaryStats struct {
	TotalEvents        int              `json:"total_events"`
	EventsByPlatform   map[Platform]int `json:"events_by_platform"`
	EventsBySubtype    map[string]int   `json:"events_by_subtype"`
	UniqueContributors int              `json:"unique_contributors"`
	RepositoriesActive int              `json:"repositories_active"`
	ProjectsActive     int              `json:"projects_active"`
}

// ProcessedData is the transient result of one processing run. It is
// assembled from the analysis passes and consumed by the memory store
// update; it is never persisted as a whole.
type ProcessedData struct {
	Events         []Event
	Correlations   []Correlation
	Contributors   []ContributorProfile
	ActionItems    []ActionItem
	TrendingTopics []TrendingTopic
	SummaryStats   SummaryStats
}
