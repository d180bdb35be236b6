package model

// Rolling-memory limits.
const (
	MaxTrendingTopics     = 10
	MaxActionItemsHistory = 7
	MemoryWindowDays      = 7
)

// TrendingTopic is one keyword trending across the monitored platforms.
type TrendingTopic struct {
	Keyword   string     `json:"keyword"`
	Frequency int        `json:"frequency"`
	Contexts  []Platform `json:"contexts"` // distinct platforms the keyword appeared on
}

// VelocityMetrics captures throughput numbers for a single processing run.
// They represent the latest run, not a running average.
type VelocityMetrics struct {
	DailyPRCount        int     `json:"daily_pr_count"`
	DailyIssueCount     int     `json:"daily_issue_count"`
	AvgReviewTimeHours  float64 `json:"avg_review_time_hours"`
	DeploymentFrequency int     `json:"deployment_frequency"`
}

// ActionItemsHistoryEntry is one day's action-item bookkeeping.
type ActionItemsHistoryEntry struct {
	Date          string `json:"date"` // YYYY-MM-DD
	ResolvedCount int    `json:"resolved_count"`
	NewCount      int    `json:"new_count"`
	OverdueCount  int    `json:"overdue_count"`
}

// MemoryContext is the per-date persisted aggregate of profiles,
// relationships, trends and metrics. Keyed by ISO calendar date.
//
// ProjectRelationships stores bidirectional edges as two keyed entries:
// "project" -> list of repositories, and "repo:<name>" -> list of channels.
type MemoryContext struct {
	Date                 string                        `json:"date"` // YYYY-MM-DD
	ContributorProfiles  map[string]ContributorProfile `json:"contributor_profiles"`
	ProjectRelationships map[string][]string           `json:"project_relationships"`
	TrendingTopics       []TrendingTopic               `json:"trending_topics"` // at most MaxTrendingTopics
	VelocityMetrics      VelocityMetrics               `json:"velocity_metrics"`
	ActionItemsHistory   []ActionItemsHistoryEntry     `json:"action_items_history"` // at most MaxActionItemsHistory
}

// NewMemoryContext returns an empty context for the given date with all
// container fields allocated.
func NewMemoryContext(date string) *MemoryContext {
	return &MemoryContext{
		Date:                 date,
		ContributorProfiles:  make(map[string]ContributorProfile),
		ProjectRelationships: make(map[string][]string),
		TrendingTopics:       []TrendingTopic{},
		ActionItemsHistory:   []ActionItemsHistoryEntry{},
	}
}

// Valid reports whether a deserialized context passes schema validation.
// A context failing this check is treated as corrupted storage.
func (mc *MemoryContext) Valid() bool {
	if mc.Date == "" {
		return false
	}
	if mc.ContributorProfiles == nil || mc.ProjectRelationships == nil {
		return false
	}
	if len(mc.TrendingTopics) > MaxTrendingTopics {
		return false
	}
	if len(mc.ActionItemsHistory) > MaxActionItemsHistory {
		return false
	}
	return true
}

// DailyReport is the persisted per-date report summary. Rendering report
// prose is out of scope here; the store only keeps the numbers the next
// day's comparison fields need.
type DailyReport struct {
	Date               string          `json:"date"` // YYYY-MM-DD
	TotalEvents        int             `json:"total_events"`
	CorrelationCount   int             `json:"correlation_count"`
	ActionItemCount    int             `json:"action_item_count"`
	UniqueContributors int             `json:"unique_contributors"`
	TopTopics          []TrendingTopic `json:"top_topics"`
	Velocity           VelocityMetrics `json:"velocity"`
}
