package model

// Caps applied to intelligence-derived profile fields at the boundary.
const (
	MaxExpertiseAreas = 5
	MaxRecentFocus    = 3
)

// ActivityPatterns summarizes when and where a contributor is active.
type ActivityPatterns struct {
	MostActiveHours    []int      `json:"most_active_hours"` // hours 0-23, set semantics
	PreferredPlatforms []Platform `json:"preferred_platforms"`
	AvgDailyEvents     float64    `json:"avg_daily_events"`
}

// ContributorProfile is the rolling behavioral summary for one person
// across platforms. The memory store holds the authoritative long-lived
// copy; a processing batch carries a transient merge.
type ContributorProfile struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Platforms        map[Platform]string `json:"platforms"` // platform -> external id
	ActivityPatterns ActivityPatterns    `json:"activity_patterns"`
	ExpertiseAreas   []string            `json:"expertise_areas"` // at most MaxExpertiseAreas
	RecentFocus      []string            `json:"recent_focus"`    // at most MaxRecentFocus
}
