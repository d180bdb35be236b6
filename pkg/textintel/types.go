package textintel

import "time"

// Reference types the collaborator may return for a free-text mention.
const (
	RefTypePR         = "pr"
	RefTypeIssue      = "issue"
	RefTypeCommit     = "commit"
	RefTypeRepository = "repository"
)

// MessageInput is one free-text message submitted for reference extraction.
type MessageInput struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Reference is one extracted mention of a code-review item.
type Reference struct {
	SourceID      string  `json:"source_id"`      // id of the message the reference came from
	Reference     string  `json:"reference"`      // e.g. "#142", "abc1234", "team/api"
	ReferenceType string  `json:"reference_type"` // pr | issue | commit | repository
	Confidence    float64 `json:"confidence"`     // in [0,1]
	ExtractedText string  `json:"extracted_text"`
}

// EventSummary is the compact event form sent to the collaborator.
type EventSummary struct {
	EventID    string    `json:"event_id"`
	Platform   string    `json:"platform"`
	Subtype    string    `json:"subtype"`
	Title      string    `json:"title"`
	Priority   string    `json:"priority"`
	Repository string    `json:"repository,omitempty"`
	Assignees  []string  `json:"assignees,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// ContributorInput is the payload for contributor-trait analysis.
type ContributorInput struct {
	Name         string         `json:"name"`
	RecentEvents []EventSummary `json:"recent_events"` // at most 20
}

// ContributorTraits is the collaborator's behavioral read on one person.
// Slice lengths are already capped when returned from the client.
type ContributorTraits struct {
	PreferredPlatforms []string `json:"preferred_platforms"`
	ExpertiseAreas     []string `json:"expertise_areas"` // at most 5
	RecentFocus        []string `json:"recent_focus"`    // at most 3
	AvgDailyEvents     float64  `json:"avg_daily_events"`
}

// ClassifiedItem is one action-item classification result.
type ClassifiedItem struct {
	EventID     string `json:"event_id"`
	Kind        string `json:"kind"` // review_needed | blocked | overdue | requires_attention
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority"`
	Assignee    string `json:"assignee,omitempty"`
}
