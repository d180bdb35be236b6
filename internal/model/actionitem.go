package model

import "time"

// ActionItemKind classifies why an item needs human attention.
type ActionItemKind string

const (
	ActionReviewNeeded      ActionItemKind = "review_needed"
	ActionBlocked           ActionItemKind = "blocked"
	ActionOverdue           ActionItemKind = "overdue"
	ActionRequiresAttention ActionItemKind = "requires_attention"
)

// ValidActionItemKind reports whether k is one of the closed set of kinds.
func ValidActionItemKind(k ActionItemKind) bool {
	switch k {
	case ActionReviewNeeded, ActionBlocked, ActionOverdue, ActionRequiresAttention:
		return true
	}
	return false
}

// ActionItem is an event or cluster flagged as needing human attention.
type ActionItem struct {
	ID          string         `json:"id"`
	Kind        ActionItemKind `json:"kind"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	URL         string         `json:"url,omitempty"`
	Assignee    string         `json:"assignee,omitempty"`
	Priority    Priority       `json:"priority"`
	CreatedAt   time.Time      `json:"created_at"`
	Platform    Platform       `json:"platform"`
	Repository  string         `json:"repository,omitempty"`
	Project     string         `json:"project,omitempty"`
}
