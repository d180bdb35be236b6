package model

import "time"

// Platform represents the source platform of an activity event.
type Platform string

const (
	PlatformGitHub Platform = "github"
	PlatformGitLab Platform = "gitlab"
	PlatformJira   Platform = "jira"
	PlatformSlack  Platform = "slack"
)

// IsCodePlatform reports whether the platform hosts code review activity.
func (p Platform) IsCodePlatform() bool {
	return p == PlatformGitHub || p == PlatformGitLab
}

// IsTrackerPlatform reports whether the platform is an issue tracker.
func (p Platform) IsTrackerPlatform() bool {
	return p == PlatformJira
}

// IsChatPlatform reports whether the platform is a chat system.
func (p Platform) IsChatPlatform() bool {
	return p == PlatformSlack
}

// Priority classifies event urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Status is the lifecycle state of the underlying item, when known.
type Status string

const (
	StatusOpen    Status = "open"
	StatusClosed  Status = "closed"
	StatusPending Status = "pending"
	StatusMerged  Status = "merged"
	StatusDraft   Status = "draft"
)

// Author identifies the person who produced an event.
type Author struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// Event is one normalized activity record from any monitored platform.
// After normalization Labels, Assignees and Metadata are never nil.
type Event struct {
	ID          string               `json:"id"`
	Platform    Platform             `json:"platform"`
	Subtype     string               `json:"subtype"` // e.g. "pr_opened", "review_requested"
	Timestamp   time.Time            `json:"timestamp"`
	Author      Author               `json:"author"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	URL         string               `json:"url,omitempty"`
	Priority    Priority             `json:"priority"`
	Status      Status               `json:"status,omitempty"`
	Labels      []string             `json:"labels"`
	Assignees   []string             `json:"assignees"`
	Repository  string               `json:"repository,omitempty"`
	Project     string               `json:"project,omitempty"`
	Channel     string               `json:"channel,omitempty"`
	Metadata    map[string]MetaValue `json:"metadata"`
}
