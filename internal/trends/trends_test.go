package trends

import (
	"fmt"
	"testing"
	"time"

	"team-pulse/internal/model"
)

func event(id string, platform model.Platform, author, title string) model.Event {
	return model.Event{
		ID:         id,
		Platform:   platform,
		Subtype:    "message",
		Author:     model.Author{ID: author, Name: author},
		Title:      title,
		Timestamp:  time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		Repository: "team/api",
	}
}

func TestExtract_TrendingRequiresThreeOccurrences(t *testing.T) {
	events := []model.Event{
		event("a", model.PlatformGitHub, "alice", "deployment pipeline broken"),
		event("b", model.PlatformJira, "bob", "deployment blocked on approvals"),
		event("c", model.PlatformSlack, "carol", "deployment is go for tonight"),
		event("d", model.PlatformSlack, "dave", "pipeline question"),
	}

	topics, _ := Extract(events)

	if len(topics) != 1 {
		t.Fatalf("only \"deployment\" appears 3 times, got %d topics: %v", len(topics), topics)
	}
	top := topics[0]
	if top.Keyword != "deployment" {
		t.Errorf("expected deployment, got %q", top.Keyword)
	}
	if top.Frequency != 3 {
		t.Errorf("expected frequency 3, got %d", top.Frequency)
	}
	if len(top.Contexts) != 3 {
		t.Errorf("expected 3 platform contexts, got %v", top.Contexts)
	}
}

func TestExtract_SortsByFrequencyThenKeyword(t *testing.T) {
	var events []model.Event
	mk := func(n int, word string) {
		for i := 0; i < n; i++ {
			events = append(events, event(fmt.Sprintf("%s-%d", word, i), model.PlatformGitHub, "alice", word+" work"))
		}
	}
	mk(5, "billing")
	mk(3, "alpha")
	mk(3, "beta")

	topics, _ := Extract(events)

	want := []string{"billing", "alpha", "beta"}
	if len(topics) != len(want)+1 {
		// "work" trends too (appears in every event)
		t.Fatalf("unexpected topic count %d: %v", len(topics), topics)
	}
	if topics[0].Keyword != "work" {
		t.Errorf("highest frequency first, got %q", topics[0].Keyword)
	}
	if topics[1].Keyword != "billing" {
		t.Errorf("expected billing second, got %q", topics[1].Keyword)
	}
	if topics[2].Keyword != "alpha" || topics[3].Keyword != "beta" {
		t.Errorf("tied frequencies sort by keyword: %v", topics)
	}
}

func TestExtract_CapsTopicsAtTen(t *testing.T) {
	var events []model.Event
	for w := 0; w < 15; w++ {
		word := fmt.Sprintf("topic%02d", w)
		for i := 0; i < 3; i++ {
			events = append(events, event(fmt.Sprintf("%s-%d", word, i), model.PlatformGitHub, "alice", word))
		}
	}

	topics, _ := Extract(events)
	if len(topics) != model.MaxTrendingTopics {
		t.Fatalf("expected cap of %d, got %d", model.MaxTrendingTopics, len(topics))
	}
}

func TestExtract_SummaryStats(t *testing.T) {
	events := []model.Event{
		event("a", model.PlatformGitHub, "alice", "one"),
		event("b", model.PlatformGitHub, "alice", "two"),
		event("c", model.PlatformSlack, "bob", "three"),
	}
	events[2].Repository = ""
	events[2].Project = "PULSE"
	events[2].Subtype = "reaction"

	_, stats := Extract(events)

	if stats.TotalEvents != 3 {
		t.Errorf("expected 3 total events, got %d", stats.TotalEvents)
	}
	if stats.UniqueContributors != 2 {
		t.Errorf("expected 2 contributors, got %d", stats.UniqueContributors)
	}
	if stats.EventsByPlatform[model.PlatformGitHub] != 2 {
		t.Errorf("expected 2 github events, got %d", stats.EventsByPlatform[model.PlatformGitHub])
	}
	if stats.EventsBySubtype["message"] != 2 || stats.EventsBySubtype["reaction"] != 1 {
		t.Errorf("unexpected subtype stats: %v", stats.EventsBySubtype)
	}
	if stats.RepositoriesActive != 1 {
		t.Errorf("expected 1 active repository, got %d", stats.RepositoriesActive)
	}
	if stats.ProjectsActive != 1 {
		t.Errorf("expected 1 active project, got %d", stats.ProjectsActive)
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	topics, stats := Extract(nil)
	if len(topics) != 0 {
		t.Errorf("expected no topics, got %v", topics)
	}
	if stats.TotalEvents != 0 {
		t.Errorf("expected zero total, got %d", stats.TotalEvents)
	}
}
