package actionitem

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"team-pulse/internal/model"
	"team-pulse/pkg/log"
	"team-pulse/pkg/textintel"
)

type mockAnalyzer struct {
	items    []textintel.ClassifiedItem
	itemsErr error
	gotBatch []textintel.EventSummary
}

func (m *mockAnalyzer) ExtractReferences(ctx context.Context, messages []textintel.MessageInput) ([]textintel.Reference, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAnalyzer) AnalyzeContributor(ctx context.Context, input textintel.ContributorInput) (*textintel.ContributorTraits, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAnalyzer) ClassifyActionItems(ctx context.Context, events []textintel.EventSummary) ([]textintel.ClassifiedItem, error) {
	m.gotBatch = events
	return m.items, m.itemsErr
}

func highEvent(id, subtype string) model.Event {
	return model.Event{
		ID:        id,
		Platform:  model.PlatformGitHub,
		Subtype:   subtype,
		Author:    model.Author{ID: "alice", Name: "alice"},
		Title:     "event " + id,
		Priority:  model.PriorityHigh,
		Assignees: []string{"bob", "carol"},
		Timestamp: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
	}
}

func TestExtract_ClassifiesHighPriorityEvents(t *testing.T) {
	intel := &mockAnalyzer{items: []textintel.ClassifiedItem{
		{EventID: "ev-1", Kind: "blocked", Title: "PR blocked on CI", Priority: "urgent", Assignee: "bob"},
	}}

	ev := highEvent("ev-1", "pr_opened")
	low := highEvent("ev-2", "pr_opened")
	low.Priority = model.PriorityLow

	x := New(intel, log.NewNoop())
	out := x.Extract(context.Background(), []model.Event{ev, low}, nil)

	if len(out) != 1 {
		t.Fatalf("expected 1 item, got %d", len(out))
	}
	item := out[0]
	if item.Kind != model.ActionBlocked {
		t.Errorf("expected blocked kind, got %q", item.Kind)
	}
	if item.Priority != model.PriorityUrgent {
		t.Errorf("classified priority should win, got %q", item.Priority)
	}
	if item.ID == "" {
		t.Error("item should carry a generated id")
	}
	if len(intel.gotBatch) != 1 {
		t.Errorf("only high/urgent events belong in the batch, got %d", len(intel.gotBatch))
	}
}

func TestExtract_DropsUnknownEventIDsAndKinds(t *testing.T) {
	intel := &mockAnalyzer{items: []textintel.ClassifiedItem{
		{EventID: "ghost", Kind: "blocked", Title: "not in batch"},
		{EventID: "ev-1", Kind: "made_up_kind", Title: "bad kind"},
		{EventID: "ev-1", Kind: "overdue", Title: "valid"},
	}}

	x := New(intel, log.NewNoop())
	out := x.Extract(context.Background(), []model.Event{highEvent("ev-1", "issue_updated")}, nil)

	if len(out) != 1 {
		t.Fatalf("expected 1 surviving item, got %d", len(out))
	}
	if out[0].Kind != model.ActionOverdue {
		t.Errorf("expected overdue, got %q", out[0].Kind)
	}
}

func TestExtract_FallbackOnClassifierFailure(t *testing.T) {
	intel := &mockAnalyzer{itemsErr: errors.New("upstream down")}

	review := highEvent("ev-1", "review_requested")
	other := highEvent("ev-2", "pr_opened")

	x := New(intel, log.NewNoop())
	out := x.Extract(context.Background(), []model.Event{review, other}, nil)

	if len(out) != 1 {
		t.Fatalf("fallback should flag only review requests, got %d items", len(out))
	}
	item := out[0]
	if item.Kind != model.ActionReviewNeeded {
		t.Errorf("expected review_needed, got %q", item.Kind)
	}
	if item.Assignee != "bob" {
		t.Errorf("expected first assignee, got %q", item.Assignee)
	}
	if item.Description != "review requested from: bob, carol" {
		t.Errorf("unexpected description: %q", item.Description)
	}
}

func TestExtract_FallbackWithoutAnalyzer(t *testing.T) {
	review := highEvent("ev-1", "review_requested")
	lowReview := highEvent("ev-2", "review_requested")
	lowReview.Priority = model.PriorityMedium

	x := New(nil, log.NewNoop())
	out := x.Extract(context.Background(), []model.Event{review, lowReview}, nil)

	if len(out) != 1 {
		t.Fatalf("only high-priority review requests qualify, got %d", len(out))
	}
}

func TestExtract_CapsAtTwenty(t *testing.T) {
	var events []model.Event
	for i := 0; i < 30; i++ {
		events = append(events, highEvent(fmt.Sprintf("ev-%d", i), "review_requested"))
	}

	x := New(nil, log.NewNoop())
	out := x.Extract(context.Background(), events, nil)

	if len(out) != MaxActionItems {
		t.Fatalf("expected cap of %d, got %d", MaxActionItems, len(out))
	}
}

func TestExtract_NoHighPriorityEventsShortCircuits(t *testing.T) {
	intel := &mockAnalyzer{}

	low := highEvent("ev-1", "pr_opened")
	low.Priority = model.PriorityLow

	x := New(intel, log.NewNoop())
	out := x.Extract(context.Background(), []model.Event{low}, nil)

	if len(out) != 0 {
		t.Fatalf("expected no items, got %d", len(out))
	}
	if intel.gotBatch != nil {
		t.Error("classifier should not be called with an empty batch")
	}
}
