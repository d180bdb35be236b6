package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"team-pulse/internal/model"
	"team-pulse/pkg/kv"
	"team-pulse/pkg/log"
)

func newTestStore() (*Store, *kv.MemoryStore) {
	backing := kv.NewMemoryStore()
	return New(backing, log.NewNoop()), backing
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func processedData(profiles ...model.ContributorProfile) *model.ProcessedData {
	return &model.ProcessedData{Contributors: profiles}
}

func profile(id string) model.ContributorProfile {
	return model.ContributorProfile{
		ID:        id,
		Name:      id,
		Platforms: map[model.Platform]string{model.PlatformGitHub: id},
	}
}

func TestUpdateThenGet(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	if err := s.Update(ctx, "2026-08-20", processedData(profile("alice"))); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	mc, ok := s.Get(ctx, "2026-08-20")
	if !ok {
		t.Fatal("expected context after update")
	}
	if mc.Date != "2026-08-20" {
		t.Errorf("wrong date: %s", mc.Date)
	}
	if _, found := mc.ContributorProfiles["alice"]; !found {
		t.Error("profile should be stored")
	}
	if len(mc.ActionItemsHistory) != 1 {
		t.Errorf("expected 1 history entry, got %d", len(mc.ActionItemsHistory))
	}
}

func TestGet_MissingDate(t *testing.T) {
	s, _ := newTestStore()

	if _, ok := s.Get(context.Background(), "2026-01-01"); ok {
		t.Error("expected no context for an unknown date")
	}
}

func TestGet_CorruptedContextIsRemoved(t *testing.T) {
	s, backing := newTestStore()
	ctx := context.Background()

	key := ContextKey("2026-08-20")
	if err := backing.Set(ctx, key, "{not json"); err != nil {
		t.Fatal(err)
	}

	if _, ok := s.Get(ctx, "2026-08-20"); ok {
		t.Fatal("corrupted context should read as absent")
	}
	for _, k := range backing.Keys() {
		if k == key {
			t.Error("corrupted entry should have been deleted")
		}
	}

	// A fresh run must be able to rebuild the same date.
	if err := s.Update(ctx, "2026-08-20", processedData(profile("alice"))); err != nil {
		t.Fatalf("rebuild after corruption failed: %v", err)
	}
	if _, ok := s.Get(ctx, "2026-08-20"); !ok {
		t.Error("context should exist after rebuild")
	}
}

func TestGet_SchemaViolationIsCorruption(t *testing.T) {
	s, backing := newTestStore()
	ctx := context.Background()

	// Valid JSON, but missing required maps.
	key := ContextKey("2026-08-20")
	if err := backing.Set(ctx, key, `{"date":"2026-08-20"}`); err != nil {
		t.Fatal(err)
	}

	if _, ok := s.Get(ctx, "2026-08-20"); ok {
		t.Error("schema-invalid context should read as absent")
	}
}

func TestRecallProfile_WithinWindow(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	day := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	s.SetClock(fixedClock(day))
	if err := s.Update(ctx, DateOf(day), processedData(profile("alice"))); err != nil {
		t.Fatal(err)
	}

	// Three days later the profile is still inside the window.
	s.SetClock(fixedClock(day.AddDate(0, 0, 3)))
	got, ok := s.RecallProfile(ctx, "alice")
	if !ok {
		t.Fatal("expected recall at day+3")
	}
	if got.ID != "alice" {
		t.Errorf("wrong profile: %s", got.ID)
	}
}

func TestRecallProfile_OutsideWindow(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	day := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	s.SetClock(fixedClock(day))
	if err := s.Update(ctx, DateOf(day), processedData(profile("alice"))); err != nil {
		t.Fatal(err)
	}

	// Eight days later the write date is outside the 7-day scan.
	s.SetClock(fixedClock(day.AddDate(0, 0, 8)))
	if _, ok := s.RecallProfile(ctx, "alice"); ok {
		t.Error("profile should be unreachable past the window")
	}
}

func TestRecallProfile_Unknown(t *testing.T) {
	s, _ := newTestStore()
	if _, ok := s.RecallProfile(context.Background(), "nobody"); ok {
		t.Error("expected no profile")
	}
}

func TestUpdate_HistoryTrimsToSeven(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		data := &model.ProcessedData{
			ActionItems: []model.ActionItem{{ID: fmt.Sprintf("item-%d", i), Kind: model.ActionOverdue}},
		}
		if err := s.Update(ctx, "2026-08-20", data); err != nil {
			t.Fatal(err)
		}
	}

	mc, ok := s.Get(ctx, "2026-08-20")
	if !ok {
		t.Fatal("expected context")
	}
	if len(mc.ActionItemsHistory) != model.MaxActionItemsHistory {
		t.Fatalf("history should trim to %d, got %d", model.MaxActionItemsHistory, len(mc.ActionItemsHistory))
	}
	if mc.ActionItemsHistory[0].OverdueCount != 1 {
		t.Error("history entries should count overdue items")
	}
}

func TestUpdate_RelationshipsAndVelocity(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	events := []model.Event{
		{
			ID: "gh-1", Platform: model.PlatformGitHub, Subtype: "pr_merged",
			Author: model.Author{ID: "alice"}, Status: model.StatusMerged,
			Repository: "team/api", Project: "PULSE", Channel: "#eng",
			Metadata: map[string]model.MetaValue{"review_time_hours": model.MetaNum(4)},
		},
		{
			ID: "jira-1", Platform: model.PlatformJira, Subtype: "issue_created",
			Author: model.Author{ID: "bob"}, Repository: "team/api", Project: "PULSE",
		},
		{
			ID: "gh-2", Platform: model.PlatformGitHub, Subtype: "deploy_finished",
			Author: model.Author{ID: "alice"},
		},
	}

	if err := s.Update(ctx, "2026-08-20", &model.ProcessedData{Events: events}); err != nil {
		t.Fatal(err)
	}

	mc, ok := s.Get(ctx, "2026-08-20")
	if !ok {
		t.Fatal("expected context")
	}

	repos := mc.ProjectRelationships["PULSE"]
	if len(repos) != 1 || repos[0] != "team/api" {
		t.Errorf("project edge missing or duplicated: %v", repos)
	}
	channels := mc.ProjectRelationships["repo:team/api"]
	if len(channels) != 1 || channels[0] != "#eng" {
		t.Errorf("repo-channel edge missing: %v", channels)
	}

	vm := mc.VelocityMetrics
	if vm.DailyPRCount != 1 {
		t.Errorf("expected 1 PR, got %d", vm.DailyPRCount)
	}
	if vm.DailyIssueCount != 1 {
		t.Errorf("expected 1 issue, got %d", vm.DailyIssueCount)
	}
	if vm.DeploymentFrequency != 1 {
		t.Errorf("expected 1 deployment, got %d", vm.DeploymentFrequency)
	}
	if vm.AvgReviewTimeHours != 4 {
		t.Errorf("expected avg review time 4h, got %v", vm.AvgReviewTimeHours)
	}

	if mc.ActionItemsHistory[0].ResolvedCount != 1 {
		t.Errorf("merged event should count as resolved, got %d", mc.ActionItemsHistory[0].ResolvedCount)
	}
}

func TestCleanup_RemovesSevenDayOldContext(t *testing.T) {
	s, backing := newTestStore()
	ctx := context.Background()

	day := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	old := day.AddDate(0, 0, -model.MemoryWindowDays)

	s.SetClock(fixedClock(old))
	if err := s.Update(ctx, DateOf(old), processedData(profile("alice"))); err != nil {
		t.Fatal(err)
	}

	s.SetClock(fixedClock(day))
	if err := s.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}

	for _, k := range backing.Keys() {
		if k == ContextKey(DateOf(old)) {
			t.Error("seven-day-old context should be deleted")
		}
	}
}

func TestRecallVelocityTrend_SkipsMissingDates(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	day := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	prEvent := model.Event{
		ID: "gh-1", Platform: model.PlatformGitHub, Subtype: "pr_opened",
		Author: model.Author{ID: "alice"},
	}

	if err := s.Update(ctx, DateOf(day), &model.ProcessedData{Events: []model.Event{prEvent}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Update(ctx, DateOf(day.AddDate(0, 0, -2)), &model.ProcessedData{}); err != nil {
		t.Fatal(err)
	}

	s.SetClock(fixedClock(day))
	trend := s.RecallVelocityTrend(ctx, 7)

	if len(trend) != 2 {
		t.Fatalf("expected 2 entries (gap skipped), got %d", len(trend))
	}
	if trend[0].Date != DateOf(day) {
		t.Errorf("newest first, got %s", trend[0].Date)
	}
	if trend[0].Metrics.DailyPRCount != 1 {
		t.Errorf("expected 1 PR on newest day, got %d", trend[0].Metrics.DailyPRCount)
	}
}

func TestReports_StoreAndRecallPrevious(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	day := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	yesterday := DateOf(day.AddDate(0, 0, -1))

	report := &model.DailyReport{Date: yesterday, TotalEvents: 12}
	if err := s.StoreReport(ctx, report); err != nil {
		t.Fatal(err)
	}

	got, ok := s.GetReport(ctx, yesterday)
	if !ok || got.TotalEvents != 12 {
		t.Fatalf("GetReport mismatch: ok=%v report=%+v", ok, got)
	}

	s.SetClock(fixedClock(day))
	prev, ok := s.RecallPreviousReport(ctx)
	if !ok {
		t.Fatal("expected previous report")
	}
	if prev.Date != yesterday {
		t.Errorf("expected %s, got %s", yesterday, prev.Date)
	}
}

func TestRecallPreviousReport_CorruptIsRemoved(t *testing.T) {
	s, backing := newTestStore()
	ctx := context.Background()

	day := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	yesterday := DateOf(day.AddDate(0, 0, -1))
	key := ReportKey(yesterday)

	if err := backing.Set(ctx, key, "{broken"); err != nil {
		t.Fatal(err)
	}

	s.SetClock(fixedClock(day))
	if _, ok := s.RecallPreviousReport(ctx); ok {
		t.Fatal("corrupt report should read as absent")
	}
	for _, k := range backing.Keys() {
		if k == key {
			t.Error("corrupt report should be deleted")
		}
	}
}
