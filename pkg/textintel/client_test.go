package textintel

import (
	"context"
	"errors"
	"testing"
	"time"

	"team-pulse/pkg/log"
)

type fakeProvider struct {
	name     string
	response string
	err      error
	calls    int
	failN    int // fail the first N calls, then succeed
}

func (p *fakeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	p.calls++
	if p.failN > 0 && p.calls <= p.failN {
		return "", errors.New("transient failure")
	}
	return p.response, p.err
}

func (p *fakeProvider) Name() string  { return p.name }
func (p *fakeProvider) Model() string { return "fake-model" }

func newClient(t *testing.T, providers ...Provider) *Client {
	t.Helper()
	c, err := New(providers, Config{
		RetryAttempts: 2,
		RetryDelay:    time.Millisecond,
		RatePerMinute: 6000,
	}, log.NewNoop())
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestNew_RequiresProviders(t *testing.T) {
	_, err := New(nil, Config{}, log.NewNoop())
	if !errors.Is(err, ErrNoProvidersConfigured) {
		t.Errorf("expected ErrNoProvidersConfigured, got %v", err)
	}
}

func TestExtractReferences_ParsesAndValidates(t *testing.T) {
	p := &fakeProvider{name: "fake", response: `[
		{"source_id":"m1","reference":"#142","reference_type":"pr","confidence":1.7},
		{"source_id":"m1","reference":"abc123","reference_type":"commit","confidence":-0.2},
		{"source_id":"ghost","reference":"#9","reference_type":"pr","confidence":0.5},
		{"source_id":"m1","reference":"???","reference_type":"meme","confidence":0.5},
		{"source_id":"m1","reference":"","reference_type":"pr","confidence":0.5}
	]`}
	c := newClient(t, p)

	refs, err := c.ExtractReferences(context.Background(), []MessageInput{{ID: "m1", Text: "see #142"}})
	if err != nil {
		t.Fatal(err)
	}

	if len(refs) != 2 {
		t.Fatalf("expected 2 valid references, got %d: %v", len(refs), refs)
	}
	if refs[0].Confidence != 1 {
		t.Errorf("confidence should clamp to 1, got %v", refs[0].Confidence)
	}
	if refs[1].Confidence != 0 {
		t.Errorf("confidence should clamp to 0, got %v", refs[1].Confidence)
	}
}

func TestExtractReferences_EmptyInput(t *testing.T) {
	p := &fakeProvider{name: "fake"}
	c := newClient(t, p)

	refs, err := c.ExtractReferences(context.Background(), nil)
	if err != nil || refs != nil {
		t.Errorf("empty input should be a no-op, got %v / %v", refs, err)
	}
	if p.calls != 0 {
		t.Error("provider should not be called for empty input")
	}
}

func TestAnalyzeContributor_CapsTraits(t *testing.T) {
	p := &fakeProvider{name: "fake", response: `{
		"preferred_platforms":["github","","slack"],
		"expertise_areas":["a","b","c","d","e","f"],
		"recent_focus":["x","y","z","w"],
		"avg_daily_events":-3
	}`}
	c := newClient(t, p)

	traits, err := c.AnalyzeContributor(context.Background(), ContributorInput{Name: "alice"})
	if err != nil {
		t.Fatal(err)
	}

	if len(traits.PreferredPlatforms) != 2 {
		t.Errorf("blank platform names should be dropped, got %v", traits.PreferredPlatforms)
	}
	if len(traits.ExpertiseAreas) != 5 {
		t.Errorf("expertise capped at 5, got %d", len(traits.ExpertiseAreas))
	}
	if len(traits.RecentFocus) != 3 {
		t.Errorf("focus capped at 3, got %d", len(traits.RecentFocus))
	}
	if traits.AvgDailyEvents != 0 {
		t.Errorf("negative averages should clamp to 0, got %v", traits.AvgDailyEvents)
	}
}

func TestClassifyActionItems_DropsInvalidEntries(t *testing.T) {
	p := &fakeProvider{name: "fake", response: `[
		{"event_id":"ev-1","kind":"blocked","title":"stuck","priority":""},
		{"event_id":"","kind":"blocked","title":"no id"},
		{"event_id":"ev-2","kind":"whatever","title":"bad kind"},
		{"event_id":"ev-3","kind":"overdue","title":""}
	]`}
	c := newClient(t, p)

	items, err := c.ClassifyActionItems(context.Background(), []EventSummary{{EventID: "ev-1"}})
	if err != nil {
		t.Fatal(err)
	}

	if len(items) != 1 {
		t.Fatalf("expected 1 valid item, got %d", len(items))
	}
	if items[0].Priority != "medium" {
		t.Errorf("missing priority should default to medium, got %q", items[0].Priority)
	}
}

func TestGenerate_FallsBackToSecondProvider(t *testing.T) {
	// First provider always fails; with 2 retry attempts it is tried twice.
	bad := &fakeProvider{name: "bad", err: errors.New("down")}
	good := &fakeProvider{name: "good", response: `[]`}
	c := newClient(t, bad, good)

	refs, err := c.ExtractReferences(context.Background(), []MessageInput{{ID: "m1", Text: "hi"}})
	if err != nil {
		t.Fatalf("fallback should succeed: %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("expected empty result, got %v", refs)
	}
	if bad.calls != 2 {
		t.Errorf("first provider should be retried twice, got %d calls", bad.calls)
	}
	if good.calls != 1 {
		t.Errorf("second provider should be called once, got %d", good.calls)
	}
}

func TestGenerate_RetryRecoversTransientFailure(t *testing.T) {
	flaky := &fakeProvider{name: "flaky", response: `[]`, failN: 1}
	c := newClient(t, flaky)

	_, err := c.ExtractReferences(context.Background(), []MessageInput{{ID: "m1", Text: "hi"}})
	if err != nil {
		t.Fatalf("retry should recover: %v", err)
	}
	if flaky.calls != 2 {
		t.Errorf("expected 2 calls, got %d", flaky.calls)
	}
}

func TestGenerate_AllProvidersFailed(t *testing.T) {
	bad := &fakeProvider{name: "bad", err: errors.New("down")}
	c := newClient(t, bad)

	_, err := c.ExtractReferences(context.Background(), []MessageInput{{ID: "m1", Text: "hi"}})
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Errorf("expected ErrAllProvidersFailed, got %v", err)
	}
}

func TestGenerate_EmptyResponseIsError(t *testing.T) {
	empty := &fakeProvider{name: "empty", response: "   "}
	c := newClient(t, empty)

	_, err := c.ExtractReferences(context.Background(), []MessageInput{{ID: "m1", Text: "hi"}})
	if err == nil {
		t.Error("blank completions should not parse as success")
	}
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	bad := &fakeProvider{name: "bad", err: errors.New("down")}
	c := newClient(t, bad)
	ctx := context.Background()
	msgs := []MessageInput{{ID: "m1", Text: "hi"}}

	for i := 0; i < 3; i++ {
		if _, err := c.ExtractReferences(ctx, msgs); err == nil {
			t.Fatal("expected failure")
		}
	}

	_, err := c.ExtractReferences(ctx, msgs)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen after 3 consecutive failures, got %v", err)
	}
	// 3 failed rounds x 2 attempts; the open breaker short-circuits the 4th.
	if bad.calls != 6 {
		t.Errorf("open breaker should not reach the provider, got %d calls", bad.calls)
	}
}

func TestSanitizeJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"code fence", "```json\n[{\"a\":1}]\n```", `[{"a":1}]`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding prose", "Here you go: [1,2,3] hope that helps", "[1,2,3]"},
		{"clean json", `{"a":1}`, `{"a":1}`},
		{"no json at all", "sorry, cannot help", "sorry, cannot help"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeJSONResponse(tt.in); got != tt.want {
				t.Errorf("sanitizeJSONResponse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
