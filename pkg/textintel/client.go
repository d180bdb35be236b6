package textintel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"team-pulse/pkg/log"
)

// Batch limits enforced at the client boundary.
const (
	MaxReferenceMessages     = 50
	MaxContributorEvents     = 20
	MaxClassificationEvents  = 30
	breakerConsecutiveFails  = 3
	breakerOpenTimeout       = 30 * time.Second
	breakerHalfOpenSuccesses = 2
)

// Config holds client behavior settings.
type Config struct {
	RetryAttempts int           // per-provider attempts, default 2
	RetryDelay    time.Duration // base backoff delay, default 1s
	RatePerMinute int           // request rate limit, default 30
}

// Client implements Analyzer over a priority-ordered provider chain with
// retry, rate limiting, and a circuit breaker. The breaker exists so a dead
// upstream fails fast instead of stalling every analysis pass.
type Client struct {
	providers []Provider
	cfg       Config
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker
	l         log.Logger
}

// New creates an Analyzer from the given provider chain.
func New(providers []Provider, cfg Config, l log.Logger) (*Client, error) {
	if len(providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 2
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.RatePerMinute <= 0 {
		cfg.RatePerMinute = 30
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "textintel",
		MaxRequests: breakerHalfOpenSuccesses,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerConsecutiveFails
		},
	})

	return &Client{
		providers: providers,
		cfg:       cfg,
		limiter:   rate.NewLimiter(rate.Limit(float64(cfg.RatePerMinute)/60.0), cfg.RatePerMinute),
		breaker:   breaker,
		l:         l,
	}, nil
}

// ExtractReferences implements Analyzer.
func (c *Client) ExtractReferences(ctx context.Context, messages []MessageInput) ([]Reference, error) {
	if len(messages) == 0 {
		return nil, nil
	}
	if len(messages) > MaxReferenceMessages {
		messages = messages[:MaxReferenceMessages]
	}

	raw, err := c.generate(ctx, BuildReferencePrompt(messages))
	if err != nil {
		return nil, err
	}

	var refs []Reference
	if err := json.Unmarshal([]byte(sanitizeJSONResponse(raw)), &refs); err != nil {
		return nil, fmt.Errorf("failed to parse reference extraction response: %w", err)
	}

	valid := make(map[string]bool, len(messages))
	for _, m := range messages {
		valid[m.ID] = true
	}

	out := make([]Reference, 0, len(refs))
	for _, r := range refs {
		if r.SourceID == "" || r.Reference == "" || !valid[r.SourceID] {
			continue
		}
		switch r.ReferenceType {
		case RefTypePR, RefTypeIssue, RefTypeCommit, RefTypeRepository:
		default:
			continue
		}
		r.Confidence = clamp01(r.Confidence)
		out = append(out, r)
	}
	return out, nil
}

// AnalyzeContributor implements Analyzer.
func (c *Client) AnalyzeContributor(ctx context.Context, input ContributorInput) (*ContributorTraits, error) {
	if len(input.RecentEvents) > MaxContributorEvents {
		input.RecentEvents = input.RecentEvents[:MaxContributorEvents]
	}

	raw, err := c.generate(ctx, BuildContributorPrompt(input))
	if err != nil {
		return nil, err
	}

	var traits ContributorTraits
	if err := json.Unmarshal([]byte(sanitizeJSONResponse(raw)), &traits); err != nil {
		return nil, fmt.Errorf("failed to parse contributor analysis response: %w", err)
	}

	traits.PreferredPlatforms = dropEmpty(traits.PreferredPlatforms)
	traits.ExpertiseAreas = capSlice(dropEmpty(traits.ExpertiseAreas), 5)
	traits.RecentFocus = capSlice(dropEmpty(traits.RecentFocus), 3)
	if traits.AvgDailyEvents < 0 {
		traits.AvgDailyEvents = 0
	}
	return &traits, nil
}

// ClassifyActionItems implements Analyzer.
func (c *Client) ClassifyActionItems(ctx context.Context, events []EventSummary) ([]ClassifiedItem, error) {
	if len(events) == 0 {
		return nil, nil
	}
	if len(events) > MaxClassificationEvents {
		events = events[:MaxClassificationEvents]
	}

	raw, err := c.generate(ctx, BuildClassificationPrompt(events))
	if err != nil {
		return nil, err
	}

	var items []ClassifiedItem
	if err := json.Unmarshal([]byte(sanitizeJSONResponse(raw)), &items); err != nil {
		return nil, fmt.Errorf("failed to parse classification response: %w", err)
	}

	out := make([]ClassifiedItem, 0, len(items))
	for _, it := range items {
		if it.EventID == "" || it.Title == "" {
			continue
		}
		switch it.Kind {
		case "review_needed", "blocked", "overdue", "requires_attention":
		default:
			continue
		}
		if it.Priority == "" {
			it.Priority = "medium"
		}
		out = append(out, it)
	}
	return out, nil
}

// generate runs the prompt through rate limit, circuit breaker, and the
// provider fallback chain.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.generateWithFallback(ctx, prompt)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", ErrCircuitOpen
		}
		return "", err
	}
	return result.(string), nil
}

// generateWithFallback iterates providers in priority order, retrying each
// with linear backoff before moving on.
func (c *Client) generateWithFallback(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for _, provider := range c.providers {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		text, err := c.completeWithRetry(ctx, provider, prompt)
		if err == nil {
			return text, nil
		}

		c.l.Warnf(ctx, "textintel: provider %s (%s) failed: %v", provider.Name(), provider.Model(), err)
		lastErr = err
	}

	return "", fmt.Errorf("%w: %v", ErrAllProvidersFailed, lastErr)
}

func (c *Client) completeWithRetry(ctx context.Context, provider Provider, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt < c.cfg.RetryAttempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * c.cfg.RetryDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		text, err := provider.Complete(ctx, prompt)
		if err == nil {
			if strings.TrimSpace(text) == "" {
				return "", ErrEmptyResponse
			}
			return text, nil
		}
		lastErr = err
	}

	return "", lastErr
}

var codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// sanitizeJSONResponse removes markdown code fences and leading/trailing
// prose that LLMs often add around JSON output.
func sanitizeJSONResponse(text string) string {
	matches := codeFenceRe.FindStringSubmatch(text)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	start := strings.IndexAny(text, "[{")
	if start == -1 {
		return text
	}
	end := strings.LastIndexAny(text, "]}")
	if end == -1 || end < start {
		return text
	}
	return strings.TrimSpace(text[start : end+1])
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func capSlice(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func dropEmpty(s []string) []string {
	out := make([]string, 0, len(s))
	for _, v := range s {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
