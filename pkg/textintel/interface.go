package textintel

import "context"

// Analyzer is the natural-language analysis boundary. Implementations are
// safe for concurrent use. All methods are best-effort: callers must treat
// any error as "no intelligence available" and fall back deterministically.
type Analyzer interface {
	// ExtractReferences finds structured code-review references in free-text
	// messages. At most 50 messages are considered per call.
	ExtractReferences(ctx context.Context, messages []MessageInput) ([]Reference, error)

	// AnalyzeContributor derives behavioral traits from a contributor's
	// recent events (at most 20).
	AnalyzeContributor(ctx context.Context, input ContributorInput) (*ContributorTraits, error)

	// ClassifyActionItems classifies high-priority events (at most 30) into
	// action-item kinds.
	ClassifyActionItems(ctx context.Context, events []EventSummary) ([]ClassifiedItem, error)
}
