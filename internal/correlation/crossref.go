package correlation

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"team-pulse/internal/model"
	"team-pulse/pkg/textintel"
)

// matchCrossReferences is the intelligence-assisted pass: chat messages are
// scanned for free-text references to code review items. A collaborator
// failure degrades to zero correlations from this pass.
func (e *Engine) matchCrossReferences(ctx context.Context, events []model.Event) []model.Correlation {
	if e.intel == nil {
		return nil
	}

	var messages []textintel.MessageInput
	chatByID := make(map[string]model.Event)

	for _, ev := range events {
		if !ev.Platform.IsChatPlatform() {
			continue
		}
		messages = append(messages, textintel.MessageInput{
			ID:        ev.ID,
			Text:      strings.TrimSpace(ev.Title + " " + ev.Description),
			Timestamp: ev.Timestamp,
		})
		chatByID[ev.ID] = ev
		if len(messages) == textintel.MaxReferenceMessages {
			break
		}
	}
	if len(messages) == 0 {
		return nil
	}

	refs, err := e.intel.ExtractReferences(ctx, messages)
	if err != nil {
		e.l.Warnf(ctx, "cross-reference pass degraded, extraction failed: %v", err)
		return nil
	}

	var out []model.Correlation
	for _, ref := range refs {
		chat, ok := chatByID[ref.SourceID]
		if !ok {
			continue
		}

		for _, code := range events {
			if !code.Platform.IsCodePlatform() {
				continue
			}
			if !referenceMatchesEvent(ref, code) {
				continue
			}

			out = append(out, model.Correlation{
				ID:         uuid.NewString(),
				Events:     []string{chat.ID, code.ID},
				Kind:       model.CorrelationChatToCode,
				Confidence: ref.Confidence,
				Description: fmt.Sprintf("chat message in %s references %s %q",
					chat.Channel, code.Platform, code.Title),
				Keywords: []string{ref.Reference},
			})
		}
	}

	e.l.Debugf(ctx, "cross-reference pass: %d correlations from %d references", len(out), len(refs))
	return out
}

// referenceMatchesEvent compares the declared reference type to the
// corresponding attribute of a code event.
func referenceMatchesEvent(ref textintel.Reference, ev model.Event) bool {
	switch ref.ReferenceType {
	case textintel.RefTypePR, textintel.RefTypeIssue:
		num := digits(ref.Reference)
		if num == "" {
			return false
		}
		if v, ok := ev.Metadata["number"]; ok && digits(v.String()) == num {
			return true
		}
		return false
	case textintel.RefTypeCommit:
		if v, ok := ev.Metadata["commit"]; ok {
			sha := strings.ToLower(v.String())
			r := strings.ToLower(ref.Reference)
			return sha != "" && (strings.HasPrefix(sha, r) || strings.HasPrefix(r, sha))
		}
		return false
	case textintel.RefTypeRepository:
		return ev.Repository != "" && strings.EqualFold(ref.Reference, ev.Repository)
	}
	return false
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
