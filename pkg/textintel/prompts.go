package textintel

import (
	"encoding/json"
	"fmt"
)

// ReferenceExtractionPrompt is the instruction for reference extraction.
const ReferenceExtractionPrompt = `You are a developer-activity analyst. You receive chat messages from an engineering team and extract references to code review items.

RULES:
1. For each message, find mentions of pull requests (e.g. "#142", "PR 142"), issues, commit SHAs, or repository names (e.g. "team/api-server").
2. For each mention return:
   - source_id: id of the message it came from (required)
   - reference: the mention exactly as written
   - reference_type: MUST be exactly one of "pr", "issue", "commit", "repository"
   - confidence: number between 0 and 1
   - extracted_text: the surrounding phrase
3. Return ONLY a valid JSON array. No markdown, no code blocks, no explanation text.
4. If there are no references, return [].

Now analyze the following messages and return ONLY the JSON array:`

// ContributorAnalysisPrompt is the instruction for trait analysis.
const ContributorAnalysisPrompt = `You are a developer-activity analyst. You receive recent activity events for one contributor and summarize their behavior.

RULES:
1. Return a single JSON object with:
   - preferred_platforms: platforms ordered by how much the person uses them
   - expertise_areas: up to 5 short technical topics inferred from the events
   - recent_focus: up to 3 short phrases describing what they worked on lately
   - avg_daily_events: estimated average events per day as a number
2. Return ONLY a valid JSON object. No markdown, no code blocks, no explanation text.

Now analyze the following contributor activity and return ONLY the JSON object:`

// ActionItemClassificationPrompt is the instruction for classification.
const ActionItemClassificationPrompt = `You are a developer-activity analyst. You receive high-priority events and decide which need human attention.

RULES:
1. For each event that needs attention return:
   - event_id: id of the event (required, must be one of the input ids)
   - kind: MUST be exactly one of "review_needed", "blocked", "overdue", "requires_attention"
   - title: short actionable title
   - description: optional extra detail
   - priority: one of "low", "medium", "high", "urgent"
   - assignee: the person who should act, if clear from the event
2. Skip events that need no action. Return ONLY a valid JSON array.
3. No markdown, no code blocks, no explanation text.

Now classify the following events and return ONLY the JSON array:`

// BuildReferencePrompt builds the full prompt for reference extraction.
func BuildReferencePrompt(messages []MessageInput) string {
	payload, _ := json.Marshal(messages)
	return fmt.Sprintf("%s\n%s", ReferenceExtractionPrompt, payload)
}

// BuildContributorPrompt builds the full prompt for trait analysis.
func BuildContributorPrompt(input ContributorInput) string {
	payload, _ := json.Marshal(input)
	return fmt.Sprintf("%s\n%s", ContributorAnalysisPrompt, payload)
}

// BuildClassificationPrompt builds the full prompt for action-item classification.
func BuildClassificationPrompt(events []EventSummary) string {
	payload, _ := json.Marshal(events)
	return fmt.Sprintf("%s\n%s", ActionItemClassificationPrompt, payload)
}
