package model

// CorrelationKind classifies the type of relationship discovered between events.
type CorrelationKind string

const (
	CorrelationCodeToTracker      CorrelationKind = "code-to-tracker"
	CorrelationChatToCode         CorrelationKind = "chat-to-code"
	CorrelationCrossPlatformTopic CorrelationKind = "cross-platform-topic"
)

// Correlation is a discovered relationship between two or more events
// across platforms.
type Correlation struct {
	ID          string          `json:"id"`
	Events      []string        `json:"events"` // at least 2 event ids
	Kind        CorrelationKind `json:"kind"`
	Confidence  float64         `json:"confidence"` // in [0,1]
	Description string          `json:"description"`
	Keywords    []string        `json:"keywords"`
}
