package memory

import "time"

// DateFormat is the calendar-date key format (ISO date).
const DateFormat = "2006-01-02"

// Key namespaces in the backing store.
const (
	contextKeyPrefix = "context:"
	reportKeyPrefix  = "report:"
)

// ContextKey returns the storage key for a date's memory context.
func ContextKey(date string) string { return contextKeyPrefix + date }

// ReportKey returns the storage key for a date's daily report.
func ReportKey(date string) string { return reportKeyPrefix + date }

// DateOf formats t as a calendar-date key.
func DateOf(t time.Time) string { return t.Format(DateFormat) }
