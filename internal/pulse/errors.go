package pulse

import "errors"

// Domain-specific errors for the pulse package.
var (
	ErrInvalidDate        = errors.New("date must be formatted YYYY-MM-DD")
	ErrReportNotFound     = errors.New("no report stored for that date")
	ErrProfileNotFound    = errors.New("no profile in the memory window")
	ErrInvalidTrendWindow = errors.New("trend window must be between 1 and 30 days")
)
