package workday

import "errors"

// Error kinds surfaced by day-file parsing. Callers classify wrapped
// errors with errors.Is.
var (
	ErrInvalidDuration     = errors.New("invalid duration format")
	ErrInvalidTimeSchedule = errors.New("invalid time schedule")
	ErrSchemaMismatch      = errors.New("schema mismatch")
	ErrEmptyInput          = errors.New("empty input")
)
