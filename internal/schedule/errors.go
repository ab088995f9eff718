package schedule

import (
	"fmt"
	"time"
)

// ConfigError indicates a working-hour policy that violates its
// invariants. It is fatal to a search and surfaced unmodified.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid working hours policy: " + e.Reason
}

// InvalidInputError indicates a search request that was rejected
// before any scanning began
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DataIntegrityError indicates a malformed busy interval (start not
// before end) received from upstream. Such intervals are never
// silently dropped: they point at corrupted calendar data, not at a
// user mistake.
type DataIntegrityError struct {
	Attendee string
	Interval Interval
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("malformed busy interval for %s: start %s is not before end %s",
		e.Attendee, e.Interval.Start.Format(time.RFC3339), e.Interval.End.Format(time.RFC3339))
}

// NoSlotsError indicates that the bounded day-by-day scan exhausted
// its day limit without finding a single candidate slot
type NoSlotsError struct {
	Duration time.Duration
	Days     int
}

func (e *NoSlotsError) Error() string {
	return fmt.Sprintf("no common %s slot found within %d days", e.Duration, e.Days)
}
