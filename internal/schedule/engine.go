package schedule

import (
	"log/slog"
	"time"
)

const (
	// DefaultMaxResults is the number of candidate slots returned when
	// the request does not say otherwise
	DefaultMaxResults = 3

	// DefaultMaxDays bounds the forward scan so that a search over a
	// fully booked horizon still terminates
	DefaultMaxDays = 21

	// DefaultDuration is the meeting length used by callers that do not
	// ask for a specific one
	DefaultDuration = 60 * time.Minute
)

// Slot is a candidate meeting time: an interval of exactly the
// requested duration that is free for every attendee and lies within
// the organizer's working hours
type Slot struct {
	Start time.Time
	End   time.Time
}

// Duration returns the length of the slot
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Request describes one availability search
type Request struct {
	// Start is the first calendar day to consider. Its location fixes
	// the timezone context for the whole search.
	Start time.Time

	// Duration is the requested meeting length
	Duration time.Duration

	// Busy maps each attendee identifier to that attendee's busy
	// intervals within the search window. It may be empty, in which
	// case only the working-hour policy constrains the search. The
	// engine treats it as read-only.
	Busy map[string][]Interval

	// MaxResults caps the number of returned slots. Zero selects
	// DefaultMaxResults.
	MaxResults int

	// MaxDays caps the number of calendar days scanned. Zero selects
	// DefaultMaxDays.
	MaxDays int
}

// Engine computes candidate meeting slots from a working-hour policy
// and per-attendee busy intervals. It is a pure function of its
// inputs apart from the clock used to reject past start dates, which
// is injectable for tests.
type Engine struct {
	policy *Policy
	logger *slog.Logger
	now    func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used for per-day scan diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock overrides the clock used to validate the start date
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an availability engine for the given policy
func NewEngine(policy *Policy, opts ...Option) (*Engine, error) {
	if policy == nil {
		return nil, &ConfigError{Reason: "policy is required"}
	}

	e := &Engine{
		policy: policy,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// FindSlots scans forward day by day from the request's start date and
// returns up to MaxResults candidate slots in chronological order.
//
// Each working day is handled independently: every attendee's busy
// intervals are clipped to the day's working window, merged into one
// non-overlapping union, and subtracted from the window. Every free
// gap long enough for the requested duration yields one candidate
// aligned to the gap's start. On the first day the window begins at
// the request's instant rather than the policy's day start, so a
// search started mid-afternoon never proposes a time already gone.
// The scan stops as soon as enough candidates are found or MaxDays is
// exhausted.
//
// A scan that finds nothing at all returns a NoSlotsError. A partial
// result (fewer than MaxResults, but at least one) is returned without
// error; the caller decides whether that is good enough.
func (e *Engine) FindSlots(req Request) ([]Slot, error) {
	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults < 0 {
		return nil, &InvalidInputError{Field: "max results", Reason: "must be positive"}
	}

	maxDays := req.MaxDays
	if maxDays == 0 {
		maxDays = DefaultMaxDays
	}
	if maxDays < 0 {
		return nil, &InvalidInputError{Field: "max days", Reason: "must be positive"}
	}

	if req.Duration <= 0 {
		return nil, &InvalidInputError{Field: "duration", Reason: "must be positive"}
	}
	if req.Start.IsZero() {
		return nil, &InvalidInputError{Field: "start date", Reason: "is required"}
	}

	firstDay := StartOfDay(req.Start)
	today := StartOfDay(e.now().In(req.Start.Location()))
	if firstDay.Before(today) {
		return nil, &InvalidInputError{Field: "start date", Reason: "must not be in the past"}
	}

	// Reject corrupted upstream data before any scanning happens
	for attendee, intervals := range req.Busy {
		for _, iv := range intervals {
			if !iv.IsValid() {
				return nil, &DataIntegrityError{Attendee: attendee, Interval: iv}
			}
		}
	}

	slots := make([]Slot, 0, maxResults)
	for offset := 0; offset < maxDays && len(slots) < maxResults; offset++ {
		date := firstDay.AddDate(0, 0, offset)

		window, ok := e.policy.Window(date)
		if !ok {
			continue
		}

		// The first day only runs from the requested instant: a search
		// started mid-afternoon must not propose the morning behind it
		if window.Start.Before(req.Start) {
			window.Start = req.Start
			if !window.IsValid() {
				continue
			}
		}

		// The union of "someone is busy" blocks a slot: one
		// conflicting attendee is enough. Intervals crossing the
		// window boundary are clipped to the day first.
		var busy []Interval
		for _, intervals := range req.Busy {
			for _, iv := range intervals {
				if clipped, ok := iv.ClipTo(window); ok {
					busy = append(busy, clipped)
				}
			}
		}

		gaps := Subtract(window, Merge(busy))
		found := 0
		for _, gap := range gaps {
			if gap.Duration() < req.Duration {
				continue
			}
			slots = append(slots, Slot{Start: gap.Start, End: gap.Start.Add(req.Duration)})
			found++
			if len(slots) == maxResults {
				break
			}
		}

		e.logger.Debug("scanned day",
			slog.String("date", date.Format("2006-01-02")),
			slog.Int("busy_intervals", len(busy)),
			slog.Int("free_gaps", len(gaps)),
			slog.Int("slots_found", found),
		)
	}

	if len(slots) == 0 {
		return nil, &NoSlotsError{Duration: req.Duration, Days: maxDays}
	}

	return slots, nil
}

// StartOfDay returns midnight of t's calendar day in t's location.
// Callers fetching busy data should anchor their window here so that
// intervals earlier on the start day are not silently missing.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
