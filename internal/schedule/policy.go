package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TimeOfDay is a clock time within a day, independent of any date
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a "HH:MM" string (e.g. "09:00") into a TimeOfDay
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: out of range", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// Before reports whether t is earlier in the day than other
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Hour*60+t.Minute < other.Hour*60+other.Minute
}

// On anchors the time of day to the calendar date of the given time,
// in that time's location
func (t TimeOfDay) On(date time.Time) time.Time {
	year, month, day := date.Date()
	return time.Date(year, month, day, t.Hour, t.Minute, 0, 0, date.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Policy is the organizer's working-hour policy: the daily window in
// which meetings may be proposed and the set of weekdays on which that
// window applies. A Policy is immutable once constructed.
type Policy struct {
	dayStart TimeOfDay
	dayEnd   TimeOfDay
	weekdays map[time.Weekday]bool
}

// NewPolicy creates a working-hour policy. It fails with a ConfigError
// when dayStart is not before dayEnd or when no weekday is active.
func NewPolicy(dayStart, dayEnd TimeOfDay, weekdays []time.Weekday) (*Policy, error) {
	if !dayStart.Before(dayEnd) {
		return nil, &ConfigError{Reason: fmt.Sprintf("day start %s must be before day end %s", dayStart, dayEnd)}
	}
	if len(weekdays) == 0 {
		return nil, &ConfigError{Reason: "at least one working weekday is required"}
	}

	active := make(map[time.Weekday]bool, len(weekdays))
	for _, day := range weekdays {
		active[day] = true
	}

	return &Policy{
		dayStart: dayStart,
		dayEnd:   dayEnd,
		weekdays: active,
	}, nil
}

// DefaultPolicy returns the 09:00-17:00 Monday-Friday policy used when
// the organizer has no working hours configured in their calendar
func DefaultPolicy() *Policy {
	policy, err := NewPolicy(
		TimeOfDay{Hour: 9},
		TimeOfDay{Hour: 17},
		[]time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
	)
	if err != nil {
		// The defaults are constants; this cannot happen
		panic(err)
	}
	return policy
}

// DayStart returns the start of the daily working window
func (p *Policy) DayStart() TimeOfDay {
	return p.dayStart
}

// DayEnd returns the end of the daily working window
func (p *Policy) DayEnd() TimeOfDay {
	return p.dayEnd
}

// IsWorkday reports whether the date's weekday is an active working day
func (p *Policy) IsWorkday(date time.Time) bool {
	return p.weekdays[date.Weekday()]
}

// Window returns the working window [dayStart, dayEnd) on the date's
// calendar day. The second return value is false on non-working days,
// which have no window at all.
func (p *Policy) Window(date time.Time) (Interval, bool) {
	if !p.IsWorkday(date) {
		return Interval{}, false
	}
	return Interval{
		Start: p.dayStart.On(date),
		End:   p.dayEnd.On(date),
	}, true
}

func (p *Policy) String() string {
	days := make([]time.Weekday, 0, len(p.weekdays))
	for day := range p.weekdays {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	names := make([]string, len(days))
	for i, day := range days {
		names[i] = day.String()[:3]
	}

	return fmt.Sprintf("%s-%s on %s", p.dayStart, p.dayEnd, strings.Join(names, ", "))
}
