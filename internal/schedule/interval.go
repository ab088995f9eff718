package schedule

import (
	"fmt"
	"sort"
	"time"
)

// Interval is a half-open time range [Start, End).
//
// The half-open convention means two intervals that merely touch
// (one ends exactly when the other starts) do not overlap. Busy
// periods and free gaps both use this representation.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns the length of the interval
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// IsValid reports whether the interval satisfies the Start < End invariant
func (iv Interval) IsValid() bool {
	return iv.Start.Before(iv.End)
}

// Overlaps reports whether the interval shares any instant with other.
// Touching boundaries (iv.End == other.Start) do not count as overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// ClipTo restricts the interval to the given window.
// The second return value is false when nothing remains after clipping.
func (iv Interval) ClipTo(window Interval) (Interval, bool) {
	start, end := iv.Start, iv.End
	if start.Before(window.Start) {
		start = window.Start
	}
	if end.After(window.End) {
		end = window.End
	}
	if !start.Before(end) {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}

// Merge coalesces overlapping or touching intervals into a minimal
// sorted, pairwise non-overlapping covering set. The input is not
// modified; intervals are sorted by start time and swept once, so an
// interval whose start falls inside (or exactly at the end of) the
// previous merged interval extends it.
func Merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := sorted[:1]
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Start.After(last.End) {
			merged = append(merged, iv)
			continue
		}
		if iv.End.After(last.End) {
			last.End = iv.End
		}
	}

	return merged
}

// Subtract removes the busy intervals from the window and returns the
// maximal free gaps that remain, in chronological order. The busy
// intervals must already be merged and sorted (see Merge); the walk
// keeps a cursor at the end of the last busy period seen and emits a
// gap whenever the next busy interval starts after it.
func Subtract(window Interval, busy []Interval) []Interval {
	var gaps []Interval

	cursor := window.Start
	for _, iv := range busy {
		if !iv.End.After(cursor) {
			// Entirely before the part of the window still free
			continue
		}
		if !iv.Start.Before(window.End) {
			break
		}
		if cursor.Before(iv.Start) {
			gaps = append(gaps, Interval{Start: cursor, End: iv.Start})
		}
		cursor = iv.End
		if !cursor.Before(window.End) {
			return gaps
		}
	}

	if cursor.Before(window.End) {
		gaps = append(gaps, Interval{Start: cursor, End: window.End})
	}

	return gaps
}
