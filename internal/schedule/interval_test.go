package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// at builds a time on a fixed reference day, keeping tests readable
func at(hour, min int) time.Time {
	return time.Date(2025, time.November, 20, hour, min, 0, 0, time.UTC)
}

func ival(startHour, startMin, endHour, endMin int) Interval {
	return Interval{Start: at(startHour, startMin), End: at(endHour, endMin)}
}

func TestIntervalIsValid(t *testing.T) {
	assert.True(t, ival(9, 0, 10, 0).IsValid())
	assert.False(t, ival(10, 0, 10, 0).IsValid())
	assert.False(t, ival(11, 0, 10, 0).IsValid())
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Interval
		overlaps bool
	}{
		{
			name:     "disjoint",
			a:        ival(9, 0, 10, 0),
			b:        ival(11, 0, 12, 0),
			overlaps: false,
		},
		{
			name:     "touching boundaries are not overlapping",
			a:        ival(9, 0, 10, 0),
			b:        ival(10, 0, 11, 0),
			overlaps: false,
		},
		{
			name:     "partial overlap",
			a:        ival(9, 0, 10, 30),
			b:        ival(10, 0, 11, 0),
			overlaps: true,
		},
		{
			name:     "containment",
			a:        ival(9, 0, 17, 0),
			b:        ival(12, 0, 13, 0),
			overlaps: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.overlaps, tt.b.Overlaps(tt.a))
		})
	}
}

func TestIntervalClipTo(t *testing.T) {
	window := ival(9, 0, 17, 0)

	tests := []struct {
		name    string
		in      Interval
		want    Interval
		clipped bool
	}{
		{
			name:    "inside window unchanged",
			in:      ival(10, 0, 11, 0),
			want:    ival(10, 0, 11, 0),
			clipped: true,
		},
		{
			name:    "overhangs start",
			in:      ival(7, 0, 10, 0),
			want:    ival(9, 0, 10, 0),
			clipped: true,
		},
		{
			name:    "overhangs end",
			in:      ival(16, 0, 19, 0),
			want:    ival(16, 0, 17, 0),
			clipped: true,
		},
		{
			name:    "covers window",
			in:      ival(0, 0, 23, 59),
			want:    window,
			clipped: true,
		},
		{
			name:    "entirely before window",
			in:      ival(6, 0, 8, 0),
			clipped: false,
		},
		{
			name:    "entirely after window",
			in:      ival(18, 0, 20, 0),
			clipped: false,
		},
		{
			name:    "touching window start",
			in:      ival(8, 0, 9, 0),
			clipped: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.in.ClipTo(window)
			assert.Equal(t, tt.clipped, ok)
			if tt.clipped {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		in   []Interval
		want []Interval
	}{
		{
			name: "empty input",
			in:   nil,
			want: nil,
		},
		{
			name: "single interval",
			in:   []Interval{ival(9, 0, 10, 0)},
			want: []Interval{ival(9, 0, 10, 0)},
		},
		{
			name: "disjoint intervals stay apart",
			in:   []Interval{ival(9, 0, 10, 0), ival(11, 0, 12, 0)},
			want: []Interval{ival(9, 0, 10, 0), ival(11, 0, 12, 0)},
		},
		{
			name: "overlapping intervals coalesce",
			in:   []Interval{ival(9, 0, 10, 30), ival(10, 0, 11, 0)},
			want: []Interval{ival(9, 0, 11, 0)},
		},
		{
			name: "touching intervals coalesce",
			in:   []Interval{ival(9, 0, 10, 0), ival(10, 0, 11, 0)},
			want: []Interval{ival(9, 0, 11, 0)},
		},
		{
			name: "contained interval is absorbed",
			in:   []Interval{ival(9, 0, 12, 0), ival(10, 0, 11, 0)},
			want: []Interval{ival(9, 0, 12, 0)},
		},
		{
			name: "unsorted input",
			in:   []Interval{ival(14, 0, 15, 0), ival(9, 0, 10, 0), ival(9, 30, 11, 0)},
			want: []Interval{ival(9, 0, 11, 0), ival(14, 0, 15, 0)},
		},
		{
			name: "duplicates collapse",
			in:   []Interval{ival(9, 0, 10, 0), ival(9, 0, 10, 0)},
			want: []Interval{ival(9, 0, 10, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.in)
			assert.Equal(t, tt.want, got)

			// The merged union is always sorted and pairwise non-overlapping
			for i := 1; i < len(got); i++ {
				assert.True(t, got[i-1].End.Before(got[i].Start),
					"merged intervals %v and %v must be disjoint and sorted", got[i-1], got[i])
			}
		})
	}
}

func TestMergeDoesNotModifyInput(t *testing.T) {
	in := []Interval{ival(14, 0, 15, 0), ival(9, 0, 10, 0)}
	Merge(in)
	assert.Equal(t, ival(14, 0, 15, 0), in[0])
	assert.Equal(t, ival(9, 0, 10, 0), in[1])
}

func TestSubtract(t *testing.T) {
	window := ival(9, 0, 17, 0)

	tests := []struct {
		name string
		busy []Interval
		want []Interval
	}{
		{
			name: "no busy intervals leaves whole window",
			busy: nil,
			want: []Interval{window},
		},
		{
			name: "busy covering window leaves nothing",
			busy: []Interval{window},
			want: nil,
		},
		{
			name: "busy in the middle splits the window",
			busy: []Interval{ival(12, 0, 13, 0)},
			want: []Interval{ival(9, 0, 12, 0), ival(13, 0, 17, 0)},
		},
		{
			name: "busy at the start",
			busy: []Interval{ival(9, 0, 10, 0)},
			want: []Interval{ival(10, 0, 17, 0)},
		},
		{
			name: "busy at the end",
			busy: []Interval{ival(16, 0, 17, 0)},
			want: []Interval{ival(9, 0, 16, 0)},
		},
		{
			name: "multiple busy intervals",
			busy: []Interval{ival(9, 0, 10, 0), ival(10, 0, 11, 0), ival(14, 0, 15, 0)},
			want: []Interval{ival(11, 0, 14, 0), ival(15, 0, 17, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subtract(window, Merge(tt.busy))
			assert.Equal(t, tt.want, got)
		})
	}
}

// Free gaps and merged busy time must reassemble the window exactly:
// no overlap between the two and no uncovered point in between.
func TestSubtractCompleteness(t *testing.T) {
	window := ival(9, 0, 17, 0)
	busy := Merge([]Interval{
		ival(8, 0, 9, 30),
		ival(10, 0, 11, 15),
		ival(11, 0, 12, 0),
		ival(15, 45, 18, 0),
	})

	var clipped []Interval
	for _, iv := range busy {
		if c, ok := iv.ClipTo(window); ok {
			clipped = append(clipped, c)
		}
	}

	gaps := Subtract(window, clipped)

	pieces := Merge(append(append([]Interval{}, clipped...), gaps...))
	require.Len(t, pieces, 1, "gaps and busy must tile the window without holes")
	assert.Equal(t, window, pieces[0])

	var gapTotal, busyTotal time.Duration
	for _, g := range gaps {
		gapTotal += g.Duration()
	}
	for _, b := range clipped {
		busyTotal += b.Duration()
	}
	assert.Equal(t, window.Duration(), gapTotal+busyTotal)

	for _, g := range gaps {
		for _, b := range clipped {
			assert.False(t, g.Overlaps(b), "gap %v overlaps busy %v", g, b)
		}
	}
}
