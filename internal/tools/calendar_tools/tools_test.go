package calendar_tools

import (
	"strings"
	"testing"
	"time"

	"github.com/teemow/slotfinder/internal/schedule"
)

func TestParseStart(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	t.Run("rfc3339", func(t *testing.T) {
		got, err := parseStart("2025-11-20T09:30:00Z", berlin)
		if err != nil {
			t.Fatalf("parseStart() error = %v", err)
		}
		want := time.Date(2025, time.November, 20, 9, 30, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("parseStart() = %v, want %v", got, want)
		}
		if got.Location().String() != "Europe/Berlin" {
			t.Errorf("parseStart() location = %v, want Europe/Berlin", got.Location())
		}
	})

	t.Run("plain date", func(t *testing.T) {
		got, err := parseStart("2025-11-20", berlin)
		if err != nil {
			t.Fatalf("parseStart() error = %v", err)
		}
		want := time.Date(2025, time.November, 20, 0, 0, 0, 0, berlin)
		if !got.Equal(want) {
			t.Errorf("parseStart() = %v, want %v", got, want)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := parseStart("next tuesday", berlin); err == nil {
			t.Error("expected error for unparsable start")
		}
	})
}

func TestFormatSlots(t *testing.T) {
	slots := []schedule.Slot{
		{
			Start: time.Date(2025, time.November, 20, 11, 0, 0, 0, time.UTC),
			End:   time.Date(2025, time.November, 20, 12, 0, 0, 0, time.UTC),
		},
		{
			Start: time.Date(2025, time.November, 21, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2025, time.November, 21, 10, 0, 0, 0, time.UTC),
		},
	}

	out := formatSlots(slots, time.Hour)
	if !strings.Contains(out, "2 meeting slot(s)") {
		t.Errorf("missing slot count in output:\n%s", out)
	}
	if !strings.Contains(out, "60 minute meeting") {
		t.Errorf("missing duration in output:\n%s", out)
	}
	if !strings.Contains(out, "Thu, Nov 20 at 11:00 AM") {
		t.Errorf("missing first slot in output:\n%s", out)
	}
	if !strings.Contains(out, "Fri, Nov 21 at 9:00 AM") {
		t.Errorf("missing second slot in output:\n%s", out)
	}
}
