package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/slotfinder/internal/calendar"
	"github.com/teemow/slotfinder/internal/logging"
	"github.com/teemow/slotfinder/internal/schedule"
	"github.com/teemow/slotfinder/internal/tools/common"
)

func newFindCmd() *cobra.Command {
	var (
		account    string
		attendees  string
		start      string
		duration   int
		maxResults int
		days       int
		debugMode  bool
	)

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find the earliest meeting slots where all attendees are free",
		Long: `Query the free/busy state of every attendee's Google calendar and
print the earliest slots, within your working hours, where everyone is
free. Working hours are read from your Calendar settings and fall back
to 09:00-17:00 Monday to Friday when not configured.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if debugMode {
				slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}

			attendeeList := common.SplitList(attendees)
			if len(attendeeList) == 0 {
				return fmt.Errorf("at least one attendee is required (use --attendees)")
			}
			if duration <= 0 {
				return fmt.Errorf("duration must be positive, got %d", duration)
			}

			ctx := context.Background()
			client, err := calendar.NewClientForAccount(ctx, account)
			if err != nil {
				return fmt.Errorf("failed to create Calendar client for account %s: %w", account, err)
			}

			return runFind(client, attendeeList, start, time.Duration(duration)*time.Minute, maxResults, days)
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use (default: 'default')")
	cmd.Flags().StringVar(&attendees, "attendees", "", "Comma-separated attendee email addresses (required)")
	cmd.Flags().StringVar(&start, "start", "", "Earliest date to consider, RFC3339 or YYYY-MM-DD (default: today)")
	cmd.Flags().IntVar(&duration, "duration", 60, "Meeting duration in minutes")
	cmd.Flags().IntVar(&maxResults, "max-results", schedule.DefaultMaxResults, "Number of slots to print")
	cmd.Flags().IntVar(&days, "days", schedule.DefaultMaxDays, "Number of days to scan before giving up")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	return cmd
}

func runFind(client *calendar.Client, attendees []string, startStr string, duration time.Duration, maxResults, days int) error {
	logger := logging.WithOperation(slog.Default(), "find_slots")

	loc, err := client.Timezone()
	if err != nil {
		return fmt.Errorf("failed to determine calendar timezone: %w", err)
	}

	start := time.Now().In(loc)
	if startStr != "" {
		start, err = parseStartDate(startStr, loc)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
	}

	policy, err := client.WorkingHours()
	if err != nil {
		return fmt.Errorf("failed to read working hours: %w", err)
	}
	logger.Debug("using working hours", slog.String("policy", policy.String()))

	// Fetch whole days: an attendee meeting earlier on the start day
	// must still be visible so the engine never proposes over it
	dayStart := schedule.StartOfDay(start)
	window := schedule.Interval{Start: dayStart, End: dayStart.AddDate(0, 0, days)}
	busy, err := client.BusyIntervals(attendees, window)
	if err != nil {
		return fmt.Errorf("failed to query attendee availability: %w", err)
	}

	engine, err := schedule.NewEngine(policy, schedule.WithLogger(logger))
	if err != nil {
		return err
	}

	slots, err := engine.FindSlots(schedule.Request{
		Start:      start,
		Duration:   duration,
		Busy:       busy,
		MaxResults: maxResults,
		MaxDays:    days,
	})
	if err != nil {
		var noSlots *schedule.NoSlotsError
		if errors.As(err, &noSlots) {
			fmt.Printf("No common %s slot found within %d days. Try a shorter duration or a wider date range.\n",
				duration, noSlots.Days)
			return nil
		}
		return err
	}

	fmt.Printf("Earliest %d slot(s) for a %d minute meeting:\n\n", len(slots), int(duration.Minutes()))
	for i, slot := range slots {
		fmt.Printf("%d. %s to %s\n",
			i+1,
			slot.Start.Format("Mon, Jan 2 at 3:04 PM"),
			slot.End.Format("3:04 PM MST"))
	}

	return nil
}

// parseStartDate accepts either a full RFC3339 timestamp or a plain
// date anchored to midnight in the calendar's timezone.
func parseStartDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	return time.ParseInLocation("2006-01-02", s, loc)
}
