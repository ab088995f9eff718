// Package calendar provides the Google Calendar API client used by
// the slot finder.
//
// The client is strictly read-only. It retrieves the busy intervals of
// every attendee with a single batched freebusy query, reads the
// organizer's working hours from the Calendar user settings (falling
// back to 09:00-17:00 Monday-Friday when the setting is absent), and
// exposes calendar metadata so the primary calendar's time zone can
// anchor the search.
//
// The client supports multi-account authentication using the Google
// OAuth2 flow; see the internal/google package for token handling.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := calendar.NewClient(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	policy, err := client.WorkingHours()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	busy, err := client.BusyIntervals(
//	    []string{"a@example.com", "b@example.com"},
//	    schedule.Interval{Start: start, End: start.AddDate(0, 0, 21)},
//	)
package calendar
