// Package schedule implements the availability computation behind the
// slot finder: working-hour policies, half-open interval algebra, and
// the day-by-day search engine.
//
// The engine scans forward from a start date, one calendar day at a
// time. Each working day is clipped to the policy's daily window, all
// attendees' busy intervals are merged into a single union, the union
// is subtracted from the window, and every remaining gap long enough
// for the requested duration yields one candidate slot aligned to the
// gap's start. The scan stops once enough candidates are found or a
// day limit is reached, so it terminates even when every day is fully
// booked.
//
// The package is pure computation. Fetching busy intervals and
// working-hour settings from Google Calendar lives in
// internal/calendar; this package only consumes the results.
//
// Example usage:
//
//	policy, err := schedule.NewPolicy(
//	    schedule.TimeOfDay{Hour: 9},
//	    schedule.TimeOfDay{Hour: 17},
//	    []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	engine, err := schedule.NewEngine(policy)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	slots, err := engine.FindSlots(schedule.Request{
//	    Start:    time.Now(),
//	    Duration: 30 * time.Minute,
//	    Busy:     busyByAttendee,
//	})
package schedule
