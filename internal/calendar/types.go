package calendar

import (
	"encoding/json"
	"fmt"
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/teemow/slotfinder/internal/schedule"
)

// CalendarInfo represents information about a calendar
type CalendarInfo struct {
	ID          string
	Summary     string
	Description string
	TimeZone    string
	Primary     bool
	AccessRole  string // "owner", "writer", "reader", "freeBusyReader"
}

// FreeBusyInfo represents availability information for a calendar
type FreeBusyInfo struct {
	Calendar string
	Busy     []schedule.Interval
	Errors   []string
}

// workingHoursValue mirrors the JSON payload of the Calendar
// "workingHours" user setting
type workingHoursValue struct {
	StartTime  string   `json:"startTime"`
	EndTime    string   `json:"endTime"`
	DaysOfWeek []string `json:"daysOfWeek"`
}

var weekdayByName = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// parseWorkingHoursValue converts the raw setting value into a
// schedule policy. Fields the user left unset keep the Calendar
// defaults (09:00-17:00, Monday through Friday).
func parseWorkingHoursValue(value string) (*schedule.Policy, error) {
	var parsed workingHoursValue
	if err := json.Unmarshal([]byte(value), &parsed); err != nil {
		return nil, fmt.Errorf("invalid working hours value: %w", err)
	}

	if parsed.StartTime == "" {
		parsed.StartTime = "09:00"
	}
	if parsed.EndTime == "" {
		parsed.EndTime = "17:00"
	}
	if len(parsed.DaysOfWeek) == 0 {
		parsed.DaysOfWeek = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}
	}

	dayStart, err := schedule.ParseTimeOfDay(parsed.StartTime)
	if err != nil {
		return nil, err
	}
	dayEnd, err := schedule.ParseTimeOfDay(parsed.EndTime)
	if err != nil {
		return nil, err
	}

	weekdays := make([]time.Weekday, 0, len(parsed.DaysOfWeek))
	for _, name := range parsed.DaysOfWeek {
		day, ok := weekdayByName[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q in working hours value", name)
		}
		weekdays = append(weekdays, day)
	}

	return schedule.NewPolicy(dayStart, dayEnd, weekdays)
}

// toCalendarInfo converts a Google Calendar list entry to CalendarInfo
func toCalendarInfo(entry *calendar.CalendarListEntry) CalendarInfo {
	if entry == nil {
		return CalendarInfo{}
	}
	return CalendarInfo{
		ID:          entry.Id,
		Summary:     entry.Summary,
		Description: entry.Description,
		TimeZone:    entry.TimeZone,
		Primary:     entry.Primary,
		AccessRole:  entry.AccessRole,
	}
}
