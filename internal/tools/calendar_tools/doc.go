// Package calendar_tools provides the MCP scheduling tools.
//
// calendar_query_freebusy reports raw busy intervals for a set of
// calendars. calendar_find_meeting_slots runs the full availability
// search: it reads the organizer's working hours and timezone, fetches
// every attendee's busy intervals in one batched freebusy query, and
// returns the earliest slots where all attendees are free.
package calendar_tools
