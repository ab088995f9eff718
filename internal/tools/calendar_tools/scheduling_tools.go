package calendar_tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/slotfinder/internal/schedule"
	"github.com/teemow/slotfinder/internal/server"
	"github.com/teemow/slotfinder/internal/tools/common"
)

// RegisterSchedulingTools registers scheduling and availability tools with the MCP server
func RegisterSchedulingTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Query free/busy tool
	queryFreeBusyTool := mcp.NewTool("calendar_query_freebusy",
		mcp.WithDescription("Check availability for one or more calendars/attendees in a time range"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("timeMin",
			mcp.Required(),
			mcp.Description("Start time for the range (RFC3339 format, e.g., '2025-01-01T00:00:00Z')"),
		),
		mcp.WithString("timeMax",
			mcp.Required(),
			mcp.Description("End time for the range (RFC3339 format, e.g., '2025-01-31T23:59:59Z')"),
		),
		mcp.WithString("calendars",
			mcp.Required(),
			mcp.Description("Comma-separated list of calendar IDs or email addresses to check"),
		),
	)

	s.AddTool(queryFreeBusyTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleQueryFreeBusy(ctx, request, sc)
	})

	// Find meeting slots tool
	findMeetingSlotsTool := mcp.NewTool("calendar_find_meeting_slots",
		mcp.WithDescription("Find the earliest meeting slots where all attendees are free during the organizer's working hours"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("attendees",
			mcp.Required(),
			mcp.Description("Comma-separated list of attendee email addresses"),
		),
		mcp.WithNumber("durationMinutes",
			mcp.Description("Meeting duration in minutes (default: 60)"),
		),
		mcp.WithString("start",
			mcp.Description("Earliest date to consider, RFC3339 or YYYY-MM-DD (default: today)"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of slots to return (default: 3)"),
		),
		mcp.WithNumber("days",
			mcp.Description("Number of days to scan before giving up (default: 21)"),
		),
	)

	s.AddTool(findMeetingSlotsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleFindMeetingSlots(ctx, request, sc)
	})

	return nil
}

func handleQueryFreeBusy(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	timeMinStr, ok := args["timeMin"].(string)
	if !ok || timeMinStr == "" {
		return mcp.NewToolResultError("timeMin is required"), nil
	}
	timeMin, err := time.Parse(time.RFC3339, timeMinStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid timeMin format: %v", err)), nil
	}

	timeMaxStr, ok := args["timeMax"].(string)
	if !ok || timeMaxStr == "" {
		return mcp.NewToolResultError("timeMax is required"), nil
	}
	timeMax, err := time.Parse(time.RFC3339, timeMaxStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid timeMax format: %v", err)), nil
	}

	calendarsStr, ok := args["calendars"].(string)
	if !ok || calendarsStr == "" {
		return mcp.NewToolResultError("calendars is required"), nil
	}
	calendars := common.SplitList(calendarsStr)

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	freeBusyInfos, err := client.QueryFreeBusy(timeMin, timeMax, calendars)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to query free/busy: %v", err)), nil
	}

	result := fmt.Sprintf("Free/Busy information for %d calendar(s):\n\n", len(freeBusyInfos))
	for _, info := range freeBusyInfos {
		result += fmt.Sprintf("Calendar: %s\n", info.Calendar)

		if len(info.Errors) > 0 {
			result += fmt.Sprintf("  Errors: %s\n", strings.Join(info.Errors, ", "))
		}

		if len(info.Busy) == 0 {
			result += "  Status: FREE for entire range\n"
		} else {
			result += fmt.Sprintf("  Busy periods: %d\n", len(info.Busy))
			for i, busy := range info.Busy {
				result += fmt.Sprintf("  %d. %s to %s\n",
					i+1,
					busy.Start.Format("2006-01-02 15:04"),
					busy.End.Format("2006-01-02 15:04"))
			}
		}
		result += "\n"
	}

	return mcp.NewToolResultText(result), nil
}

func handleFindMeetingSlots(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(args)

	attendees := common.GetAttendeesFromArgs(args)
	if len(attendees) == 0 {
		return mcp.NewToolResultError("attendees is required"), nil
	}

	duration := schedule.DefaultDuration
	if durationVal, ok := args["durationMinutes"].(float64); ok {
		if durationVal <= 0 {
			return mcp.NewToolResultError("durationMinutes must be positive"), nil
		}
		duration = time.Duration(durationVal) * time.Minute
	}

	maxResults := schedule.DefaultMaxResults
	if maxResultsVal, ok := args["maxResults"].(float64); ok && maxResultsVal > 0 {
		maxResults = int(maxResultsVal)
	}

	maxDays := schedule.DefaultMaxDays
	if daysVal, ok := args["days"].(float64); ok && daysVal > 0 {
		maxDays = int(daysVal)
	}

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	loc, err := client.Timezone()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to determine calendar timezone: %v", err)), nil
	}

	start := time.Now().In(loc)
	if startStr, ok := args["start"].(string); ok && startStr != "" {
		start, err = parseStart(startStr, loc)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid start: %v", err)), nil
		}
	}

	policy, err := client.WorkingHours()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read working hours: %v", err)), nil
	}

	// Fetch whole days: an attendee meeting earlier on the start day
	// must still be visible so the engine never proposes over it
	dayStart := schedule.StartOfDay(start)
	window := schedule.Interval{Start: dayStart, End: dayStart.AddDate(0, 0, maxDays)}
	busy, err := client.BusyIntervals(attendees, window)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to query attendee availability: %v", err)), nil
	}

	engine, err := schedule.NewEngine(policy)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to set up availability search: %v", err)), nil
	}

	slots, err := engine.FindSlots(schedule.Request{
		Start:      start,
		Duration:   duration,
		Busy:       busy,
		MaxResults: maxResults,
		MaxDays:    maxDays,
	})
	if err != nil {
		var noSlots *schedule.NoSlotsError
		if errors.As(err, &noSlots) {
			return mcp.NewToolResultText(fmt.Sprintf(
				"No common %s slot found for %s within %d days. Try a shorter duration or a wider date range.",
				duration, strings.Join(attendees, ", "), noSlots.Days)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to find meeting slots: %v", err)), nil
	}

	return mcp.NewToolResultText(formatSlots(slots, duration)), nil
}

// parseStart accepts either a full RFC3339 timestamp or a plain date.
// A plain date is anchored to midnight in the calendar's timezone.
func parseStart(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	return time.ParseInLocation("2006-01-02", s, loc)
}

func formatSlots(slots []schedule.Slot, duration time.Duration) string {
	result := fmt.Sprintf("Found %d meeting slot(s) for a %d minute meeting:\n\n",
		len(slots), int(duration.Minutes()))

	for i, slot := range slots {
		result += fmt.Sprintf("%d. %s to %s\n",
			i+1,
			slot.Start.Format("Mon, Jan 2 at 3:04 PM"),
			slot.End.Format("3:04 PM MST"))
	}

	return result
}
