package calendar

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/teemow/slotfinder/internal/google"
	"github.com/teemow/slotfinder/internal/schedule"
)

// workingHoursSetting is the Calendar user setting that holds the
// organizer's working hours
const workingHoursSetting = "workingHours"

// Client wraps the Google Calendar service
type Client struct {
	svc           *calendar.Service
	account       string // The account this client is associated with
	tokenProvider google.TokenProvider
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccountWithProvider checks if a valid OAuth token exists for the specified account
func HasTokenForAccountWithProvider(account string, provider google.TokenProvider) bool {
	if provider == nil {
		return false
	}
	return provider.HasTokenForAccount(account)
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	provider := google.NewFileTokenProvider()
	return HasTokenForAccountWithProvider(account, provider)
}

// HasToken checks if a valid OAuth token exists for the default account
func HasToken() bool {
	return HasTokenForAccount("default")
}

// GetAuthURLForAccount returns the OAuth URL for user authorization for a specific account
func GetAuthURLForAccount(account string) string {
	return google.GetAuthURLForAccount(account)
}

// SaveTokenForAccount exchanges an authorization code for tokens and saves them for a specific account
func SaveTokenForAccount(ctx context.Context, account string, authCode string) error {
	return google.SaveTokenForAccount(ctx, account, authCode)
}

// NewClientForAccountWithProvider creates a new Calendar client with OAuth2 authentication for a specific account
// The OAuth token is retrieved from the provided token provider
func NewClientForAccountWithProvider(ctx context.Context, account string, tokenProvider google.TokenProvider) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	// Get token from the provided provider
	token, err := tokenProvider.GetTokenForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token for account %s: %w", account, err)
	}

	// Create OAuth2 config and token source
	conf := google.GetOAuthConfig()
	tokenSource := conf.TokenSource(ctx, token)

	// Create HTTP client with the token
	client := oauth2.NewClient(ctx, tokenSource)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	baseTransport := &http.Transport{
		ForceAttemptHTTP2: false,
	}
	transport.Base = baseTransport

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{
		svc:           svc,
		account:       account,
		tokenProvider: tokenProvider,
	}, nil
}

// NewClientForAccount creates a new Calendar client with OAuth2 authentication for a specific account
// For CLI usage, it will prompt for auth code via stdin if no token exists
// For MCP usage, it will return an error if no token exists
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	provider := google.NewFileTokenProvider()

	if !provider.HasTokenForAccount(account) {
		if !isTerminal() {
			return nil, errors.New(google.GetAuthenticationErrorMessage(account))
		}

		authURL := google.GetAuthURLForAccount(account)
		log.Printf("Go to %v", authURL)
		log.Printf("Authorizing for account: %s", account)
		io.WriteString(os.Stdout, "Enter code> ")

		bs := bufio.NewScanner(os.Stdin)
		if !bs.Scan() {
			return nil, io.EOF
		}
		code := bs.Text()
		if err := google.SaveTokenForAccount(ctx, account, code); err != nil {
			return nil, err
		}
	}

	return NewClientForAccountWithProvider(ctx, account, provider)
}

// NewClient creates a new Calendar client with OAuth2 authentication for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// isTerminal checks if stdin is connected to a terminal (CLI mode)
func isTerminal() bool {
	fileInfo, _ := os.Stdin.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ListCalendars lists all calendars accessible to the user
func (c *Client) ListCalendars() ([]CalendarInfo, error) {
	list, err := c.svc.CalendarList.List().Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	var calendars []CalendarInfo
	for _, entry := range list.Items {
		calendars = append(calendars, toCalendarInfo(entry))
	}

	return calendars, nil
}

// GetCalendar retrieves information about a specific calendar
func (c *Client) GetCalendar(calendarID string) (*CalendarInfo, error) {
	entry, err := c.svc.CalendarList.Get(calendarID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar: %w", err)
	}

	info := toCalendarInfo(entry)
	return &info, nil
}

// GetPrimaryCalendar retrieves information about the primary calendar.
// Its time zone anchors the search: all day windows and slots are
// computed in that single zone.
func (c *Client) GetPrimaryCalendar() (*CalendarInfo, error) {
	return c.GetCalendar("primary")
}

// Timezone returns the location of the primary calendar, falling back
// to the local zone when the calendar has none configured
func (c *Client) Timezone() (*time.Location, error) {
	info, err := c.GetPrimaryCalendar()
	if err != nil {
		return nil, err
	}
	if info.TimeZone == "" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(info.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("calendar has invalid time zone %q: %w", info.TimeZone, err)
	}
	return loc, nil
}

// QueryFreeBusy checks availability for calendars in a time range.
// Results are sorted by calendar ID for deterministic output.
func (c *Client) QueryFreeBusy(timeMin, timeMax time.Time, calendarIDs []string) ([]FreeBusyInfo, error) {
	items := make([]*calendar.FreeBusyRequestItem, len(calendarIDs))
	for i, id := range calendarIDs {
		items[i] = &calendar.FreeBusyRequestItem{Id: id}
	}

	query := &calendar.FreeBusyRequest{
		TimeMin: timeMin.Format(time.RFC3339),
		TimeMax: timeMax.Format(time.RFC3339),
		Items:   items,
	}

	result, err := c.svc.Freebusy.Query(query).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to query freebusy: %w", err)
	}

	var infos []FreeBusyInfo
	for calID, cal := range result.Calendars {
		info := FreeBusyInfo{
			Calendar: calID,
		}

		// Add busy time ranges
		for _, busy := range cal.Busy {
			start, err := time.Parse(time.RFC3339, busy.Start)
			if err != nil {
				return nil, fmt.Errorf("calendar %s returned unparsable busy start %q: %w", calID, busy.Start, err)
			}
			end, err := time.Parse(time.RFC3339, busy.End)
			if err != nil {
				return nil, fmt.Errorf("calendar %s returned unparsable busy end %q: %w", calID, busy.End, err)
			}
			info.Busy = append(info.Busy, schedule.Interval{Start: start, End: end})
		}

		// Add errors if any
		for _, calErr := range cal.Errors {
			info.Errors = append(info.Errors, calErr.Reason)
		}

		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Calendar < infos[j].Calendar
	})

	return infos, nil
}

// BusyIntervals fetches the busy intervals of every attendee within
// the search window with one batched freebusy query. A per-calendar
// error from the API aborts the whole request: a common time cannot be
// found without every attendee's calendar.
func (c *Client) BusyIntervals(attendees []string, window schedule.Interval) (map[string][]schedule.Interval, error) {
	if len(attendees) == 0 {
		return nil, fmt.Errorf("at least one attendee is required")
	}

	infos, err := c.QueryFreeBusy(window.Start, window.End, attendees)
	if err != nil {
		return nil, err
	}

	byCalendar := make(map[string]FreeBusyInfo, len(infos))
	for _, info := range infos {
		byCalendar[info.Calendar] = info
	}

	busy := make(map[string][]schedule.Interval, len(attendees))
	for _, attendee := range attendees {
		info, ok := byCalendar[attendee]
		if !ok {
			return nil, fmt.Errorf("no freebusy data returned for %s", attendee)
		}
		if len(info.Errors) > 0 {
			return nil, fmt.Errorf("cannot read calendar for %s: %s", attendee, strings.Join(info.Errors, ", "))
		}
		busy[attendee] = info.Busy
	}

	return busy, nil
}

// WorkingHours reads the organizer's working hours from the Calendar
// user settings and converts them into a schedule policy. Accounts
// that never configured working hours fall back to the 09:00-17:00
// Monday-Friday default, matching what Calendar assumes for them.
func (c *Client) WorkingHours() (*schedule.Policy, error) {
	setting, err := c.svc.Settings.Get(workingHoursSetting).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			// The setting does not exist until the user touches it
			return schedule.DefaultPolicy(), nil
		}
		return nil, fmt.Errorf("failed to read working hours setting: %w", err)
	}

	if setting.Value == "" {
		return schedule.DefaultPolicy(), nil
	}

	policy, err := parseWorkingHoursValue(setting.Value)
	if err != nil {
		log.Printf("Unparsable working hours setting (%v), using defaults", err)
		return schedule.DefaultPolicy(), nil
	}

	return policy, nil
}
