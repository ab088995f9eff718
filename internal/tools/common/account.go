package common

import "strings"

// GetAccountFromArgs extracts the account name from request arguments.
// Defaults to "default" when no account is given, so single-account
// setups never need to pass one.
func GetAccountFromArgs(args map[string]interface{}) string {
	if accountVal, ok := args["account"].(string); ok && accountVal != "" {
		return accountVal
	}
	return "default"
}

// GetAttendeesFromArgs splits a comma-separated attendee list argument
// into trimmed, non-empty email addresses.
func GetAttendeesFromArgs(args map[string]interface{}) []string {
	attendeesVal, ok := args["attendees"].(string)
	if !ok {
		return nil
	}
	return SplitList(attendeesVal)
}

// SplitList splits a comma-separated string into trimmed, non-empty items.
func SplitList(s string) []string {
	var items []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
