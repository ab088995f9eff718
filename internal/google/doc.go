// Package google provides OAuth2 authentication and token management
// for the Google Calendar API.
//
// Tokens are stored per account as files under the user cache
// directory, so several Google accounts can be authorized side by
// side. The TokenProvider interface allows other token sources to be
// plugged in, which the MCP server mode uses.
//
// Only read-only Calendar scopes are requested; slotfinder never
// writes to a calendar.
package google
