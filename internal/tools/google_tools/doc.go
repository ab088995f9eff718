// Package google_tools provides MCP tools for the Google OAuth flow.
//
// Two tools are registered: google_get_auth_url hands out the
// authorization URL for an account, and google_save_auth_code exchanges
// the pasted code for a token stored under the user cache directory.
package google_tools
