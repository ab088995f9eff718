// Package server holds the shared state of the MCP server.
//
// ServerContext caches one Calendar client per authenticated Google
// account. Clients are created lazily on first use so the server can
// start before any account has completed the OAuth flow; tool handlers
// surface the authentication instructions when a client is missing.
package server
