// Package logging provides structured logging helpers built on
// log/slog.
//
// It defines the attribute keys shared across the codebase and
// convenience constructors for them, so log lines stay uniform and
// greppable. Attendee email addresses are PII and are only ever logged
// as truncated SHA-256 hashes (see AnonymizeEmail); OAuth tokens are
// only logged as length indicators.
package logging
