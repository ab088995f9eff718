// Package cmd implements the command-line interface for slotfinder.
//
// This package provides the following commands:
//   - find: Find the earliest meeting slots where all attendees are free
//   - serve: Start the MCP server to provide scheduling tools for AI assistants
//   - version: Display version information
//
// The find command is the default command when no subcommand is specified.
package cmd
