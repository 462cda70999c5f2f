// Package logging builds the tool's log/slog logger. Logs go to stderr so they never mix with the JSON on stdout.
package logging
