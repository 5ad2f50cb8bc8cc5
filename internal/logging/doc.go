// Package logging assembles structured slog loggers used across ytdl.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so command code tags every line
// with the subcommand and run ID. Logs default to stderr: stdout belongs to
// command output such as `info --json`.
package logging
