// Package services defines shared utilities consumed by the command handlers
// and the external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp the run ID and subcommand name for logging.
//   - Structured error markers plus the Wrap helper that classify failures as
//     download, metadata, missing-dependency, transcode, validation or
//     configuration errors.
//   - ToolError and ExitCode, which carry an external tool's exit status and
//     diagnostics through to the process exit.
package services
