package services

import (
	"errors"
	"fmt"
	"strings"
)

// Error markers. Every failure surfaced by a command wraps exactly one of
// these so the CLI can classify it with errors.Is.
var (
	ErrDownload          = errors.New("download error")
	ErrMetadata          = errors.New("metadata error")
	ErrMissingDependency = errors.New("missing dependency")
	ErrTranscode         = errors.New("transcode error")
	ErrValidation        = errors.New("validation error")
	ErrConfiguration     = errors.New("configuration error")
)

// Wrap builds an error message that includes command context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, command, operation, message string, err error) error {
	detail := buildDetail(command, operation, message)
	if marker == nil {
		marker = ErrDownload
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ToolError reports a non-zero exit from an external executable. Stderr holds
// the tool's own diagnostics, trimmed but otherwise verbatim.
type ToolError struct {
	Tool     string
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Tool, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// ExitCode maps an error to a process exit status. A wrapped ToolError keeps
// the tool's own status; everything else exits 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var toolErr *ToolError
	if errors.As(err, &toolErr) && toolErr.ExitCode > 0 && toolErr.ExitCode < 256 {
		return toolErr.ExitCode
	}
	return 1
}

// Kind names the error marker carried by err, or "" when none matches.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrMissingDependency):
		return "MissingDependencyError"
	case errors.Is(err, ErrMetadata):
		return "MetadataError"
	case errors.Is(err, ErrDownload):
		return "DownloadError"
	case errors.Is(err, ErrTranscode):
		return "TranscodeError"
	case errors.Is(err, ErrValidation):
		return "ValidationError"
	case errors.Is(err, ErrConfiguration):
		return "ConfigurationError"
	default:
		return ""
	}
}

func buildDetail(command, operation, message string) string {
	parts := make([]string, 0, 3)
	if command = strings.TrimSpace(command); command != "" {
		parts = append(parts, command)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "command failure"
	}
	return strings.Join(parts, ": ")
}
