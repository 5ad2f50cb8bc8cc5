package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"ytdl/internal/preflight"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const statusLabelWidth = 18

var statusStyles = [...]struct{ tag, color string }{
	statusInfo:  {"INFO", ansiBlue},
	statusOK:    {"OK", ansiGreen},
	statusWarn:  {"WARN", ansiYellow},
	statusError: {"FAIL", ansiRed},
}

// renderStatusLine formats "  label:   [TAG] message", coloured by kind when
// colorize is set.
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style := statusStyles[kind]
	var b strings.Builder
	fmt.Fprintf(&b, "  %-*s [%s]", statusLabelWidth, label+":", style.tag)
	if message != "" {
		b.WriteByte(' ')
		b.WriteString(message)
	}
	if !colorize {
		return b.String()
	}
	return style.color + b.String() + ansiReset
}

// renderSectionHeader underlines title.
func renderSectionHeader(title string, colorize bool) []string {
	title = strings.TrimSpace(title)
	lines := []string{title, strings.Repeat("=", len(title))}
	if colorize {
		for i := range lines {
			lines[i] = ansiBlue + lines[i] + ansiReset
		}
	}
	return lines
}

// gateLines renders a summary line, one line per check, and a closing list of
// failed required checks when there are any. Optional checks that did not pass
// count as warnings, never as failures.
func gateLines(results []preflight.Result, colorize bool) []string {
	lines := make([]string, 0, len(results)+2)

	var passed, warned int
	var failed []string
	for _, r := range results {
		switch {
		case r.Passed:
			passed++
		case r.Optional:
			warned++
		default:
			failed = append(failed, r.Name)
		}
	}

	summaryKind := statusOK
	summary := fmt.Sprintf("%d passed", passed)
	if warned > 0 {
		summaryKind = statusWarn
		summary += fmt.Sprintf(", %d warning", warned)
		if warned > 1 {
			summary += "s"
		}
	}
	if len(failed) > 0 {
		summaryKind = statusError
		summary += fmt.Sprintf(", %d failed", len(failed))
	}
	lines = append(lines, renderStatusLine("Summary", summaryKind, summary, colorize))

	for _, r := range results {
		kind := statusOK
		switch {
		case r.Passed:
		case r.Optional:
			kind = statusWarn
		default:
			kind = statusError
		}
		lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
	}

	if len(failed) > 0 {
		lines = append(lines, "  Failed checks: "+strings.Join(failed, ", "))
	}
	return lines
}

// shouldColorize reports whether writer is a terminal and NO_COLOR is unset.
func shouldColorize(writer io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
