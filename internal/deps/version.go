package deps

import (
	"regexp"
	"strings"
)

var versionPattern = regexp.MustCompile(`\bversion\s+(\S+)`)

// ParseVersion extracts a version string from tool output. ffmpeg and
// ffprobe print "ffmpeg version 6.1.1 Copyright ..." while yt-dlp prints the
// bare version ("2024.08.06"); anything else yields the first line.
func ParseVersion(output string) string {
	line := firstLine(output)
	if line == "" {
		return ""
	}
	if m := versionPattern.FindStringSubmatch(line); len(m) == 2 {
		return m[1]
	}
	return line
}

func firstLine(output string) string {
	for _, line := range strings.Split(output, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
