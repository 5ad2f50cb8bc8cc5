package language

import (
	"strings"

	xlang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Canonical returns the BCP 47 form of a caption language key ("en-gb"
// becomes "en-GB"). Keys x/text cannot parse, such as YouTube's "live_chat",
// are returned trimmed and lowercased.
func Canonical(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := xlang.Parse(code)
	if err != nil {
		return strings.ToLower(code)
	}
	return tag.String()
}

// Base returns the primary language subtag: "en" for "en-GB", "en-US" and
// "eng".
func Base(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	if tag, err := xlang.Parse(code); err == nil {
		if base, conf := tag.Base(); conf != xlang.No {
			return base.String()
		}
	}
	prefix, _, _ := strings.Cut(strings.ReplaceAll(code, "_", "-"), "-")
	return strings.ToLower(prefix)
}

// SameBase reports whether both codes share a primary language.
func SameBase(a, b string) bool {
	base := Base(a)
	return base != "" && base == Base(b)
}

// Equal reports whether two codes name the same tag, ignoring case.
func Equal(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// DisplayName returns the English name of a language code. Returns "Unknown"
// for empty input, or the code itself when it cannot be parsed.
func DisplayName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "Unknown"
	}
	tag, err := xlang.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}

// NormalizeList canonicalizes and deduplicates a list of language codes,
// preserving order.
func NormalizeList(languages []string) []string {
	if len(languages) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(languages))
	seen := make(map[string]struct{}, len(languages))
	for _, lang := range languages {
		canonical := Canonical(lang)
		if canonical == "" {
			continue
		}
		key := strings.ToLower(canonical)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		normalized = append(normalized, canonical)
	}
	return normalized
}
