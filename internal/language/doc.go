// Package language normalizes the language keys yt-dlp reports for caption
// tracks, using golang.org/x/text/language for parsing and display names.
package language
