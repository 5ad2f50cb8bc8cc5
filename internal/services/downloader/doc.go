// Package downloader wraps yt-dlp through github.com/lrstanley/go-ytdlp.
//
// The Client builds one yt-dlp invocation per operation: Download persists
// a combined stream or extracted audio, Info dumps the metadata document and
// Captions fetches a single caption track. Files created by a run are found
// by diffing the output directory before and after, so callers can report
// exactly what landed on disk.
//
// Errors are tagged with the services markers; a non-zero yt-dlp exit is
// carried as *services.ToolError so the CLI can propagate the status.
package downloader
