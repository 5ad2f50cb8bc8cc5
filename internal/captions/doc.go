// Package captions selects which caption track to fetch from the
// "subtitles" and "automatic_captions" maps of a yt-dlp metadata document.
package captions
