// Package ffprobe decodes `ffprobe -show_format -show_streams -of json`
// output for local media files.
//
// The extract command uses it to refuse inputs without an audio stream and
// to report duration before handing the file to ffmpeg.
package ffprobe
