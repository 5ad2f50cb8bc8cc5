package testsupport

// The stubs mimic just enough of each tool's command line for the CLI
// tests. They rely on shell builtins plus cat so they run with any PATH.

// StubTitle and StubID are what the yt-dlp stub reports for every resource.
const (
	StubTitle = "Test Video"
	StubID    = "abc123"
)

// YtDlpStub behaves like yt-dlp for http(s) URLs: URLs containing
// "unsupported" fail with status 1, "unavailable" with status 2. Otherwise
// -J prints a metadata document and a download writes one file named
// "Test Video [abc123].<ext>" next to the --output template.
const YtDlpStub = `#!/bin/sh
out=""
json=0
audio=0
subs=0
lang=""
url=""
while [ $# -gt 0 ]; do
	case "$1" in
	--version) echo "2024.08.06"; exit 0 ;;
	-o|--output) shift; out="$1" ;;
	--output=*) out="${1#--output=}" ;;
	-J|--dump-single-json) json=1 ;;
	-x|--extract-audio) audio=1 ;;
	--write-subs|--write-auto-subs) subs=1 ;;
	--sub-langs) shift; lang="$1" ;;
	--sub-langs=*) lang="${1#--sub-langs=}" ;;
	http://*|https://*) url="$1" ;;
	esac
	shift
done
case "$url" in
*unsupported*) echo "ERROR: Unsupported URL: $url" >&2; exit 1 ;;
*unavailable*) echo "WARNING: retrying" >&2; echo "ERROR: [youtube] abc123: Video unavailable" >&2; exit 2 ;;
esac
if [ "$json" = 1 ]; then
	cat <<JSON
{"id":"abc123","title":"Test Video","uploader":"Tester","duration":212,"webpage_url":"$url","upload_date":"20240102","view_count":12345,"filesize_approx":10485760,"language":"en","subtitles":{"en-GB":[{"ext":"vtt"}]},"automatic_captions":{"en":[{"ext":"vtt"}],"de":[{"ext":"vtt"}]}}
JSON
	exit 0
fi
if [ -z "$out" ]; then
	echo "ERROR: no output template" >&2
	exit 1
fi
dir="${out%/*}"
if [ "$subs" = 1 ]; then
	echo "WEBVTT" > "$dir/Test Video [abc123].$lang.vtt"
elif [ "$audio" = 1 ]; then
	echo "audio" > "$dir/Test Video [abc123].m4a"
else
	echo "video" > "$dir/Test Video [abc123].mp4"
fi
`

// FFmpegStub answers -version and otherwise writes its argument list, one
// per line, to the last argument (the output path).
const FFmpegStub = `#!/bin/sh
case "$1" in
-version) echo "ffmpeg version 6.1.1-stub Copyright (c) 2000-2023 the FFmpeg developers"; exit 0 ;;
esac
last=""
for arg in "$@"; do last="$arg"; done
printf '%s\n' "$@" > "$last"
`

// FFprobeStub reports one video and one audio stream, or video only when the
// probed path contains "silent".
const FFprobeStub = `#!/bin/sh
case "$1" in
-version) echo "ffprobe version 6.1.1-stub Copyright (c) 2007-2023 the FFmpeg developers"; exit 0 ;;
esac
last=""
for arg in "$@"; do last="$arg"; done
if [ ! -f "$last" ]; then
	echo "$last: No such file or directory" >&2
	exit 1
fi
case "$last" in
*silent*) echo '{"streams":[{"index":0,"codec_type":"video","codec_name":"h264"}],"format":{"duration":"5.000000"}}' ;;
*) echo '{"streams":[{"index":0,"codec_type":"video","codec_name":"h264"},{"index":1,"codec_type":"audio","codec_name":"aac","channels":2}],"format":{"duration":"5.000000","size":"2048"}}' ;;
esac
`

var stubScripts = map[string]string{
	"yt-dlp":  YtDlpStub,
	"ffmpeg":  FFmpegStub,
	"ffprobe": FFprobeStub,
}
