// Package main hosts the ytdl CLI entrypoint and command graph.
//
// The Cobra command tree maps each subcommand onto one operation of the
// internal packages: dl and audio persist media through the downloader
// service, info prints metadata, gate and doctor report on the external
// tools, extract runs a local ffmpeg conversion and captions fetches a
// single caption track. This package resolves configuration, sets up
// logging on stderr and translates errors into exit statuses; the work
// itself lives under internal/.
package main
