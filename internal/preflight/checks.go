package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"ytdl/internal/config"
	"ytdl/internal/deps"
)

// ToolRequirements lists the external executables ytdl drives. With
// withVersion set, each one must also answer its version flag.
func ToolRequirements(cfg *config.Config, withVersion bool) []deps.Requirement {
	reqs := []deps.Requirement{
		{
			Name:        "yt-dlp",
			Command:     cfg.Tools.YtdlpBinary,
			VersionArgs: []string{"--version"},
		},
		{
			Name:        "ffmpeg",
			Command:     cfg.Tools.FFmpegBinary,
			VersionArgs: []string{"-version"},
		},
		{
			Name:        "ffprobe",
			Command:     cfg.Tools.FFprobeBinary,
			Optional:    true,
			VersionArgs: []string{"-version"},
		},
	}
	if !withVersion {
		for i := range reqs {
			reqs[i].VersionArgs = nil
		}
	}
	return reqs
}

// FromStatus converts a dependency status into a gate result.
func FromStatus(status deps.Status) Result {
	result := Result{Name: status.Name, Optional: status.Optional, Passed: status.Available}
	switch {
	case status.Available && status.Version != "":
		result.Detail = fmt.Sprintf("%s (%s)", status.Version, status.Path)
	case status.Available:
		result.Detail = status.Path
	default:
		result.Detail = status.Detail
	}
	return result
}

// CheckOutputDirectory verifies that path is a writable directory, or that
// its nearest existing ancestor would let it be created. It never creates
// anything.
func CheckOutputDirectory(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if !info.IsDir() {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
		}
		if err := unix.Access(path, unix.W_OK|unix.X_OK); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: not writable: %v)", path, err)}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (writable)", path)}
	case !errors.Is(err, fs.ErrNotExist):
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}

	parent, err := nearestExisting(filepath.Dir(path))
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if err := unix.Access(parent, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, parent, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

func nearestExisting(dir string) (string, error) {
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return "", fmt.Errorf("%s is not a directory", dir)
			}
			return dir, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		next := filepath.Dir(dir)
		if next == dir {
			return "", fmt.Errorf("no existing ancestor for %s", dir)
		}
		dir = next
	}
}
