package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ProbeFileName is the scratch file written by ProbeWritable.
const ProbeFileName = ".write_test"

// partialSuffixes mark yt-dlp's in-flight artifacts, which never count as output.
var partialSuffixes = []string{".part", ".ytdl", ".temp"}

// ProbeWritable creates and removes a scratch file inside dir, creating dir
// first when it does not exist.
func ProbeWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	probe := filepath.Join(dir, ProbeFileName)
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("write probe file: %w", err)
	}
	if err := os.Remove(probe); err != nil {
		return fmt.Errorf("remove probe file: %w", err)
	}
	return nil
}

// Snapshot records the regular files directly inside a directory.
type Snapshot map[string]struct{}

// SnapshotFiles lists the regular files in dir. A missing directory yields an
// empty snapshot.
func SnapshotFiles(dir string) (Snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Snapshot{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	snap := make(Snapshot, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			snap[entry.Name()] = struct{}{}
		}
	}
	return snap, nil
}

// NewFiles returns absolute paths of regular files in dir that are absent
// from before, sorted by name. Partial downloads are skipped.
func NewFiles(dir string, before Snapshot) ([]string, error) {
	after, err := SnapshotFiles(dir)
	if err != nil {
		return nil, err
	}
	var added []string
	for name := range after {
		if _, ok := before[name]; ok {
			continue
		}
		if isPartial(name) {
			continue
		}
		added = append(added, filepath.Join(dir, name))
	}
	sort.Strings(added)
	return added, nil
}

// ReplaceExt swaps the extension of path for ext (which includes the dot).
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func isPartial(name string) bool {
	for _, suffix := range partialSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
