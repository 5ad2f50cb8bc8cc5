package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteMediaFile creates a placeholder media file named name inside a fresh
// temp directory and returns its path. The stubs only look at the file name,
// so the payload is a few fixed bytes.
func WriteMediaFile(t testing.TB, name string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("\x00\x00\x00\x18ftypisom"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
