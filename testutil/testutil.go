package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// ProcRoot is a synthetic proc-style directory tree.
type ProcRoot struct {
	// Path is the root directory, to be used as the inspector root.
	Path string
	// FS is the filesystem the tree lives on.
	FS afero.Fs

	t *testing.T
}

// NewProcRoot creates an empty proc root on disk under t.TempDir().
// Its FS is afero.NewOsFs(), so both read strategies can reach it.
func NewProcRoot(t *testing.T) *ProcRoot {
	t.Helper()
	return &ProcRoot{Path: t.TempDir(), FS: afero.NewOsFs(), t: t}
}

// NewMemProcRoot creates an empty proc root at /proc on an in-memory
// filesystem. Only the buffered strategy and directory listing can read it.
func NewMemProcRoot(t *testing.T) *ProcRoot {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/proc", 0o755); err != nil {
		t.Fatalf("Failed to create /proc: %v", err)
	}
	return &ProcRoot{Path: "/proc", FS: fs, t: t}
}

// WriteFile writes content to name relative to the root, creating parent
// directories as needed.
func (r *ProcRoot) WriteFile(name, content string) string {
	r.t.Helper()
	path := filepath.Join(r.Path, name)
	if err := r.FS.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := afero.WriteFile(r.FS, path, []byte(content), 0o644); err != nil {
		r.t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// AddDir creates an empty directory entry relative to the root.
func (r *ProcRoot) AddDir(name string) string {
	r.t.Helper()
	path := filepath.Join(r.Path, name)
	if err := r.FS.MkdirAll(path, 0o755); err != nil {
		r.t.Fatalf("Failed to create directory %s: %v", name, err)
	}
	return path
}

// AddProcess creates <pid>/status and <pid>/cmdline.
func (r *ProcRoot) AddProcess(pid, status, cmdline string) {
	r.t.Helper()
	r.WriteFile(filepath.Join(pid, "status"), status)
	r.WriteFile(filepath.Join(pid, "cmdline"), cmdline)
}

// Remove deletes name relative to the root.
func (r *ProcRoot) Remove(name string) {
	r.t.Helper()
	if err := r.FS.RemoveAll(filepath.Join(r.Path, name)); err != nil && !os.IsNotExist(err) {
		r.t.Fatalf("Failed to remove %s: %v", name, err)
	}
}
