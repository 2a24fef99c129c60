package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// MemFS builds an in-memory filesystem. Paths ending in "/" become
// directories; every other path becomes a file whose content is its own
// base name.
func MemFS(t testing.TB, paths ...string) afero.Fs {
	t.Helper()
	mem := afero.NewMemMapFs()
	populate(t, mem, "", paths)
	return mem
}

// WriteTree creates the same layout as MemFS below root on disk.
func WriteTree(t testing.TB, root string, paths ...string) {
	t.Helper()
	populate(t, afero.NewOsFs(), root, paths)
}

func populate(t testing.TB, fsys afero.Fs, root string, paths []string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, p)
		if strings.HasSuffix(p, "/") {
			if err := fsys.MkdirAll(full, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", full, err)
			}
			continue
		}
		if err := fsys.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(full), err)
		}
		if err := afero.WriteFile(fsys, full, []byte(filepath.Base(full)), 0o644); err != nil {
			t.Fatalf("write %s: %v", full, err)
		}
	}
}

// DenyFs wraps base so that opening any of the given paths fails with a
// permission error, the way an unreadable directory behaves.
func DenyFs(base afero.Fs, paths ...string) *DeniedFs {
	d := &DeniedFs{Fs: base, denied: make(map[string]struct{})}
	d.Deny(paths...)
	return d
}

// DeniedFs is an afero.Fs that refuses to open selected paths.
type DeniedFs struct {
	afero.Fs
	denied map[string]struct{}
}

// Deny adds paths to the refused set.
func (d *DeniedFs) Deny(paths ...string) {
	for _, p := range paths {
		d.denied[filepath.Clean(p)] = struct{}{}
	}
}

// Allow removes paths from the refused set.
func (d *DeniedFs) Allow(paths ...string) {
	for _, p := range paths {
		delete(d.denied, filepath.Clean(p))
	}
}

func (d *DeniedFs) Open(name string) (afero.File, error) {
	if _, ok := d.denied[filepath.Clean(name)]; ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return d.Fs.Open(name)
}
