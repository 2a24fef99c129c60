package tree

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Entry is one item of a directory listing.
type Entry struct {
	Name string
	Dir  bool
}

// Source lists directories and resolves single paths. Errors wrapping
// fs.ErrPermission mark the directory as permission denied; any other error
// skips the directory for the current pass.
type Source interface {
	List(path string) ([]Entry, error)
	Stat(path string) (Entry, error)
}

// FSSource reads directories through an afero filesystem.
type FSSource struct {
	fs afero.Fs
}

// NewFSSource returns a source backed by fs, or by the OS filesystem when fs
// is nil.
func NewFSSource(fs afero.Fs) *FSSource {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FSSource{fs: fs}
}

// List returns the entries of path sorted by name. Symlinks are resolved to
// their target's type; links whose target vanished are left out.
func (s *FSSource) List(path string) ([]Entry, error) {
	infos, err := afero.ReadDir(s.fs, path)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		dir := info.IsDir()
		if info.Mode()&os.ModeSymlink != 0 {
			target, err := s.fs.Stat(filepath.Join(path, info.Name()))
			if err != nil {
				continue
			}
			dir = target.IsDir()
		}
		entries = append(entries, Entry{Name: info.Name(), Dir: dir})
	}
	return entries, nil
}

// Stat describes a single path, following symlinks.
func (s *FSSource) Stat(path string) (Entry, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Name: filepath.Base(path), Dir: info.IsDir()}, nil
}
