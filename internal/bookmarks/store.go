// Package bookmarks persists named filesystem locations and the entry names
// hidden below them.
package bookmarks

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/gustavkrist/bookmarks/internal/logging/events"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
)

// GlobalIgnores is the ignores key applied to every bookmark.
const GlobalIgnores = "global"

// DefaultFile is where bookmarks live when nothing else is configured.
const DefaultFile = "~/.bookmarks"

var (
	ErrNotFound    = errors.New("bookmark not found")
	ErrExists      = errors.New("bookmark already exists")
	ErrInvalidName = errors.New("invalid bookmark name")
)

// File is the on-disk document.
type File struct {
	Bookmarks map[string]string   `json:"bookmarks"`
	Ignores   map[string][]string `json:"ignores"`
}

// Entry is one bookmark.
type Entry struct {
	Name string
	Path string
}

// Empty returns a document with no bookmarks and no ignores.
func Empty() File {
	return File{
		Bookmarks: map[string]string{},
		Ignores:   map[string][]string{GlobalIgnores: {}},
	}
}

func (f *File) normalise() {
	if f.Bookmarks == nil {
		f.Bookmarks = map[string]string{}
	}
	if f.Ignores == nil {
		f.Ignores = map[string][]string{}
	}
	if f.Ignores[GlobalIgnores] == nil {
		f.Ignores[GlobalIgnores] = []string{}
	}
}

// Entries returns the bookmarks sorted by name.
func (f File) Entries() []Entry {
	entries := make([]Entry, 0, len(f.Bookmarks))
	for name, path := range f.Bookmarks {
		entries = append(entries, Entry{Name: name, Path: path})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// IgnoresFor returns the global ignores merged with those of one bookmark.
func (f File) IgnoresFor(name string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, key := range []string{GlobalIgnores, name} {
		for _, entry := range f.Ignores[key] {
			if _, ok := seen[entry]; ok {
				continue
			}
			seen[entry] = struct{}{}
			out = append(out, entry)
		}
	}
	sort.Strings(out)
	return out
}

// Store reads and writes the bookmark file.
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore returns a store for path on fs. A nil fs means the OS
// filesystem; "~" in path expands to the home directory.
func NewStore(fs afero.Fs, path string) (*Store, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if strings.TrimSpace(path) == "" {
		path = DefaultFile
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", path, err)
	}
	return &Store{fs: fs, path: expanded}, nil
}

// Path returns the resolved bookmark file path.
func (s *Store) Path() string { return s.path }

// Fs returns the filesystem the store works on.
func (s *Store) Fs() afero.Fs { return s.fs }

// Load reads the bookmark file, creating an empty one when it is missing.
func (s *Store) Load() (File, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		f := Empty()
		if err := s.Save(f); err != nil {
			return File{}, err
		}
		return f, nil
	}
	if err != nil {
		return File{}, fmt.Errorf("read bookmarks: %w", err)
	}
	f := Empty()
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &f); err != nil {
			return File{}, fmt.Errorf("parse %s: %w", s.path, err)
		}
	}
	f.normalise()
	return f, nil
}

// Save writes f atomically with sorted keys and four-space indentation.
func (s *Store) Save(f File) error {
	f.normalise()
	data, err := json.MarshalIndent(f, "", "    ")
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}
	data = append(data, '\n')
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create bookmark directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write bookmarks: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace bookmarks: %w", err)
	}
	return nil
}

// Add bookmarks path under name. The path must exist; it is stored
// absolute. Existing names are only replaced when overwrite is set.
func (s *Store) Add(name, path string, overwrite bool) (Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == GlobalIgnores {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	resolved, err := s.resolve(path)
	if err != nil {
		return Entry{}, err
	}
	f, err := s.Load()
	if err != nil {
		return Entry{}, err
	}
	if existing, ok := f.Bookmarks[name]; ok && !overwrite && existing != resolved {
		return Entry{}, fmt.Errorf("%w: %s -> %s", ErrExists, name, existing)
	}
	f.Bookmarks[name] = resolved
	if err := s.Save(f); err != nil {
		return Entry{}, err
	}
	events.Bookmark.Add(name, resolved)
	return Entry{Name: name, Path: resolved}, nil
}

func (s *Store) resolve(path string) (string, error) {
	expanded, err := homedir.Expand(strings.TrimSpace(path))
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	if _, err := s.fs.Stat(abs); err != nil {
		return "", fmt.Errorf("bookmark target %s: %w", abs, err)
	}
	return abs, nil
}

// Remove deletes a bookmark and its ignores.
func (s *Store) Remove(name string) error {
	f, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := f.Bookmarks[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(f.Bookmarks, name)
	delete(f.Ignores, name)
	if err := s.Save(f); err != nil {
		return err
	}
	events.Bookmark.Remove(name)
	return nil
}

// Ignore hides entry name below bookmark. Use GlobalIgnores to hide it
// everywhere.
func (s *Store) Ignore(bookmark, name string) error {
	f, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := f.Bookmarks[bookmark]; !ok && bookmark != GlobalIgnores {
		return fmt.Errorf("%w: %s", ErrNotFound, bookmark)
	}
	for _, existing := range f.Ignores[bookmark] {
		if existing == name {
			return nil
		}
	}
	f.Ignores[bookmark] = append(f.Ignores[bookmark], name)
	sort.Strings(f.Ignores[bookmark])
	if err := s.Save(f); err != nil {
		return err
	}
	events.Bookmark.Ignore(bookmark, name)
	return nil
}

// Reset replaces the file with an empty document.
func (s *Store) Reset() error {
	if err := s.Save(Empty()); err != nil {
		return err
	}
	events.Bookmark.Reset(s.path)
	return nil
}

// TargetKind says what a bookmark currently points at.
type TargetKind int

const (
	TargetMissing TargetKind = iota
	TargetDir
	TargetFile
)

func (k TargetKind) String() string {
	switch k {
	case TargetDir:
		return "dir"
	case TargetFile:
		return "file"
	default:
		return "missing"
	}
}

// Status pairs a bookmark with what its path resolves to right now.
type Status struct {
	Entry
	Target TargetKind
}

// Status reports every bookmark in f with directory bookmarks first, each
// group sorted by name. Missing targets sort with the files.
func (s *Store) Status(f File) []Status {
	var dirs, files []Status
	for _, entry := range f.Entries() {
		st := Status{Entry: entry, Target: TargetMissing}
		if info, err := s.fs.Stat(entry.Path); err == nil {
			st.Target = TargetFile
			if info.IsDir() {
				st.Target = TargetDir
			}
		}
		if st.Target == TargetDir {
			dirs = append(dirs, st)
		} else {
			files = append(files, st)
		}
	}
	return append(dirs, files...)
}
