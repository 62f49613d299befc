// Package content abstracts the directory of documents that listings are built from.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/djherbis/times"
)

// Source gives read-only access to a flat directory of documents.
type Source interface {
	// ListFiles returns the names of the regular files in the directory.
	ListFiles() ([]string, error)
	// StatCreationTime returns the creation time recorded for the named file.
	StatCreationTime(name string) (time.Time, error)
	// ReadContents returns the full contents of the named file.
	ReadContents(name string) ([]byte, error)
}

// Dir is a Source backed by a directory on the local file system.
// Creation time is the inode change time where the platform records one,
// falling back to the modification time.
type Dir string

// ListFiles returns the names of the regular files in the directory, sorted by name.
func (d Dir) ListFiles() ([]string, error) {
	entries, err := os.ReadDir(string(d))
	if err != nil {
		return nil, fmt.Errorf("ListFiles: %w", err)
	}
	return fileNames(entries), nil
}

// StatCreationTime returns the change time of the named file.
func (d Dir) StatCreationTime(name string) (time.Time, error) {
	ts, err := times.Stat(filepath.Join(string(d), name))
	if err != nil {
		return time.Time{}, fmt.Errorf("StatCreationTime: %w", err)
	}
	if ts.HasChangeTime() {
		return ts.ChangeTime(), nil
	}
	return ts.ModTime(), nil
}

// ReadContents reads the named file.
func (d Dir) ReadContents(name string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(string(d), name))
	if err != nil {
		return nil, fmt.Errorf("ReadContents: %w", err)
	}
	return b, nil
}

// FS is a Source backed by a folder of an fs.FS. Creation time is
// the modification time, which is all fs.FileInfo exposes.
type FS struct {
	fsys fs.FS
	dir  string
}

// NewFS returns a Source over folder dir of fsys.
func NewFS(fsys fs.FS, dir string) *FS {
	if dir == "" {
		dir = "."
	}
	return &FS{fsys: fsys, dir: dir}
}

// ListFiles returns the names of the regular files in the folder, sorted by name.
func (s *FS) ListFiles() ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, fmt.Errorf("ListFiles: %w", err)
	}
	return fileNames(entries), nil
}

// StatCreationTime returns the modification time of the named file.
func (s *FS) StatCreationTime(name string) (time.Time, error) {
	fi, err := fs.Stat(s.fsys, s.path(name))
	if err != nil {
		return time.Time{}, fmt.Errorf("StatCreationTime: %w", err)
	}
	if fi.IsDir() {
		return time.Time{}, fmt.Errorf("StatCreationTime: %w", &fs.PathError{Op: "stat", Path: name, Err: errNotFile})
	}
	return fi.ModTime(), nil
}

// ReadContents reads the named file.
func (s *FS) ReadContents(name string) ([]byte, error) {
	b, err := fs.ReadFile(s.fsys, s.path(name))
	if err != nil {
		return nil, fmt.Errorf("ReadContents: %w", err)
	}
	return b, nil
}

func (s *FS) path(name string) string {
	if s.dir == "." {
		return name
	}
	return s.dir + "/" + name
}

var errNotFile = errors.New("not a regular file")

// fileNames keeps the non-directory entries.
func fileNames(entries []fs.DirEntry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}
