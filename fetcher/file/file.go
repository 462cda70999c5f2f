package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// ErrInvalidPath is returned when a name is not a valid fs.FS path.
var ErrInvalidPath = errors.New("invalid path")

// Fetcher reads a file once and serves its cached contents.
type Fetcher struct {
	filepath string
	data     []byte
}

// NewFetcher returns a constructor function that creates a Fetcher for fpath on the
// operating system file system. The file is read when the constructor runs, which
// lets the Fx container decide when that happens.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		absPath, err := filepath.Abs(filepath.Clean(fpath))
		if err != nil {
			return nil, fmt.Errorf("resolving path %q: %w", fpath, err)
		}

		dir, name := filepath.Split(absPath)
		if name == "" {
			return nil, fmt.Errorf("path %q: %w", absPath, ErrPathIsDirectory)
		}

		fetcher, err := NewFSFetcher(os.DirFS(dir), name)()
		if err != nil {
			return nil, err
		}

		fetcher.filepath = absPath

		return fetcher, nil
	}
}

// NewFSFetcher returns a constructor function that creates a Fetcher for name inside fsys.
// name must be a valid fs.FS path (slash-separated, unrooted).
func NewFSFetcher(fsys fs.FS, name string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		if !fs.ValidPath(name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, name)
		}

		stat, err := fs.Stat(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("stat file %q: %w", name, err)
		}

		if stat.IsDir() {
			return nil, fmt.Errorf("path %q: %w", name, ErrPathIsDirectory)
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading file %q: %w", name, err)
		}

		return &Fetcher{
			filepath: name,
			data:     data,
		}, nil
	}
}

// Path returns the path the data was read from.
func (f *Fetcher) Path() string {
	return f.filepath
}

// Fetch returns a copy of the cached data that was read at construction time.
// A copy is returned to prevent callers from mutating the cached data.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}
