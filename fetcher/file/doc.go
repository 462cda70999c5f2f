// Package file provides a file-based input source.
//
// The file is read once at construction time and cached, so every call to
// Fetch returns the same bytes. Files are read through an fs.FS: NewFetcher
// uses the operating system file system, NewFSFetcher accepts any fs.FS
// (os.DirFS, embed.FS, an in-memory file system in tests).
//
// Usage:
//
//	fetcher, err := file.NewFetcher("/path/to/scenarios.yml")()
//	if err != nil {
//	    // Handle error: file not found, permission denied, path is directory, etc.
//	}
//	data, err := fetcher.Fetch()
//
// Error Handling:
//   - Construction returns error if the file cannot be read or the path is a directory
//   - Errors include the path for easier debugging
//   - Use errors.Is(err, fs.ErrNotExist) to detect a missing file
//   - Use errors.Is(err, file.ErrPathIsDirectory) to check for directory errors
package file
