// Package stream provides an input source that reads a stream, typically stdin, to exhaustion.
package stream

import (
	"errors"
	"fmt"
	"io"
)

// ErrNilReader is returned when the Fetcher is constructed without a reader.
var ErrNilReader = errors.New("reader must not be nil")

// Fetcher reads a stream once at construction time and serves the cached contents.
type Fetcher struct {
	data []byte
}

// NewFetcher returns a constructor function that reads r to exhaustion when it runs.
// The reader is not closed.
func NewFetcher(r io.Reader) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		if r == nil {
			return nil, ErrNilReader
		}

		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading stream: %w", err)
		}

		return &Fetcher{data: data}, nil
	}
}

// Fetch returns a copy of the data read at construction time.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}
