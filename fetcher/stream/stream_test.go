package stream_test

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/0xalexb/yaml2json/fetcher/stream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch_ReadsWholeStream(t *testing.T) {
	t.Parallel()

	input := "a: 1\n---\nb: 2\n"

	fetcher, err := stream.NewFetcher(iotest.OneByteReader(strings.NewReader(input)))()
	require.NoError(t, err)

	data, err := fetcher.Fetch()

	require.NoError(t, err)
	assert.Equal(t, input, string(data))
}

func TestFetcher_Fetch_EmptyStream(t *testing.T) {
	t.Parallel()

	fetcher, err := stream.NewFetcher(strings.NewReader(""))()
	require.NoError(t, err)

	data, err := fetcher.Fetch()

	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestFetcher_Fetch_ReadsOnce(t *testing.T) {
	t.Parallel()

	reader := strings.NewReader("x: 1\n")

	fetcher, err := stream.NewFetcher(reader)()
	require.NoError(t, err)

	first, err := fetcher.Fetch()
	require.NoError(t, err)

	first[0] = 'y'

	second, err := fetcher.Fetch()
	require.NoError(t, err)

	assert.Equal(t, "x: 1\n", string(second))
	assert.Zero(t, reader.Len(), "stream should be consumed")
}

func TestNewFetcher_NilReader(t *testing.T) {
	t.Parallel()

	fetcher, err := stream.NewFetcher(nil)()

	require.ErrorIs(t, err, stream.ErrNilReader)
	assert.Nil(t, fetcher)
}

func TestNewFetcher_ReadError(t *testing.T) {
	t.Parallel()

	readErr := errors.New("broken pipe")

	fetcher, err := stream.NewFetcher(iotest.ErrReader(readErr))()

	require.ErrorIs(t, err, readErr)
	assert.Contains(t, err.Error(), "reading stream")
	assert.Nil(t, fetcher)
}
