package convert

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/0xalexb/yaml2json/document"
)

// ErrNilDependency is returned by Run when the Converter was built without a Source, Parser or Encoder.
var ErrNilDependency = errors.New("converter dependency must not be nil")

// Source yields the complete raw input of one run.
type Source interface {
	Fetch() ([]byte, error)
}

// Parser splits raw input into documents, in input order.
type Parser interface {
	ParseAll(data []byte) ([]document.Value, error)
}

// Encoder renders documents as one JSON array.
type Encoder interface {
	Encode(w io.Writer, docs []document.Value) error
}

// Converter reads a YAML stream and writes it as a JSON array.
type Converter struct {
	source  Source
	parser  Parser
	encoder Encoder
	logger  *slog.Logger
}

// NewConverter creates a Converter. A nil logger falls back to slog.Default().
func NewConverter(source Source, parser Parser, encoder Encoder, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}

	return &Converter{
		source:  source,
		parser:  parser,
		encoder: encoder,
		logger:  logger,
	}
}

// Convert parses data and returns the encoded JSON array.
func (c *Converter) Convert(data []byte) ([]byte, error) {
	if c.parser == nil || c.encoder == nil {
		return nil, ErrNilDependency
	}

	docs, err := c.parser.ParseAll(data)
	if err != nil {
		return nil, classifyParse(err)
	}

	c.logger.Debug("parsed yaml stream", slog.Int("documents", len(docs)))

	var buf bytes.Buffer

	err = c.encoder.Encode(&buf, docs)
	if err != nil {
		return nil, classifyEncode(err)
	}

	return buf.Bytes(), nil
}

// Run fetches the input, converts it and writes the JSON array to w.
// w receives nothing when any step fails.
func (c *Converter) Run(w io.Writer) error {
	if c.source == nil {
		return ErrNilDependency
	}

	data, err := c.source.Fetch()
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	c.logger.Debug("input fetched", slog.Int("bytes", len(data)))

	out, err := c.Convert(data)
	if err != nil {
		return err
	}

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	c.logger.Debug("output written", slog.Int("bytes", len(out)))

	return nil
}
