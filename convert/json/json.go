package json

import (
	"fmt"
	"io"
	"strconv"

	"github.com/0xalexb/yaml2json/document"

	"github.com/go-json-experiment/json/jsontext"
)

// DefaultIndent is the indentation used for each nesting level.
const DefaultIndent = "    "

// Encoder implements convert.Encoder.
type Encoder struct {
	indent string
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithIndent overrides the per-level indentation.
func WithIndent(indent string) Option {
	return func(e *Encoder) {
		e.indent = indent
	}
}

// NewEncoder creates a new JSON array encoder.
func NewEncoder(opts ...Option) *Encoder {
	encoder := &Encoder{indent: DefaultIndent}

	for _, apply := range opts {
		apply(encoder)
	}

	return encoder
}

// Encode writes docs to w as one JSON array followed by a newline.
func (e *Encoder) Encode(w io.Writer, docs []document.Value) error {
	enc := jsontext.NewEncoder(w,
		jsontext.WithIndent(e.indent),
		jsontext.SpaceAfterColon(true),
	)

	err := enc.WriteToken(jsontext.BeginArray)
	if err != nil {
		return fmt.Errorf("writing array start: %w", err)
	}

	for i, doc := range docs {
		err = writeValue(enc, doc, "$["+strconv.Itoa(i)+"]")
		if err != nil {
			return err
		}
	}

	err = enc.WriteToken(jsontext.EndArray)
	if err != nil {
		return fmt.Errorf("writing array end: %w", err)
	}

	return nil
}

//nolint:cyclop // one case per value kind
func writeValue(enc *jsontext.Encoder, value document.Value, path string) error {
	var err error

	switch value.Kind() {
	case document.NullKind:
		err = enc.WriteToken(jsontext.Null)
	case document.BoolKind:
		err = enc.WriteToken(jsontext.Bool(value.Bool()))
	case document.IntKind:
		err = enc.WriteToken(jsontext.Int(value.Int()))
	case document.UintKind:
		err = enc.WriteToken(jsontext.Uint(value.Uint()))
	case document.BigIntKind:
		err = enc.WriteValue(jsontext.Value(value.BigInt().String()))
	case document.FloatKind:
		text, finite := document.FloatText(value.Float())
		if !finite {
			return fmt.Errorf("%w: non-finite number %v at %s", document.ErrNotRepresentable, value.Float(), path)
		}

		err = enc.WriteValue(jsontext.Value(text))
	case document.StringKind:
		err = enc.WriteToken(jsontext.String(value.Str()))
	case document.SequenceKind:
		return writeSequence(enc, value, path)
	case document.MappingKind:
		return writeMapping(enc, value, path)
	default:
		return fmt.Errorf("%w: %s at %s", document.ErrNotRepresentable, value.Kind(), path)
	}

	if err != nil {
		return fmt.Errorf("writing %s at %s: %w", value.Kind(), path, err)
	}

	return nil
}

func writeSequence(enc *jsontext.Encoder, value document.Value, path string) error {
	err := enc.WriteToken(jsontext.BeginArray)
	if err != nil {
		return fmt.Errorf("writing sequence at %s: %w", path, err)
	}

	for i, item := range value.Items() {
		err = writeValue(enc, item, path+"["+strconv.Itoa(i)+"]")
		if err != nil {
			return err
		}
	}

	err = enc.WriteToken(jsontext.EndArray)
	if err != nil {
		return fmt.Errorf("writing sequence at %s: %w", path, err)
	}

	return nil
}

func writeMapping(enc *jsontext.Encoder, value document.Value, path string) error {
	err := enc.WriteToken(jsontext.BeginObject)
	if err != nil {
		return fmt.Errorf("writing mapping at %s: %w", path, err)
	}

	for _, pair := range value.Pairs() {
		err = enc.WriteToken(jsontext.String(pair.Key))
		if err != nil {
			return fmt.Errorf("writing key %q at %s: %w", pair.Key, path, err)
		}

		err = writeValue(enc, pair.Value, path+"."+pair.Key)
		if err != nil {
			return err
		}
	}

	err = enc.WriteToken(jsontext.EndObject)
	if err != nil {
		return fmt.Errorf("writing mapping at %s: %w", path, err)
	}

	return nil
}
