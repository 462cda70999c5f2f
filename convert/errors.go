package convert

import (
	"errors"

	"github.com/0xalexb/yaml2json/document"
)

// Exit statuses reported for conversion failures.
const (
	ExitOK             = 0
	ExitFailure        = 1
	ExitParseError     = 2
	ExitSerializeError = 3
)

// ParseError reports input that is not well-formed YAML or uses a disallowed construct.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SerializeError reports a parsed value that cannot be represented in JSON.
type SerializeError struct {
	Err error
}

func (e *SerializeError) Error() string {
	return "serialize error: " + e.Err.Error()
}

func (e *SerializeError) Unwrap() error {
	return e.Err
}

// classifyParse wraps an error returned by a Parser. Values that parsed safely
// but have no JSON form are serialization failures, everything else is a parse failure.
func classifyParse(err error) error {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return err
	}

	var serializeErr *SerializeError
	if errors.As(err, &serializeErr) {
		return err
	}

	if errors.Is(err, document.ErrNotRepresentable) {
		return &SerializeError{Err: err}
	}

	return &ParseError{Err: err}
}

// classifyEncode wraps an error returned by an Encoder.
func classifyEncode(err error) error {
	var serializeErr *SerializeError
	if errors.As(err, &serializeErr) {
		return err
	}

	return &SerializeError{Err: err}
}

// ExitCode maps an error returned by Run to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return ExitParseError
	}

	var serializeErr *SerializeError
	if errors.As(err, &serializeErr) {
		return ExitSerializeError
	}

	return ExitFailure
}
