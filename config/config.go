package config

import (
	"errors"
	"fmt"
	"log/slog"
)

// Errors wrapped by Load, one per pipeline stage.
var (
	ErrFetch    = errors.New("reading configuration")
	ErrParse    = errors.New("parsing configuration")
	ErrValidate = errors.New("validating configuration")
)

// Parser defines an interface for parsing configuration data into a target structure.
//
// The path parameter specifies a navigation path within the configuration data
// using colon (:) as the separator for nested keys. For example:
//   - "yaml2json" navigates to config["yaml2json"]
//   - "tools:yaml2json" navigates two levels deep
//   - "" (empty path) means parse the entire document
//
// Parser implementations are responsible for path navigation internally.
// See config/parser/yaml for an example using goccy/go-yaml PathString.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher defines an interface for reading configuration data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Load reads data from fetcher, parses the section at path into target, applies
// defaults and validates the result. Errors wrap ErrFetch, ErrParse or ErrValidate.
func Load[T any](fetcher DataFetcher, parser Parser, target *T, path string) (*T, error) {
	data, err := fetcher.Fetch()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	err = parser.Parse(data, target, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return Finish(target, path)
}

// Finish applies defaults to target and validates it. It is the tail of Load,
// exposed for callers that fall back to a zero target when no data exists.
func Finish[T any](target *T, path string) (*T, error) {
	targetDefaulter, isDefaulter := any(target).(Defaulter)
	if isDefaulter {
		changed := targetDefaulter.SetDefaults()
		if changed {
			slog.Debug("defaults applied", slog.String("path", path))
		}
	}

	targetValidatable, isValidatable := any(target).(Validator)
	if isValidatable {
		err := targetValidatable.Validate()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidate, err)
		}
	}

	return target, nil
}
