// Package settings holds the tool's own configuration: the file-mode input path and logging.
//
// Settings are read from a single file with a fixed name in the working
// directory, under the top-level "yaml2json" key:
//
//	yaml2json:
//	  input: test/fixtures/arc/arc-draft-validation-tests.yml
//	  log_level: debug
//	  log_format: text
//
// A missing file, an empty file or a file without the section yields the defaults.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/0xalexb/yaml2json/config"
	yamlparser "github.com/0xalexb/yaml2json/config/parser/yaml"
	"github.com/0xalexb/yaml2json/fetcher/file"
	"github.com/0xalexb/yaml2json/logging"
)

const (
	// FileName is the settings file looked up in the working directory.
	FileName = ".yaml2json.yml"
	// Section is the key the settings live under.
	Section = "yaml2json"

	// DefaultInput is the file read in file mode when no input is configured.
	DefaultInput = "scenarios.yml"
	// DefaultLogLevel keeps routine runs quiet on stderr.
	DefaultLogLevel = "warn"
	// DefaultLogFormat is the slog handler used when none is configured.
	DefaultLogFormat = logging.FormatJSON
)

var (
	// ErrEmptyInput is returned when the input path is blank.
	ErrEmptyInput = errors.New("input must not be empty")
	// ErrInvalidLogLevel is returned for an unknown log level.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLogFormat is returned for an unknown log format.
	ErrInvalidLogFormat = errors.New("invalid log format")
)

// Settings is the tool configuration.
type Settings struct {
	Input     string `yaml:"input"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// SetDefaults fills unset fields.
func (s *Settings) SetDefaults() bool {
	changed := false

	if s.Input == "" {
		s.Input = DefaultInput
		changed = true
	}

	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
		changed = true
	}

	if s.LogFormat == "" {
		s.LogFormat = DefaultLogFormat
		changed = true
	}

	return changed
}

// Validate checks the settings after defaults were applied.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.Input) == "" {
		return ErrEmptyInput
	}

	if !logging.ValidLevel(s.LogLevel) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, s.LogLevel)
	}

	switch strings.ToLower(s.LogFormat) {
	case logging.FormatJSON, logging.FormatText:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, s.LogFormat)
	}

	return nil
}

// InputIsAbs reports whether Input is an absolute operating system path.
func (s *Settings) InputIsAbs() bool {
	return filepath.IsAbs(s.Input)
}

// InputFSPath returns Input as a slash-separated path relative to the working directory.
func (s *Settings) InputFSPath() string {
	return filepath.ToSlash(filepath.Clean(s.Input))
}

// Default returns the settings used when no settings file exists.
func Default() *Settings {
	settings := &Settings{}
	settings.SetDefaults()

	return settings
}

// Load reads FileName from fsys.
func Load(fsys fs.FS) (*Settings, error) {
	return LoadFile(fsys, FileName)
}

// LoadFile reads the settings from name inside fsys.
func LoadFile(fsys fs.FS, name string) (*Settings, error) {
	fetcher, err := file.NewFSFetcher(fsys, name)()
	if errors.Is(err, fs.ErrNotExist) {
		return config.Finish(&Settings{}, Section)
	}

	if err != nil {
		return nil, fmt.Errorf("settings file: %w", err)
	}

	parser := yamlparser.NewParser(yamlparser.WithStrict())

	settings, err := config.Load(fetcher, parser, &Settings{}, Section)
	if errors.Is(err, yamlparser.ErrEmptyData) || errors.Is(err, yamlparser.ErrPathNotFound) {
		return config.Finish(&Settings{}, Section)
	}

	if err != nil {
		return nil, fmt.Errorf("settings file %s: %w", fetcher.Path(), err)
	}

	return settings, nil
}
