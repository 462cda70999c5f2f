package yaml2json

import (
	"io"
	"io/fs"

	"github.com/0xalexb/yaml2json/convert"
	"github.com/0xalexb/yaml2json/fetcher/file"
	"github.com/0xalexb/yaml2json/fetcher/stream"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	LogLevel  string
	LogFormat string
	LogOutput io.Writer
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat selects the log handler, "json" (default) or "text".
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithLogOutput sets where logs are written. Defaults to os.Stderr.
func WithLogOutput(w io.Writer) Option {
	return func(opts *Options) {
		opts.LogOutput = w
	}
}

// WithStreamInput reads the YAML stream from r until EOF.
func WithStreamInput(r io.Reader) Option {
	return inputModule("stream", stream.NewFetcher(r))
}

// WithFileInput reads the YAML stream from the file at path.
func WithFileInput(path string) Option {
	return inputModule("file", file.NewFetcher(path))
}

// WithFSInput reads the YAML stream from name inside fsys.
func WithFSInput(fsys fs.FS, name string) Option {
	return inputModule("file", file.NewFSFetcher(fsys, name))
}

func inputModule(name string, constructor any) Option {
	return WithModules(fx.Module("input:"+name,
		fx.Provide(
			fx.Annotate(
				constructor,
				fx.As(new(convert.Source)),
			),
		),
	))
}
