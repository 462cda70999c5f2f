package yaml2json

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/0xalexb/yaml2json/convert"
	jsonencoder "github.com/0xalexb/yaml2json/convert/json"
	yamlparser "github.com/0xalexb/yaml2json/convert/yaml"
	"github.com/0xalexb/yaml2json/logging"

	"go.uber.org/dig"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// App wires a Converter together with Fx and runs it once.
type App struct {
	app       *fx.App
	converter *convert.Converter
}

// NewApp creates a new instance of App with Fx configured.
// An input option (WithStreamInput, WithFileInput or WithFSInput) must be given
// for Start to succeed.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	app := &App{}
	app.app = configure(&options, &app.converter)

	return app
}

func configure(options *Options, converter **convert.Converter) *fx.App {
	output := options.LogOutput
	if output == nil {
		output = os.Stderr
	}

	loggerConfig := logging.LoggerConfig{Level: options.LogLevel, Format: options.LogFormat}
	logger := logging.NewLogger(loggerConfig, output)
	slog.SetDefault(logger)

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			// failures are returned to the caller, so container events stay at debug
			fxLogger := &fxevent.SlogLogger{Logger: logger}
			fxLogger.UseLogLevel(slog.LevelDebug)
			fxLogger.UseErrorLevel(slog.LevelDebug)

			return fxLogger
		}),
		fx.Supply(loggerConfig),
		fx.Supply(logger),
		converterModule(),
		fx.Options(options.Modules...),
		fx.Populate(converter),
	)
}

func converterModule() fx.Option {
	return fx.Module("converter",
		fx.Provide(
			fx.Annotate(
				yamlparser.NewParser,
				fx.As(new(convert.Parser)),
			),
		),
		fx.Provide(
			fx.Annotate(
				func() *jsonencoder.Encoder {
					return jsonencoder.NewEncoder()
				},
				fx.As(new(convert.Encoder)),
			),
		),
		fx.Provide(convert.NewConverter),
	)
}

// Start starts the Fx application. Input is read while the container is built,
// so input errors surface here, stripped of the container's wrapping.
func (app *App) Start() error {
	if app != nil && app.app != nil {
		err := app.app.Start(context.Background())
		if err != nil {
			return fmt.Errorf("failed to start app: %w", dig.RootCause(err))
		}

		return nil
	}

	return errAppNotInitialized
}

// Convert writes the converted input to w. The app must be started.
func (app *App) Convert(w io.Writer) error {
	if app == nil || app.converter == nil {
		return errAppNotInitialized
	}

	return app.converter.Run(w)
}

// Run starts the application, converts the input into w and stops the application.
func (app *App) Run(w io.Writer) error {
	err := app.Start()
	if err != nil {
		return err
	}

	runErr := app.Convert(w)

	err = app.Stop()
	if err != nil && runErr == nil {
		return err
	}

	return runErr
}

// Stop stops the Fx application gracefully.
func (app *App) Stop() error {
	if app != nil && app.app != nil {
		err := app.app.Stop(context.Background())
		if err != nil {
			return fmt.Errorf("failed to stop app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}
