package yaml2json_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/0xalexb/yaml2json"
	"github.com/0xalexb/yaml2json/convert"
	"github.com/0xalexb/yaml2json/fetcher/file"
	"github.com/0xalexb/yaml2json/logging"

	"github.com/psanford/memfs"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

const twoDocs = "a: 1\nb: [x, y]\n---\nname: test\n"

const twoDocsJSON = `[
    {
        "a": 1,
        "b": [
            "x",
            "y"
        ]
    },
    {
        "name": "test"
    }
]
`

func quietApp(opts ...yaml2json.Option) *yaml2json.App {
	return yaml2json.NewApp(append([]yaml2json.Option{
		yaml2json.WithLogLevel("error"),
		yaml2json.WithLogOutput(&bytes.Buffer{}),
	}, opts...)...)
}

func TestNewApp_CreatesAppWithDefaultLogLevel(t *testing.T) {
	t.Parallel()

	app := yaml2json.NewApp(yaml2json.WithLogOutput(&bytes.Buffer{}))
	require.NotNil(t, app)
}

func TestNewApp_WithModules(t *testing.T) {
	t.Parallel()

	var invoked bool

	module := fx.Module("test",
		fx.Invoke(func() {
			invoked = true
		}),
	)

	app := quietApp(yaml2json.WithStreamInput(strings.NewReader("")), yaml2json.WithModules(module))
	require.NotNil(t, app)

	err := app.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop() })
	require.True(t, invoked)
}

func TestNewApp_LoggerIsAvailableInFxContainer(t *testing.T) {
	t.Parallel()

	var capturedLogger *slog.Logger

	module := fx.Module("test",
		fx.Invoke(func(logger *slog.Logger) {
			capturedLogger = logger
		}),
	)

	app := quietApp(yaml2json.WithStreamInput(strings.NewReader("")), yaml2json.WithModules(module))

	err := app.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop() })
	require.NotNil(t, capturedLogger)
}

func TestNewApp_LoggerConfigIsSupplied(t *testing.T) {
	t.Parallel()

	var capturedConfig logging.LoggerConfig

	module := fx.Module("test",
		fx.Invoke(func(config logging.LoggerConfig) {
			capturedConfig = config
		}),
	)

	app := yaml2json.NewApp(
		yaml2json.WithLogLevel("warn"),
		yaml2json.WithLogFormat("text"),
		yaml2json.WithLogOutput(&bytes.Buffer{}),
		yaml2json.WithStreamInput(strings.NewReader("")),
		yaml2json.WithModules(module),
	)

	err := app.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop() })
	require.Equal(t, "warn", capturedConfig.Level)
	require.Equal(t, "text", capturedConfig.Format)
}

func TestNewApp_LogsGoToConfiguredOutput(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer

	app := yaml2json.NewApp(
		yaml2json.WithLogLevel("debug"),
		yaml2json.WithLogOutput(&logs),
		yaml2json.WithStreamInput(strings.NewReader(twoDocs)),
	)

	var out bytes.Buffer

	err := app.Run(&out)
	require.NoError(t, err)
	require.Equal(t, twoDocsJSON, out.String())

	found := false

	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		var entry map[string]any

		require.NoError(t, json.Unmarshal([]byte(line), &entry), "log line should be valid JSON")

		if entry["msg"] == "parsed yaml stream" {
			found = true

			require.InDelta(t, 2, entry["documents"], 0)
		}
	}

	require.True(t, found, "converter should log the document count at debug level")
}

func TestApp_RunStreamInput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := quietApp(yaml2json.WithStreamInput(strings.NewReader(twoDocs))).Run(&out)
	require.NoError(t, err)
	require.Equal(t, twoDocsJSON, out.String())
}

func TestApp_RunEmptyStream(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := quietApp(yaml2json.WithStreamInput(strings.NewReader(""))).Run(&out)
	require.NoError(t, err)
	require.Equal(t, "[]\n", out.String())
}

func TestApp_RunFileInput(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scenarios.yml")
	require.NoError(t, os.WriteFile(path, []byte(twoDocs), 0o600))

	var out bytes.Buffer

	err := quietApp(yaml2json.WithFileInput(path)).Run(&out)
	require.NoError(t, err)
	require.Equal(t, twoDocsJSON, out.String())
}

func TestApp_RunFSInput(t *testing.T) {
	t.Parallel()

	mfs := memfs.New()
	require.NoError(t, mfs.MkdirAll("fixtures", 0o755))
	require.NoError(t, mfs.WriteFile("fixtures/scenarios.yml", []byte(twoDocs), 0o644))

	var out bytes.Buffer

	err := quietApp(yaml2json.WithFSInput(mfs, "fixtures/scenarios.yml")).Run(&out)
	require.NoError(t, err)
	require.Equal(t, twoDocsJSON, out.String())
}

func TestApp_RunMissingFile(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := quietApp(yaml2json.WithFSInput(memfs.New(), "scenarios.yml")).Run(&out)
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Empty(t, out.String())
	require.Equal(t, convert.ExitFailure, convert.ExitCode(err))
}

func TestApp_StartFailureIsRootCause(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer

	app := yaml2json.NewApp(
		yaml2json.WithLogOutput(&logs),
		yaml2json.WithFSInput(memfs.New(), "scenarios.yml"),
	)

	err := app.Start()
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Contains(t, err.Error(), "scenarios.yml")
	require.NotContains(t, err.Error(), "received non-nil error")
	require.NotContains(t, err.Error(), "could not build")
	require.Empty(t, logs.String(), "container failures are not logged at the default level")
}

func TestApp_RunDirectoryInput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := quietApp(yaml2json.WithFileInput(t.TempDir())).Run(&out)
	require.ErrorIs(t, err, file.ErrPathIsDirectory)
	require.Empty(t, out.String())
}

func TestApp_RunMalformedInput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := quietApp(yaml2json.WithStreamInput(strings.NewReader("key: [unclosed\n"))).Run(&out)

	var parseErr *convert.ParseError

	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, convert.ExitParseError, convert.ExitCode(err))
	require.Empty(t, out.String())
}

func TestApp_RunWithoutInput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := quietApp().Run(&out)
	require.Error(t, err)
	require.Empty(t, out.String())
}

func TestApp_ConvertBeforeStart(t *testing.T) {
	t.Parallel()

	app := quietApp(yaml2json.WithStreamInput(strings.NewReader(twoDocs)))

	err := app.Convert(&bytes.Buffer{})
	require.Error(t, err)
}

func TestApp_Stop(t *testing.T) {
	t.Parallel()

	var stopCalled bool

	module := fx.Module("test",
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					stopCalled = true

					return nil
				},
			})
		}),
	)

	app := quietApp(yaml2json.WithStreamInput(strings.NewReader("")), yaml2json.WithModules(module))

	err := app.Start()
	require.NoError(t, err)

	err = app.Stop()
	require.NoError(t, err)
	require.True(t, stopCalled, "OnStop hook should be called")
}

func TestApp_RunStopsApp(t *testing.T) {
	t.Parallel()

	var stopCalled bool

	module := fx.Module("test",
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					stopCalled = true

					return nil
				},
			})
		}),
	)

	app := quietApp(yaml2json.WithStreamInput(strings.NewReader("key: [unclosed\n")), yaml2json.WithModules(module))

	err := app.Run(&bytes.Buffer{})
	require.Error(t, err)
	require.True(t, stopCalled, "app should be stopped even when conversion fails")
}

func TestApp_StopOnNilApp(t *testing.T) {
	t.Parallel()

	var app *yaml2json.App

	err := app.Stop()
	require.Error(t, err)
}

func TestApp_StartOnNilApp(t *testing.T) {
	t.Parallel()

	var app *yaml2json.App

	err := app.Start()
	require.Error(t, err)
}

func TestApp_RunOnNilApp(t *testing.T) {
	t.Parallel()

	var app *yaml2json.App

	require.NotPanics(t, func() {
		require.Error(t, app.Run(&bytes.Buffer{}))
	})
}
