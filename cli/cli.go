// Package cli is the yaml2json command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/0xalexb/yaml2json"
	"github.com/0xalexb/yaml2json/convert"
	"github.com/0xalexb/yaml2json/settings"

	"github.com/spf13/cobra"
)

const commandName = "yaml2json"

var errMissingCommand = errors.New("a subcommand is required: stream or file")

// Streams are the process resources a command run uses.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
	// FS is the working directory. The settings file and relative inputs are read from it.
	FS fs.FS
}

// OSStreams returns the standard streams and the current working directory.
func OSStreams() Streams {
	return Streams{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
		FS:  os.DirFS("."),
	}
}

// NewCommand creates the yaml2json command with its stream, file and version subcommands.
func NewCommand(streams Streams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   commandName,
		Short: "Convert a multi-document YAML stream into a JSON array",
		Long: `Convert a multi-document YAML stream into a JSON array.
    Each YAML document becomes one array element, in input order, with
    mapping key order preserved. Only plain data tags are accepted.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())

			return errMissingCommand
		},
	}

	cmd.SetIn(streams.In)
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.Err)
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(
		newStreamCommand(streams),
		newFileCommand(streams),
		newVersionCommand(),
	)

	return cmd
}

func newStreamCommand(streams Streams) *cobra.Command {
	return &cobra.Command{
		Use:   "stream",
		Short: "Read YAML from standard input and write JSON to standard output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := settings.Load(streams.FS)
			if err != nil {
				return err
			}

			return run(cmd.OutOrStdout(), streams, cfg, yaml2json.WithStreamInput(cmd.InOrStdin()))
		},
	}
}

func newFileCommand(streams Streams) *cobra.Command {
	return &cobra.Command{
		Use:   "file",
		Short: "Read YAML from the configured input file and write JSON to standard output",
		Long: `Read YAML from the configured input file and write JSON to standard output.
    The file is "input" under the "yaml2json" key of ` + settings.FileName + `,
    and defaults to ` + settings.DefaultInput + ` in the working directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := settings.Load(streams.FS)
			if err != nil {
				return err
			}

			input := yaml2json.WithFSInput(streams.FS, cfg.InputFSPath())
			if cfg.InputIsAbs() || !fs.ValidPath(cfg.InputFSPath()) {
				// outside the working directory tree
				input = yaml2json.WithFileInput(cfg.Input)
			}

			return run(cmd.OutOrStdout(), streams, cfg, input)
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s (compiled at %s)\n", commandName, yaml2json.Version, yaml2json.CompiledAt)
		},
	}
}

func run(out io.Writer, streams Streams, cfg *settings.Settings, input yaml2json.Option) error {
	app := yaml2json.NewApp(
		yaml2json.WithLogLevel(cfg.LogLevel),
		yaml2json.WithLogFormat(cfg.LogFormat),
		yaml2json.WithLogOutput(streams.Err),
		input,
	)

	return app.Run(out)
}

// Run executes the command tree with args and returns the process exit status.
// Failures are reported as a single line on streams.Err.
func Run(streams Streams, args []string) int {
	cmd := NewCommand(streams)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(streams.Err, "%s: %v\n", commandName, err)
	}

	return convert.ExitCode(err)
}

// Execute runs the command tree against the process streams and arguments.
func Execute() int {
	return Run(OSStreams(), os.Args[1:])
}
