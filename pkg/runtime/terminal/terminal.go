package terminal

import (
	"io"
	"os"

	"github.com/de-tools/tenant-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/tenant-atlas/pkg/runtime/terminal/export"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	output  io.Writer
	errors  io.Writer
	verbose bool
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	Errors io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Errors == nil {
		opts.Errors = os.Stderr
	}

	cli := &CLI{
		output: opts.Output,
		errors: opts.Errors,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tenant-atlas",
		Short:         "Leasing profitability calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := zerolog.WarnLevel
			if cli.verbose {
				level = zerolog.DebugLevel
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: cli.errors}).
				Level(level).
				With().
				Timestamp().
				Logger()
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
	}
	cmd.SetOut(cli.output)
	cmd.SetErr(cli.errors)
	cmd.PersistentFlags().BoolVarP(&cli.verbose, "verbose", "v", false, "Log debug output to stderr")

	reporters := map[string]commands.Reporter{
		"table": export.NewReporter(cli.output),
		"plain": NewPlainReporter(cli.output),
	}

	cmd.AddCommand(commands.NewCalcCmd(reporters))
	cmd.AddCommand(commands.NewPresetsCmd())
	cmd.AddCommand(commands.NewSeedCmd())

	return cmd
}
