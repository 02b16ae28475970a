package main

import (
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds what every subcommand shares.
type app struct {
	logLevel string
	logger   log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: log.NewNopLogger()}

	rootCmd := &cobra.Command{
		Use:   "nutmeg-entities",
		Short: "Decode HTML character references with source positions",
		Long: `nutmeg-entities decodes character references such as &amp;, &#123; and
&#x1F44D; following the HTML5 rules, and reports where every decoded piece of
text came from.

Examples:
  nutmeg-entities decode < page.txt              # Decode stdin to stdout
  nutmeg-entities decode a.txt b.txt -o out.txt  # Decode files, concatenated
  nutmeg-entities events --attribute value.txt   # One JSON event per line
  nutmeg-entities lookup amp notin               # Look up entity names
  nutmeg-entities make-config > entities.yaml    # Default configuration`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogger(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log.level", "warn", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newDecodeCmd(a),
		newEventsCmd(a),
		newLookupCmd(),
		newMakeConfigCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func (a *app) setupLogger(cmd *cobra.Command) error {
	var option level.Option
	switch a.logLevel {
	case "debug":
		option = level.AllowDebug()
	case "info":
		option = level.AllowInfo()
	case "warn":
		option = level.AllowWarn()
	case "error":
		option = level.AllowError()
	default:
		return errors.Errorf("invalid log level %q", a.logLevel)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(cmd.ErrOrStderr()))
	a.logger = level.NewFilter(logger, option)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nutmeg-entities %s\n", version)
		},
	}
}
