package main

import (
	"io"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/cobra"

	"github.com/spicery/nutmeg-entities/pkg/decoder"
)

func newDecodeCmd(a *app) *cobra.Command {
	var (
		flags         optionFlags
		outputFile    string
		fatalWarnings bool
		stream        bool
	)

	cmd := &cobra.Command{
		Use:   "decode [file...]",
		Short: "Decode character references in files or stdin",
		Long: `Decode character references in the given files, or stdin when none are
given, and write the results one after another. Files are decoded concurrently.
Warnings are logged to stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd.Flags())
			if err != nil {
				return err
			}

			output, closeOutput, err := openOutput(cmd.OutOrStdout(), outputFile)
			if err != nil {
				return err
			}

			if stream {
				if len(args) > 0 {
					closeOutput()
					return errors.New("--stream reads stdin only")
				}
				err = decodeStream(a, cmd.InOrStdin(), output, opts)
			} else {
				err = decodeFiles(a, cmd.InOrStdin(), output, args, opts, fatalWarnings)
			}

			if closeErr := closeOutput(); err == nil && closeErr != nil {
				err = errors.Wrapf(closeErr, "failed to close output file '%s'", outputFile)
			}
			return err
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (defaults to stdout)")
	cmd.Flags().BoolVar(&fatalWarnings, "fatal-warnings", false, "fail if any warning is reported")
	cmd.Flags().BoolVar(&stream, "stream", false, "decode stdin as a stream instead of reading it whole")

	return cmd
}

// decoded is the result of decoding one input.
type decoded struct {
	text     string
	warnings int
	first    *decoder.Warning
}

func decodeFiles(a *app, stdin io.Reader, output io.Writer, files []string, opts decoder.Options, fatalWarnings bool) error {
	inputs, err := readInputs(stdin, files)
	if err != nil {
		return err
	}

	// Every input gets its own Parse call and hooks, so they can run in parallel.
	results := iter.Map(inputs, func(in *input) decoded {
		var result decoded
		logWarning := decoder.LogWarnings(a.logger, "file", in.name)

		fileOpts := opts
		fileOpts.OnWarning = func(message string, point decoder.Point, code decoder.WarningCode) {
			result.warnings++
			if result.first == nil {
				result.first = &decoder.Warning{Code: code, Message: message, Point: point}
			}
			logWarning(message, point, code)
		}
		result.text = decoder.Parse(in.text, fileOpts)
		return result
	})

	for i, result := range results {
		level.Debug(a.logger).Log("msg", "decoded", "file", inputs[i].name, "warnings", result.warnings)
		if fatalWarnings && result.first != nil {
			return errors.Wrapf(result.first, "%s", inputs[i].name)
		}
		if _, err := io.WriteString(output, result.text); err != nil {
			return errors.Wrap(err, "failed to write output")
		}
	}
	return nil
}

func decodeStream(a *app, stdin io.Reader, output io.Writer, opts decoder.Options) error {
	opts.OnWarning = decoder.LogWarnings(a.logger, "file", "-")
	if _, err := io.Copy(output, decoder.NewReader(stdin, opts)); err != nil {
		return errors.Wrap(err, "failed to decode stream")
	}
	return nil
}
