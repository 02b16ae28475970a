package main

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/spicery/nutmeg-entities/pkg/decoder"
)

func newEventsCmd(a *app) *cobra.Command {
	var (
		flags      optionFlags
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "events [file]",
		Short: "Print the text, reference and warning events of a decode",
		Long: `Decode a file, or stdin, and print one JSON object per event per line, in
source order. Spans are [startLine, startColumn, startOffset, endLine,
endColumn, endOffset].`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd.Flags())
			if err != nil {
				return err
			}

			inputs, err := readInputs(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			var recorder decoder.Recorder
			opts = recorder.Options(opts)
			opts.OnWarning = chainWarning(opts.OnWarning, decoder.LogWarnings(a.logger, "file", inputs[0].name))
			decoder.Parse(inputs[0].text, opts)

			output, closeOutput, err := openOutput(cmd.OutOrStdout(), outputFile)
			if err != nil {
				return err
			}

			encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(output)
			for _, event := range recorder.Events() {
				if err := encoder.Encode(event); err != nil {
					closeOutput()
					return errors.Wrap(err, "JSON encoding error")
				}
			}
			return closeOutput()
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (defaults to stdout)")

	return cmd
}

func chainWarning(first, second decoder.WarningFunc) decoder.WarningFunc {
	return func(message string, point decoder.Point, code decoder.WarningCode) {
		first(message, point, code)
		second(message, point, code)
	}
}
