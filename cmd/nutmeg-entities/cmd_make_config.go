package main

import (
	"github.com/spf13/cobra"

	"github.com/spicery/nutmeg-entities/pkg/decoder"
)

func newMakeConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "make-config",
		Short: "Print the default configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := decoder.DefaultConfigFile().Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
