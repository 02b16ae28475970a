package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/spicery/nutmeg-entities/pkg/decoder"
)

func newLookupCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "lookup <name>...",
		Short: "Print the replacement text of named character references",
		Long: `Look up each name in the HTML5 entity table, plus any entities from
--config, and print "name<TAB>value". A leading '&' and trailing ';' are
ignored. Fails if any name is unknown.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			opts, err := decoder.ApplyConfig(config)
			if err != nil {
				return err
			}

			var unknown []string
			for _, arg := range args {
				name := strings.TrimSuffix(strings.TrimPrefix(arg, "&"), ";")
				value, ok := opts.Resolver.Full(name)
				if !ok {
					unknown = append(unknown, name)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, value)
			}
			if len(unknown) > 0 {
				return errors.Errorf("unknown entities: %s", strings.Join(unknown, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "YAML config file with extra entities (optional)")
	return cmd
}
