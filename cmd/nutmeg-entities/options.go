package main

import (
	"io"
	"os"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/spicery/nutmeg-entities/pkg/decoder"
)

// optionFlags are the decoder options settable from the command line. Flags
// that are given override the config file.
type optionFlags struct {
	configFile    string
	additional    string
	attribute     bool
	nonTerminated bool
}

func (f *optionFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.configFile, "config", "", "YAML config file (optional)")
	flags.StringVar(&f.additional, "additional", "", "extra character that keeps a preceding '&' literal")
	flags.BoolVar(&f.attribute, "attribute", false, "decode as an attribute value")
	flags.BoolVar(&f.nonTerminated, "non-terminated", true, "decode references without a terminating ';'")
}

func (f *optionFlags) options(flags *pflag.FlagSet) (decoder.Options, error) {
	config, err := loadConfig(f.configFile)
	if err != nil {
		return decoder.Options{}, err
	}

	if flags.Changed("additional") {
		if utf8.RuneCountInString(f.additional) != 1 {
			return decoder.Options{}, errors.Errorf("--additional must be a single character, got %q", f.additional)
		}
		config.Additional = f.additional
	}
	if flags.Changed("attribute") {
		config.Attribute = f.attribute
	}
	if flags.Changed("non-terminated") {
		nonTerminated := f.nonTerminated
		config.NonTerminated = &nonTerminated
	}

	return decoder.ApplyConfig(config)
}

// loadConfig reads the config file, or returns the defaults when there is none.
func loadConfig(filename string) (*decoder.ConfigFile, error) {
	if filename == "" {
		return decoder.DefaultConfigFile(), nil
	}
	return decoder.LoadConfigFile(filename)
}

// input is a named source of text; the name "-" is stdin.
type input struct {
	name string
	text string
}

func readInputs(stdin io.Reader, files []string) ([]input, error) {
	if len(files) == 0 {
		files = []string{"-"}
	}

	inputs := make([]input, 0, len(files))
	for _, name := range files {
		var (
			data []byte
			err  error
		)
		if name == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read '%s'", name)
		}
		inputs = append(inputs, input{name: name, text: string(data)})
	}
	return inputs, nil
}

// openOutput returns stdout for an empty name, else a created file.
func openOutput(stdout io.Writer, name string) (io.Writer, func() error, error) {
	if name == "" {
		return stdout, func() error { return nil }, nil
	}
	file, err := os.Create(name)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create output file '%s'", name)
	}
	return file, file.Close, nil
}
