package decoder

import (
	"os"
	"unicode/utf8"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/spicery/nutmeg-entities/pkg/entities"
)

// ConfigFile is the YAML form of Options.
type ConfigFile struct {
	Additional    string            `yaml:"additional,omitempty"`
	Attribute     bool              `yaml:"attribute"`
	NonTerminated *bool             `yaml:"non_terminated,omitempty"`
	Position      *Point            `yaml:"position,omitempty"`
	Indent        []int             `yaml:"indent,omitempty"`
	Entities      map[string]string `yaml:"entities,omitempty"` // Extra named entities
	Legacy        []string          `yaml:"legacy,omitempty"`   // Extra names valid without a semicolon
}

// DefaultConfigFile returns the configuration matching DefaultOptions.
func DefaultConfigFile() *ConfigFile {
	nonTerminated := true
	return &ConfigFile{
		NonTerminated: &nonTerminated,
		Position:      &Point{Line: 1, Column: 1},
	}
}

// LoadConfigFile loads and parses a YAML config file.
func LoadConfigFile(filename string) (*ConfigFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file '%s'", filename)
	}

	config, err := ParseConfig(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config file '%s'", filename)
	}
	return config, nil
}

// ParseConfig parses a YAML config document.
func ParseConfig(data []byte) (*ConfigFile, error) {
	var config ConfigFile
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}
	return &config, nil
}

// Marshal renders the config as YAML.
func (c *ConfigFile) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config to YAML")
	}
	return data, nil
}

// ApplyConfig builds Options from a config file. Hooks are left unset.
func ApplyConfig(config *ConfigFile) (Options, error) {
	opts := DefaultOptions()

	if config.Additional != "" {
		r, size := utf8.DecodeRuneInString(config.Additional)
		if r == utf8.RuneError || size != len(config.Additional) {
			return Options{}, errors.Errorf("additional must be a single character, got %q", config.Additional)
		}
		opts.Additional = r
	}

	opts.Attribute = config.Attribute
	if config.NonTerminated != nil {
		opts.RejectNonTerminated = !*config.NonTerminated
	}

	if config.Position != nil {
		if config.Position.Line < 0 || config.Position.Column < 0 || config.Position.Offset < 0 {
			return Options{}, errors.Errorf("position %d:%d (offset %d) must not be negative",
				config.Position.Line, config.Position.Column, config.Position.Offset)
		}
		opts.Start = config.Position.normalize()
	}

	for i, column := range config.Indent {
		if column < 0 {
			return Options{}, errors.Errorf("indent for line %d must not be negative, got %d", i+1, column)
		}
	}
	opts.Indent = config.Indent

	if len(config.Entities) > 0 || len(config.Legacy) > 0 {
		resolver, err := entities.Default().Extend(config.Entities, config.Legacy)
		if err != nil {
			return Options{}, errors.Wrap(err, "failed to apply entities")
		}
		opts.Resolver = resolver
	}

	return opts, nil
}
