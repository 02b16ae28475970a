package decoder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spicery/nutmeg-entities/pkg/entities"
)

func TestApplyConfig(t *testing.T) {
	config, err := ParseConfig([]byte(`
additional: '"'
attribute: true
non_terminated: false
position:
  line: 3
  column: 5
  offset: 40
indent: [2, 4]
`))
	require.NoError(t, err)

	opts, err := ApplyConfig(config)
	require.NoError(t, err)

	assert.Equal(t, '"', opts.Additional)
	assert.True(t, opts.Attribute)
	assert.True(t, opts.RejectNonTerminated)
	assert.Equal(t, Point{Line: 3, Column: 5, Offset: 40}, opts.Start)
	assert.Equal(t, []int{2, 4}, opts.Indent)
	assert.Same(t, entities.Default(), opts.Resolver)
}

func TestApplyConfigZeroPosition(t *testing.T) {
	config, err := ParseConfig([]byte("position:\n  offset: 7\n"))
	require.NoError(t, err)

	opts, err := ApplyConfig(config)
	require.NoError(t, err)
	assert.Equal(t, Point{Line: 1, Column: 1, Offset: 7}, opts.Start)
}

func TestApplyConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		expected string
	}{
		{"two characters", "additional: ab", "additional must be a single character"},
		{"negative position", "position: {line: -1}", "must not be negative"},
		{"negative indent", "indent: [1, -2]", "indent for line 2 must not be negative"},
		{"invalid entity name", "entities: {nut-meg: x}", "invalid entity name"},
		{"unknown legacy name", "legacy: [nutmeg]", "unknown entity name"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config, err := ParseConfig([]byte(test.yaml))
			require.NoError(t, err)

			_, err = ApplyConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.expected)
		})
	}
}

func TestApplyConfigEntityErrorTypes(t *testing.T) {
	_, err := ApplyConfig(&ConfigFile{Entities: map[string]string{"a b": "x"}})
	var invalid *entities.InvalidNameError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "a b", invalid.Name)

	_, err = ApplyConfig(&ConfigFile{Legacy: []string{"nutmeg"}})
	var unknown *entities.UnknownNameError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nutmeg", unknown.Name)
}

func TestCustomEntities(t *testing.T) {
	config, err := ParseConfig([]byte(`
entities:
  nutmeg: "🌰"
  spicery: "Spicery"
legacy: [nutmeg]
`))
	require.NoError(t, err)

	opts, err := ApplyConfig(config)
	require.NoError(t, err)
	assert.Equal(t, entities.Default().Len()+2, opts.Resolver.Len())

	result := decode("&nutmeg; &nutmeg &spicery; &spicery &amp;", opts)
	assert.Equal(t, "🌰 🌰 Spicery &spicery &", result.Result)
	assert.Equal(t, []warningEvent{
		warning(NonTerminatedNamed, pos(1, 17, 16)),
		warning(EmptyNamed, pos(1, 29, 28)),
	}, result.Warnings)
}

func TestConfigRoundTrip(t *testing.T) {
	data, err := DefaultConfigFile().Marshal()
	require.NoError(t, err)

	config, err := ParseConfig(data)
	require.NoError(t, err)

	opts, err := ApplyConfig(config)
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "entities.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("attribute: true\n"), 0o644))

	config, err := LoadConfigFile(filename)
	require.NoError(t, err)
	assert.True(t, config.Attribute)

	_, err = LoadConfigFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("indent: [nope\n"), 0o644))
	_, err = LoadConfigFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}
