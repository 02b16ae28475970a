package decoder

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWarnings(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewLogfmtLogger(&buf)

	Parse("one &amp two\n&#;", Options{OnWarning: LogWarnings(logger, "file", "notes.txt")})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], "level=warn")
	assert.Contains(t, lines[0], "file=notes.txt")
	assert.Contains(t, lines[0], `msg="Named character references must be terminated by a semicolon"`)
	assert.Contains(t, lines[0], "code=1 line=1 column=9 offset=8")

	assert.Contains(t, lines[1], "code=4 line=2 column=4 offset=16")
}

func TestLogWarningsFiltered(t *testing.T) {
	var buf bytes.Buffer
	logger := level.NewFilter(log.NewLogfmtLogger(&buf), level.AllowError())

	Parse("&amp", Options{OnWarning: LogWarnings(logger)})
	assert.Empty(t, buf.String())
}
