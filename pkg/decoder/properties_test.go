package decoder

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var fragments = []string{
	"a", "Z", "9", " ", "\n", "\t", ";", "=", "<", "#", "x", "é", "’", "👍",
	"&", "&amp", "&amp;", "&not", "&notin", "&notit;", "&copy", "&AElig",
	"&#", "&#x", "&#65", "&#x41;", "&#128;", "&#xD800", "&#0;", "&#9999999",
	"&xyz;", "&;", "&#;",
}

// randomInput builds a reproducible input from fragments that are likely to
// interact at their boundaries.
func randomInput(rng *rand.Rand) string {
	var b strings.Builder
	n := rng.Intn(24)
	for i := 0; i < n; i++ {
		b.WriteString(fragments[rng.Intn(len(fragments))])
	}
	return b.String()
}

func TestSpansCoverInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	optionSets := []Options{
		{},
		{Attribute: true},
		{RejectNonTerminated: true},
		{Start: Point{Line: 3, Column: 2, Offset: 50}},
	}

	for i := 0; i < 500; i++ {
		input := randomInput(rng)
		for _, opts := range optionSets {
			var r Recorder
			result := Parse(input, r.Options(opts))
			base := opts.Start.normalize()

			var decoded strings.Builder
			next := base
			for _, e := range r.Spans() {
				require.Equal(t, next, e.Span.Start, "gap before %q in %q", e.Value, input)
				next = e.Span.End

				source := input[e.Span.Start.Offset-base.Offset : e.Span.End.Offset-base.Offset]
				if e.Kind == TextEvent {
					assert.Equal(t, e.Value, source)
				} else {
					assert.Equal(t, e.Source, source)
				}
				decoded.WriteString(e.Value)
			}

			assert.Equal(t, base.Offset+len(input), next.Offset, "input %q not covered", input)
			assert.Equal(t, result, decoded.String())

			for _, w := range r.Warnings() {
				assert.True(t, w.Point.Offset <= next.Offset, "warning %v past the end of %q", w, input)
			}
		}
	}
}

func TestParseIdempotentOnPlainText(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		input := strings.ReplaceAll(randomInput(rng), "&", "")
		assert.Equal(t, input, DecodeString(input))
	}
}

func TestParseConcurrent(t *testing.T) {
	inputs := make([]string, 64)
	for i := range inputs {
		inputs[i] = fmt.Sprintf("item %d: &amp; &#%d; &not%d &copy;", i, 0x100+i, i)
	}

	expected := make([]string, len(inputs))
	for i, input := range inputs {
		expected[i] = DecodeString(input)
	}

	results := make([]string, len(inputs))
	var g errgroup.Group
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			var r Recorder
			results[i] = Parse(input, r.Options(Options{}))
			if len(r.Warnings()) != 1 {
				return fmt.Errorf("item %d: expected 1 warning, got %d", i, len(r.Warnings()))
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, expected, results)
}
