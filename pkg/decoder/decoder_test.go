package decoder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type textEvent struct {
	Value string
	Span  Span
}

type referenceEvent struct {
	Value  string
	Span   Span
	Source string
}

type warningEvent struct {
	Message string
	Point   Point
	Code    WarningCode
}

type outcome struct {
	Result     string
	References []referenceEvent
	Texts      []textEvent
	Warnings   []warningEvent
}

// decode runs Parse with hooks that collect every event.
func decode(input string, opts Options) outcome {
	var out outcome
	opts.OnText = func(value string, span Span) {
		out.Texts = append(out.Texts, textEvent{value, span})
	}
	opts.OnReference = func(value string, span Span, source string) {
		out.References = append(out.References, referenceEvent{value, span, source})
	}
	opts.OnWarning = func(message string, point Point, code WarningCode) {
		out.Warnings = append(out.Warnings, warningEvent{message, point, code})
	}
	out.Result = Parse(input, opts)
	return out
}

func pos(line, column, offset int) Point {
	return Point{Line: line, Column: column, Offset: offset}
}

func loc(l1, c1, o1, l2, c2, o2 int) Span {
	return Span{Start: pos(l1, c1, o1), End: pos(l2, c2, o2)}
}

func warning(code WarningCode, point Point) warningEvent {
	return warningEvent{Message: code.String(), Point: point, Code: code}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		opts     Options
		expected outcome
	}{
		{
			name:  "named reference",
			input: "foo &amp; bar",
			expected: outcome{
				Result:     "foo & bar",
				References: []referenceEvent{{"&", loc(1, 5, 4, 1, 10, 9), "&amp;"}},
				Texts: []textEvent{
					{"foo ", loc(1, 1, 0, 1, 5, 4)},
					{" bar", loc(1, 10, 9, 1, 14, 13)},
				},
			},
		},
		{
			name:  "decimal reference",
			input: "foo &#123; bar",
			expected: outcome{
				Result:     "foo { bar",
				References: []referenceEvent{{"{", loc(1, 5, 4, 1, 11, 10), "&#123;"}},
				Texts: []textEvent{
					{"foo ", loc(1, 1, 0, 1, 5, 4)},
					{" bar", loc(1, 11, 10, 1, 15, 14)},
				},
			},
		},
		{
			name:  "hexadecimal reference",
			input: "foo &#x123; bar",
			expected: outcome{
				Result:     "foo ģ bar",
				References: []referenceEvent{{"ģ", loc(1, 5, 4, 1, 12, 11), "&#x123;"}},
				Texts: []textEvent{
					{"foo ", loc(1, 1, 0, 1, 5, 4)},
					{" bar", loc(1, 12, 11, 1, 16, 15)},
				},
			},
		},
		{
			name:  "initial reference",
			input: "&amp; bar",
			expected: outcome{
				Result:     "& bar",
				References: []referenceEvent{{"&", loc(1, 1, 0, 1, 6, 5), "&amp;"}},
				Texts:      []textEvent{{" bar", loc(1, 6, 5, 1, 10, 9)}},
			},
		},
		{
			name:  "final reference",
			input: "foo &amp;",
			expected: outcome{
				Result:     "foo &",
				References: []referenceEvent{{"&", loc(1, 5, 4, 1, 10, 9), "&amp;"}},
				Texts:      []textEvent{{"foo ", loc(1, 1, 0, 1, 5, 4)}},
			},
		},
		{
			name:  "adjacent references",
			input: "&amp;&#123;&#x123;",
			expected: outcome{
				Result: "&{ģ",
				References: []referenceEvent{
					{"&", loc(1, 1, 0, 1, 6, 5), "&amp;"},
					{"{", loc(1, 6, 5, 1, 12, 11), "&#123;"},
					{"ģ", loc(1, 12, 11, 1, 19, 18), "&#x123;"},
				},
			},
		},
		{
			name:  "named without semicolon",
			input: "foo &amp bar",
			expected: outcome{
				Result:     "foo & bar",
				References: []referenceEvent{{"&", loc(1, 5, 4, 1, 9, 8), "&amp"}},
				Texts: []textEvent{
					{"foo ", loc(1, 1, 0, 1, 5, 4)},
					{" bar", loc(1, 9, 8, 1, 13, 12)},
				},
				Warnings: []warningEvent{warning(NonTerminatedNamed, pos(1, 9, 8))},
			},
		},
		{
			name:  "named without semicolon rejected",
			input: "foo &amp bar",
			opts:  Options{RejectNonTerminated: true},
			expected: outcome{
				Result: "foo &amp bar",
				Texts:  []textEvent{{"foo &amp bar", loc(1, 1, 0, 1, 13, 12)}},
			},
		},
		{
			name:  "numeric without semicolon",
			input: "foo &#123 bar",
			expected: outcome{
				Result:     "foo { bar",
				References: []referenceEvent{{"{", loc(1, 5, 4, 1, 10, 9), "&#123"}},
				Texts: []textEvent{
					{"foo ", loc(1, 1, 0, 1, 5, 4)},
					{" bar", loc(1, 10, 9, 1, 14, 13)},
				},
				Warnings: []warningEvent{warning(NonTerminatedNumeric, pos(1, 10, 9))},
			},
		},
		{
			name:  "numeric without semicolon rejected",
			input: "foo &#123 bar",
			opts:  Options{RejectNonTerminated: true},
			expected: outcome{
				Result: "foo &#123 bar",
				Texts:  []textEvent{{"foo &#123 bar", loc(1, 1, 0, 1, 14, 13)}},
			},
		},
		{
			name:  "ampersand followed by tab",
			input: "Foo &\tbar",
			expected: outcome{
				Result: "Foo &\tbar",
				Texts:  []textEvent{{"Foo &\tbar", loc(1, 1, 0, 1, 10, 9)}},
			},
		},
		{
			name:  "ampersand followed by newline",
			input: "Foo &\nbar",
			expected: outcome{
				Result: "Foo &\nbar",
				Texts:  []textEvent{{"Foo &\nbar", loc(1, 1, 0, 2, 4, 9)}},
			},
		},
		{
			name:  "ampersand followed by form feed",
			input: "Foo &\fbar",
			expected: outcome{
				Result: "Foo &\fbar",
				Texts:  []textEvent{{"Foo &\fbar", loc(1, 1, 0, 1, 10, 9)}},
			},
		},
		{
			name:  "ampersand followed by space",
			input: "Foo & bar",
			expected: outcome{
				Result: "Foo & bar",
				Texts:  []textEvent{{"Foo & bar", loc(1, 1, 0, 1, 10, 9)}},
			},
		},
		{
			name:  "ampersand followed by less-than",
			input: "Foo &<bar",
			expected: outcome{
				Result: "Foo &<bar",
				Texts:  []textEvent{{"Foo &<bar", loc(1, 1, 0, 1, 10, 9)}},
			},
		},
		{
			// The warning is for the second ampersand, followed by a name
			// that matches nothing.
			name:  "ampersand followed by ampersand",
			input: "Foo &&bar",
			expected: outcome{
				Result:   "Foo &&bar",
				Texts:    []textEvent{{"Foo &&bar", loc(1, 1, 0, 1, 10, 9)}},
				Warnings: []warningEvent{warning(EmptyNamed, pos(1, 7, 6))},
			},
		},
		{
			name:  "ampersand at end of input",
			input: "Foo &",
			expected: outcome{
				Result: "Foo &",
				Texts:  []textEvent{{"Foo &", loc(1, 1, 0, 1, 6, 5)}},
			},
		},
		{
			name:  "ampersand followed by additional character",
			input: `Foo &"`,
			opts:  Options{Additional: '"'},
			expected: outcome{
				Result: `Foo &"`,
				Texts:  []textEvent{{`Foo &"`, loc(1, 1, 0, 1, 7, 6)}},
			},
		},
		{
			name:  "additional character that is not ASCII",
			input: "Foo &«amp",
			opts:  Options{Additional: '«'},
			expected: outcome{
				Result: "Foo &«amp",
				Texts:  []textEvent{{"Foo &«amp", loc(1, 1, 0, 1, 10, 10)}},
			},
		},
		{
			name:  "attribute followed by alphanumeric",
			input: "foo&ampbar",
			opts:  Options{Attribute: true},
			expected: outcome{
				Result: "foo&ampbar",
				Texts:  []textEvent{{"foo&ampbar", loc(1, 1, 0, 1, 11, 10)}},
			},
		},
		{
			name:  "attribute terminated",
			input: "foo&amp;bar",
			opts:  Options{Attribute: true},
			expected: outcome{
				Result:     "foo&bar",
				References: []referenceEvent{{"&", loc(1, 4, 3, 1, 9, 8), "&amp;"}},
				Texts: []textEvent{
					{"foo", loc(1, 1, 0, 1, 4, 3)},
					{"bar", loc(1, 9, 8, 1, 12, 11)},
				},
			},
		},
		{
			name:  "attribute terminated at end",
			input: "foo&amp;",
			opts:  Options{Attribute: true},
			expected: outcome{
				Result:     "foo&",
				References: []referenceEvent{{"&", loc(1, 4, 3, 1, 9, 8), "&amp;"}},
				Texts:      []textEvent{{"foo", loc(1, 1, 0, 1, 4, 3)}},
			},
		},
		{
			name:  "attribute followed by equals",
			input: "foo&amp=",
			opts:  Options{Attribute: true},
			expected: outcome{
				Result:   "foo&amp=",
				Texts:    []textEvent{{"foo&amp=", loc(1, 1, 0, 1, 9, 8)}},
				Warnings: []warningEvent{warning(NonTerminatedNamed, pos(1, 8, 7))},
			},
		},
		{
			name:  "attribute not terminated at end",
			input: "foo&amp",
			opts:  Options{Attribute: true},
			expected: outcome{
				Result:     "foo&",
				References: []referenceEvent{{"&", loc(1, 4, 3, 1, 8, 7), "&amp"}},
				Texts:      []textEvent{{"foo", loc(1, 1, 0, 1, 4, 3)}},
				Warnings:   []warningEvent{warning(NonTerminatedNamed, pos(1, 8, 7))},
			},
		},
		{
			name:  "attribute legacy prefix of longer name",
			input: "foo&amplol",
			opts:  Options{Attribute: true},
			expected: outcome{
				Result: "foo&amplol",
				Texts:  []textEvent{{"foo&amplol", loc(1, 1, 0, 1, 11, 10)}},
			},
		},
		{
			name:  "numeric empty",
			input: "Foo &#",
			expected: outcome{
				Result:   "Foo &#",
				Texts:    []textEvent{{"Foo &#", loc(1, 1, 0, 1, 7, 6)}},
				Warnings: []warningEvent{warning(EmptyNumeric, pos(1, 7, 6))},
			},
		},
		{
			name:  "hexadecimal empty and terminated",
			input: "Foo &#x; bar",
			expected: outcome{
				Result:   "Foo &#x; bar",
				Texts:    []textEvent{{"Foo &#x; bar", loc(1, 1, 0, 1, 13, 12)}},
				Warnings: []warningEvent{warning(EmptyNumeric, pos(1, 9, 8))},
			},
		},
		{
			name:  "named empty",
			input: "Foo &=",
			expected: outcome{
				Result: "Foo &=",
				Texts:  []textEvent{{"Foo &=", loc(1, 1, 0, 1, 7, 6)}},
			},
		},
		{
			name:  "unknown and terminated",
			input: "Foo &bar; baz",
			expected: outcome{
				Result:   "Foo &bar; baz",
				Texts:    []textEvent{{"Foo &bar; baz", loc(1, 1, 0, 1, 14, 13)}},
				Warnings: []warningEvent{warning(UnknownNamed, pos(1, 6, 5))},
			},
		},
		{
			name:  "prohibited",
			input: "Foo &#xD800; baz",
			expected: outcome{
				Result:     "Foo \uFFFD baz",
				References: []referenceEvent{{"\uFFFD", loc(1, 5, 4, 1, 13, 12), "&#xD800;"}},
				Texts: []textEvent{
					{"Foo ", loc(1, 1, 0, 1, 5, 4)},
					{" baz", loc(1, 13, 12, 1, 17, 16)},
				},
				Warnings: []warningEvent{warning(ProhibitedNumeric, pos(1, 13, 12))},
			},
		},
		{
			name:  "disallowed and replaced",
			input: "Foo &#128; baz",
			expected: outcome{
				Result:     "Foo € baz",
				References: []referenceEvent{{"€", loc(1, 5, 4, 1, 11, 10), "&#128;"}},
				Texts: []textEvent{
					{"Foo ", loc(1, 1, 0, 1, 5, 4)},
					{" baz", loc(1, 11, 10, 1, 15, 14)},
				},
				Warnings: []warningEvent{warning(DisallowedNumeric, pos(1, 11, 10))},
			},
		},
		{
			name:  "undefined windows-1252 byte kept",
			input: "Foo &#129; baz",
			expected: outcome{
				Result:     "Foo \u0081 baz",
				References: []referenceEvent{{"\u0081", loc(1, 5, 4, 1, 11, 10), "&#129;"}},
				Texts: []textEvent{
					{"Foo ", loc(1, 1, 0, 1, 5, 4)},
					{" baz", loc(1, 11, 10, 1, 15, 14)},
				},
				Warnings: []warningEvent{warning(DisallowedNumeric, pos(1, 11, 10))},
			},
		},
		{
			name:  "disallowed and kept",
			input: "Foo &#xfdee; baz",
			expected: outcome{
				Result:     "Foo \uFDEE baz",
				References: []referenceEvent{{"\uFDEE", loc(1, 5, 4, 1, 13, 12), "&#xfdee;"}},
				Texts: []textEvent{
					{"Foo ", loc(1, 1, 0, 1, 5, 4)},
					{" baz", loc(1, 13, 12, 1, 17, 16)},
				},
				Warnings: []warningEvent{warning(DisallowedNumeric, pos(1, 13, 12))},
			},
		},
		{
			name:  "astral code point",
			input: "Foo &#x1F44D; baz",
			expected: outcome{
				Result:     "Foo 👍 baz",
				References: []referenceEvent{{"👍", loc(1, 5, 4, 1, 14, 13), "&#x1F44D;"}},
				Texts: []textEvent{
					{"Foo ", loc(1, 1, 0, 1, 5, 4)},
					{" baz", loc(1, 14, 13, 1, 18, 17)},
				},
			},
		},
		{
			name:  "numeric not terminated and disallowed",
			input: "a&#128 b",
			expected: outcome{
				Result:     "a€ b",
				References: []referenceEvent{{"€", loc(1, 2, 1, 1, 7, 6), "&#128"}},
				Texts: []textEvent{
					{"a", loc(1, 1, 0, 1, 2, 1)},
					{" b", loc(1, 7, 6, 1, 9, 8)},
				},
				Warnings: []warningEvent{
					warning(NonTerminatedNumeric, pos(1, 7, 6)),
					warning(DisallowedNumeric, pos(1, 7, 6)),
				},
			},
		},
		{
			name:  "start position",
			input: "foo&amp;bar\n&not;baz",
			opts:  Options{Start: pos(3, 5, 12)},
			expected: outcome{
				Result: "foo&bar\n¬baz",
				References: []referenceEvent{
					{"&", loc(3, 8, 15, 3, 13, 20), "&amp;"},
					{"¬", loc(4, 1, 24, 4, 6, 29), "&not;"},
				},
				Texts: []textEvent{
					{"foo", loc(3, 5, 12, 3, 8, 15)},
					{"bar\n", loc(3, 13, 20, 4, 1, 24)},
					{"baz", loc(4, 6, 29, 4, 9, 32)},
				},
			},
		},
		{
			name:  "indentation",
			input: "foo&amp;bar\n&not;baz",
			opts:  Options{Start: pos(3, 5, 12), Indent: []int{5}},
			expected: outcome{
				Result: "foo&bar\n¬baz",
				References: []referenceEvent{
					{"&", loc(3, 8, 15, 3, 13, 20), "&amp;"},
					{"¬", loc(4, 5, 24, 4, 10, 29), "&not;"},
				},
				Texts: []textEvent{
					{"foo", loc(3, 5, 12, 3, 8, 15)},
					{"bar\n", loc(3, 13, 20, 4, 5, 24)},
					{"baz", loc(4, 10, 29, 4, 13, 32)},
				},
			},
		},
		{
			name:  "legacy prefix capped",
			input: "I’m &notit; though",
			expected: outcome{
				Result:     "I’m ¬it; though",
				References: []referenceEvent{{"¬", loc(1, 5, 6, 1, 9, 10), "&not"}},
				Texts: []textEvent{
					{"I’m ", loc(1, 1, 0, 1, 5, 6)},
					{"it; though", loc(1, 9, 10, 1, 19, 20)},
				},
				Warnings: []warningEvent{warning(NonTerminatedNamed, pos(1, 9, 10))},
			},
		},
		{
			name:  "full name beats legacy prefix",
			input: "I’m &notin; though",
			expected: outcome{
				Result:     "I’m ∉ though",
				References: []referenceEvent{{"∉", loc(1, 5, 6, 1, 12, 13), "&notin;"}},
				Texts: []textEvent{
					{"I’m ", loc(1, 1, 0, 1, 5, 6)},
					{" though", loc(1, 12, 13, 1, 19, 20)},
				},
			},
		},
		{
			name:  "legacy uppercase name",
			input: "I’m &AMPed though",
			expected: outcome{
				Result:     "I’m &ed though",
				References: []referenceEvent{{"&", loc(1, 5, 6, 1, 9, 10), "&AMP"}},
				Texts: []textEvent{
					{"I’m ", loc(1, 1, 0, 1, 5, 6)},
					{"ed though", loc(1, 9, 10, 1, 18, 19)},
				},
				Warnings: []warningEvent{warning(NonTerminatedNamed, pos(1, 9, 10))},
			},
		},
		{
			name:  "name that is not legacy",
			input: "I’m &circled though",
			expected: outcome{
				Result:   "I’m &circled though",
				Texts:    []textEvent{{"I’m &circled though", loc(1, 1, 0, 1, 20, 21)}},
				Warnings: []warningEvent{warning(EmptyNamed, pos(1, 6, 7))},
			},
		},
		{
			// The semicolon after the full name does not count once the
			// reference has been capped at "not".
			name:  "capped reference ignores rejection of non-terminated",
			input: "&notit;",
			opts:  Options{RejectNonTerminated: true},
			expected: outcome{
				Result:     "¬it;",
				References: []referenceEvent{{"¬", loc(1, 1, 0, 1, 5, 4), "&not"}},
				Texts:      []textEvent{{"it;", loc(1, 5, 4, 1, 8, 7)}},
				Warnings:   []warningEvent{warning(NonTerminatedNamed, pos(1, 5, 4))},
			},
		},
		{
			name:  "two code point entity",
			input: "&NotEqualTilde;",
			expected: outcome{
				Result:     "\u2242\u0338",
				References: []referenceEvent{{"\u2242\u0338", loc(1, 1, 0, 1, 16, 15), "&NotEqualTilde;"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decode(tt.input, tt.opts)
			if diff := cmp.Diff(tt.expected, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseWithoutHooks(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"I’m &notit; though", "I’m ¬it; though"},
		{"I’m &notin; though", "I’m ∉ though"},
		{"&lt;p&gt;", "<p>"},
		{"&#0;", "\uFFFD"},
		{"&#x110000;", "\uFFFD"},
		{"&#99999999999999999999999;", "\uFFFD"},
		{"&#1;", "\x01"},
		{"&#x10FFFF;", "\U0010FFFF"},
		{"&#141;&#x8f;&#144;&#X9D;", "\u008D\u008F\u0090\u009D"},
		{"&#65;&#x42;&#X43;", "ABC"},
		{"&copy 2024", "© 2024"},
		{"a &unknown b", "a &unknown b"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DecodeString(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestPlainTextIsOneEvent(t *testing.T) {
	inputs := []string{
		"hello",
		"line one\nline two\n",
		"unicode: héllo wörld 👍",
		"ampersands that are text: & &\t&<&",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got := decode(input, Options{})
			if got.Result != input {
				t.Errorf("Expected input back unchanged, got %q", got.Result)
			}
			if len(got.Texts) != 1 || len(got.References) != 0 || len(got.Warnings) != 0 {
				t.Fatalf("Expected exactly one text event, got %+v", got)
			}
			if got.Texts[0].Value != input {
				t.Errorf("Expected text event %q, got %q", input, got.Texts[0].Value)
			}
			if got.Texts[0].Span.Start != pos(1, 1, 0) || got.Texts[0].Span.End.Offset != len(input) {
				t.Errorf("Expected the text event to span the whole input, got %v", got.Texts[0].Span)
			}
		})
	}
}

func TestIndentMissingEntries(t *testing.T) {
	got := decode("a\nb\n&amp;", Options{Indent: []int{3}})

	expected := []textEvent{{"a\nb\n", loc(1, 1, 0, 3, 1, 4)}}
	if diff := cmp.Diff(expected, got.Texts); diff != "" {
		t.Errorf("text mismatch (-want +got):\n%s", diff)
	}
	if got.References[0].Span != loc(3, 1, 4, 3, 6, 9) {
		t.Errorf("Expected reference at 3:1, got %v", got.References[0].Span)
	}
}

func TestKindString(t *testing.T) {
	for kind, expected := range map[Kind]string{
		Named:       "named",
		Decimal:     "decimal",
		Hexadecimal: "hexadecimal",
		Kind(9):     "unknown",
	} {
		if kind.String() != expected {
			t.Errorf("Expected %q, got %q", expected, kind.String())
		}
	}
}

func TestParseAtKnownSpan(t *testing.T) {
	span := loc(2, 4, 10, 2, 9, 15)
	got := decode("&amp;", Options{Start: span.Start})

	if len(got.References) != 1 || got.References[0].Span != span {
		t.Errorf("Expected one reference at %v, got %+v", span, got.References)
	}
}
