package decoder

import "github.com/spicery/nutmeg-entities/pkg/entities"

// WarningFunc receives a warning: its message, where it applies and its code.
type WarningFunc func(message string, point Point, code WarningCode)

// ReferenceFunc receives a decoded reference: its replacement value, the span
// of the reference in the source and the raw source text.
type ReferenceFunc func(value string, span Span, source string)

// TextFunc receives a run of literal text and its span.
type TextFunc func(value string, span Span)

// Options configures a single Parse call. The zero value decodes with the
// default entity tables, starting at 1:1.
type Options struct {
	// Additional is an extra character that, directly after an ampersand,
	// means the ampersand is literal. Zero disables it.
	Additional rune

	// Attribute enables the rules for attribute values: a named reference
	// without a semicolon that is followed by "=" or an alphanumeric is not
	// decoded.
	Attribute bool

	// RejectNonTerminated leaves references without a semicolon as literal
	// text, without warnings.
	RejectNonTerminated bool

	// Start is the position of the first character of the input, for input
	// taken from a larger document. When the input's whole span is known, pass
	// its start: the end is implied by the input.
	Start Point

	// Indent holds, per line after the first, the column that line starts at.
	// Missing or zero entries mean column 1.
	Indent []int

	// Resolver supplies the entity tables. Nil means entities.Default().
	Resolver *entities.Resolver

	OnWarning   WarningFunc
	OnReference ReferenceFunc
	OnText      TextFunc
}

// DefaultOptions returns the options Parse uses when given the zero value.
func DefaultOptions() Options {
	return Options{
		Start:    Point{Line: 1, Column: 1},
		Resolver: entities.Default(),
	}
}

func (o *Options) resolver() *entities.Resolver {
	if o.Resolver == nil {
		return entities.Default()
	}
	return o.Resolver
}

// indentAt returns the starting column of the line n lines after the first.
func (o *Options) indentAt(n int) int {
	if n >= 1 && n <= len(o.Indent) && o.Indent[n-1] > 0 {
		return o.Indent[n-1]
	}
	return 1
}

func (o *Options) warning(code WarningCode, point Point) {
	if o.OnWarning != nil {
		o.OnWarning(code.String(), point, code)
	}
}

func (o *Options) reference(value string, span Span, source string) {
	if o.OnReference != nil {
		o.OnReference(value, span, source)
	}
}

func (o *Options) text(value string, span Span) {
	if o.OnText != nil {
		o.OnText(value, span)
	}
}
