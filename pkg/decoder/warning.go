package decoder

import "fmt"

// WarningCode identifies why a character reference was flagged.
type WarningCode int

const (
	NonTerminatedNamed   WarningCode = 1 // Named reference without a semicolon
	NonTerminatedNumeric WarningCode = 2 // Numeric reference without a semicolon
	EmptyNamed           WarningCode = 3 // Ampersand followed by a name that matches nothing
	EmptyNumeric         WarningCode = 4 // "&#" or "&#x" with no digits
	UnknownNamed         WarningCode = 5 // Terminated name that is not in the tables
	DisallowedNumeric    WarningCode = 6 // Control code or noncharacter
	ProhibitedNumeric    WarningCode = 7 // Surrogate or beyond U+10FFFF
)

var messages = [...]string{
	NonTerminatedNamed:   "Named character references must be terminated by a semicolon",
	NonTerminatedNumeric: "Numeric character references must be terminated by a semicolon",
	EmptyNamed:           "Named character references cannot be empty",
	EmptyNumeric:         "Numeric character references cannot be empty",
	UnknownNamed:         "Named character references must be known",
	DisallowedNumeric:    "Numeric character references cannot be disallowed",
	ProhibitedNumeric:    "Numeric character references cannot be outside the permissible Unicode range",
}

// String returns the fixed message for the code.
func (c WarningCode) String() string {
	if c < NonTerminatedNamed || c > ProhibitedNumeric {
		return fmt.Sprintf("WarningCode(%d)", int(c))
	}
	return messages[c]
}

// Warning is a single reported problem. It implements error so callers that
// treat warnings as fatal can return it directly.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
	Point   Point       `json:"point"`
}

func (w *Warning) Error() string {
	return fmt.Sprintf("%d:%d: %s", w.Point.Line, w.Point.Column, w.Message)
}
