package decoder

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// maxCodePoint is one past the largest Unicode code point. Parsed values
// saturate here so long digit runs cannot overflow.
const maxCodePoint = utf8.MaxRune + 1

// remap returns the character a numeric reference to NUL or a C1 control code
// stands for. Those code points were historically read as Windows-1252. The
// five bytes Windows-1252 leaves undefined are not remapped.
func remap(cp int) (rune, bool) {
	switch {
	case cp == 0:
		return utf8.RuneError, true
	case cp >= 0x80 && cp <= 0x9F:
		r := charmap.Windows1252.DecodeByte(byte(cp))
		return r, r != utf8.RuneError
	}
	return 0, false
}

// parseCodePoint parses ASCII digits in the given base. The caller has
// already checked the digits.
func parseCodePoint(digits string, base int) int {
	value := 0
	for i := 0; i < len(digits); i++ {
		value = value*base + digitValue(digits[i])
		if value >= maxCodePoint {
			return maxCodePoint
		}
	}
	return value
}

func digitValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	}
	return 0
}

// decodeCodePoint returns the text a numeric reference to code point cp
// stands for, and the warning it deserves, or zero.
func decodeCodePoint(cp int) (string, WarningCode) {
	if prohibited(cp) {
		return string(utf8.RuneError), ProhibitedNumeric
	}
	if r, ok := remap(cp); ok {
		return string(r), DisallowedNumeric
	}
	if disallowed(cp) {
		return string(rune(cp)), DisallowedNumeric
	}
	return string(rune(cp)), 0
}

// prohibited reports whether cp is a surrogate or outside Unicode.
func prohibited(cp int) bool {
	return (cp >= 0xD800 && cp <= 0xDFFF) || cp > utf8.MaxRune
}

// disallowed reports whether cp is a control code or a noncharacter.
func disallowed(cp int) bool {
	return (cp >= 0x0001 && cp <= 0x0008) ||
		cp == 0x000B ||
		(cp >= 0x000D && cp <= 0x001F) ||
		(cp >= 0x007F && cp <= 0x009F) ||
		(cp >= 0xFDD0 && cp <= 0xFDEF) ||
		cp&0xFFFF == 0xFFFF ||
		cp&0xFFFF == 0xFFFE
}
