// Package decoder decodes HTML character references in text and reports
// source positions for everything it produces.
package decoder

import (
	"strings"
	"unicode/utf8"

	"github.com/spicery/nutmeg-entities/pkg/entities"
)

// Kind is the kind of a character reference.
type Kind int

const (
	Named       Kind = iota // &amp;
	Decimal                 // &#123;
	Hexadecimal             // &#x7B;
)

func (k Kind) String() string {
	switch k {
	case Named:
		return "named"
	case Decimal:
		return "decimal"
	case Hexadecimal:
		return "hexadecimal"
	}
	return "unknown"
}

// kindOf returns the kind of the reference whose raw source is given.
func kindOf(source string) Kind {
	if len(source) < 2 || source[1] != '#' {
		return Named
	}
	if len(source) > 2 && (source[2] == 'x' || source[2] == 'X') {
		return Hexadecimal
	}
	return Decimal
}

// accepts reports whether c may appear in the body of a reference of kind k.
func (k Kind) accepts(c byte) bool {
	switch k {
	case Decimal:
		return entities.IsDecimal(rune(c))
	case Hexadecimal:
		return entities.IsHexadecimal(rune(c))
	}
	return entities.IsAlphanumeric(rune(c))
}

// Parse decodes the character references in input and returns the result.
// Text runs, references and warnings are reported, in source order, through
// the hooks in opts. Parse never fails: anything it cannot decode is kept as
// literal text.
func Parse(input string, opts Options) string {
	s := newScanner(input, &opts)
	return s.run()
}

// DecodeString decodes s with the default options and no hooks.
func DecodeString(s string) string {
	return Parse(s, Options{})
}

// scanner is the cursor state of one Parse call.
type scanner struct {
	input    string
	opts     *Options
	resolver *entities.Resolver
	base     Point

	position int // byte index into input
	line     int
	column   int
	newlines int // newlines seen, indexes opts.Indent

	textStart int   // start of the queued literal text
	previous  Point // where the queued literal text starts

	output strings.Builder
}

func newScanner(input string, opts *Options) *scanner {
	base := opts.Start.normalize()
	s := &scanner{
		input:    input,
		opts:     opts,
		resolver: opts.resolver(),
		base:     base,
		line:     base.Line,
		column:   base.Column,
	}
	s.output.Grow(len(input))
	s.previous = s.now()
	return s
}

func (s *scanner) run() string {
	for s.position < len(s.input) {
		if s.input[s.position] == '&' {
			s.ampersand()
			continue
		}
		s.advance()
	}
	s.flush()
	return s.output.String()
}

// now returns the point at the cursor.
func (s *scanner) now() Point {
	return Point{Line: s.line, Column: s.column, Offset: s.base.Offset + s.position}
}

// advance moves past one byte and updates line/column tracking. Columns only
// move on the first byte of a UTF-8 sequence.
func (s *scanner) advance() {
	c := s.input[s.position]
	s.position++
	switch {
	case c == '\n':
		s.line++
		s.newlines++
		s.column = s.opts.indentAt(s.newlines)
	case c&0xC0 != 0x80:
		s.column++
	}
}

// skip moves past n bytes that are known to be ASCII and not newlines.
func (s *scanner) skip(n int) {
	s.position += n
	s.column += n
}

// peek returns the byte at i, and false past the end of input.
func (s *scanner) peek(i int) (byte, bool) {
	if i >= len(s.input) {
		return 0, false
	}
	return s.input[i], true
}

// flush emits the queued literal text, if any.
func (s *scanner) flush() {
	if s.textStart == s.position {
		return
	}
	text := s.input[s.textStart:s.position]
	s.output.WriteString(text)
	s.opts.text(text, Span{Start: s.previous, End: s.now()})
	s.textStart = s.position
	s.previous = s.now()
}

// warn reports code at the point distance bytes past the cursor.
func (s *scanner) warn(code WarningCode, distance int) {
	if s.opts.OnWarning == nil {
		return
	}
	point := s.now()
	point.Column += distance
	point.Offset += distance
	s.opts.warning(code, point)
}

// candidate is a reference being scanned.
type candidate struct {
	kind       Kind
	start      int // index of the ampersand
	begin      int // index of the first character after "&", "&#" or "&#x"
	end        int
	terminated bool
	prefix     entities.Prefix
}

func (c *candidate) characters(input string) string {
	body := input[c.begin:c.end]
	if c.terminated {
		body = body[:len(body)-1]
	}
	return body
}

// ampersand handles the character reference, if any, at the cursor.
func (s *scanner) ampersand() {
	if s.literalAmpersand() {
		s.advance()
		return
	}

	c := s.scanReference()
	value, ok := s.resolve(c)
	if !ok {
		// Nothing to substitute. The checked characters hold neither newlines
		// nor ampersands, so they join the queued text as they are.
		s.skip(c.end - c.start)
		return
	}

	s.flush()
	start := s.now()
	s.skip(c.end - c.start)
	span := Span{Start: start, End: s.now()}
	s.output.WriteString(value)
	s.opts.reference(value, span, s.input[c.start:c.end])
	s.textStart = s.position
	s.previous = span.End
}

// literalAmpersand reports whether the ampersand at the cursor cannot start a
// reference. That is not an error: no warning is given.
func (s *scanner) literalAmpersand() bool {
	next, ok := s.peek(s.position + 1)
	if !ok {
		return true
	}
	switch next {
	case '\t', '\n', '\f', ' ', '&', '<':
		return true
	}
	if s.opts.Additional != 0 {
		r, _ := utf8.DecodeRuneInString(s.input[s.position+1:])
		return r == s.opts.Additional
	}
	return false
}

// scanReference consumes, greedily, the reference starting at the cursor.
// The cursor itself does not move.
func (s *scanner) scanReference() *candidate {
	c := &candidate{kind: Named, start: s.position}
	c.begin = c.start + 1

	if next, _ := s.peek(c.begin); next == '#' {
		c.begin++
		c.kind = Decimal
		if next, _ := s.peek(c.begin); next == 'x' || next == 'X' {
			c.begin++
			c.kind = Hexadecimal
		}
	}

	if c.kind == Named {
		c.prefix = s.resolver.Prefix()
	}

	c.end = c.begin
	for c.end < len(s.input) && c.kind.accepts(s.input[c.end]) {
		if c.kind == Named {
			c.prefix.Extend(s.input[c.end])
		}
		c.end++
	}

	if next, _ := s.peek(c.end); next == ';' {
		c.end++
		c.terminated = true
		if c.kind == Named {
			c.prefix.Resolve()
		}
	}
	return c
}

// resolve applies the decoding rules to a scanned candidate, emits its
// warnings and returns the substitution. It may shorten the candidate.
func (s *scanner) resolve(c *candidate) (string, bool) {
	characters := c.characters(s.input)

	switch {
	case !c.terminated && s.opts.RejectNonTerminated:
		return "", false

	case characters == "":
		// An empty named reference is fine, an empty numeric one is not.
		if c.kind != Named {
			s.warn(EmptyNumeric, c.end-c.start)
		}
		return "", false

	case c.kind == Named:
		return s.resolveNamed(c, characters)
	}

	return s.resolveNumeric(c, characters), true
}

func (s *scanner) resolveNamed(c *candidate, characters string) (string, bool) {
	length, value := c.prefix.Match()

	if c.terminated && length == 0 {
		s.warn(UnknownNamed, 1)
		return "", false
	}

	// Cap the reference at the legacy name it starts with. Whatever follows,
	// including a semicolon, is not part of it.
	if length != len(characters) {
		c.end = c.begin + length
		c.terminated = false
	}

	if c.terminated {
		return value, true
	}

	reason := NonTerminatedNamed
	if length == 0 {
		reason = EmptyNamed
	}

	if s.opts.Attribute {
		following, _ := s.peek(c.end)
		switch {
		case following == '=':
			s.warn(reason, c.end-c.start)
			return "", false
		case entities.IsAlphanumeric(rune(following)):
			return "", false
		}
	}

	s.warn(reason, c.end-c.start)
	return value, length > 0
}

func (s *scanner) resolveNumeric(c *candidate, characters string) string {
	distance := c.end - c.start
	if !c.terminated {
		s.warn(NonTerminatedNumeric, distance)
	}

	base := 10
	if c.kind == Hexadecimal {
		base = 16
	}
	value, code := decodeCodePoint(parseCodePoint(characters, base))
	if code != 0 {
		s.warn(code, distance)
	}
	return value
}
