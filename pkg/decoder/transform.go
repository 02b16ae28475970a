package decoder

import (
	"bytes"
	"io"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// Transformer decodes character references in a stream. Positions reported
// to the hooks are continuous across chunks, as if the whole stream had been
// passed to Parse; a run of text may however be reported in several pieces.
//
// A reference whose alphanumeric body is longer than the transform buffer
// cannot be decided and makes the transform fail with transform.ErrShortSrc.
type Transformer struct {
	opts     Options
	point    Point
	newlines int
	pending  []byte
}

var _ transform.Transformer = (*Transformer)(nil)

// NewTransformer returns a Transformer decoding with opts.
func NewTransformer(opts Options) *Transformer {
	t := &Transformer{opts: opts}
	t.Reset()
	return t
}

// NewReader returns a reader that decodes the character references read from r.
func NewReader(r io.Reader, opts Options) io.Reader {
	return transform.NewReader(r, NewTransformer(opts))
}

// Reset implements transform.Transformer.
func (t *Transformer) Reset() {
	t.point = t.opts.Start.normalize()
	t.newlines = 0
	t.pending = t.pending[:0]
}

// Transform implements transform.Transformer.
func (t *Transformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	if len(t.pending) > 0 {
		nDst = copy(dst, t.pending)
		t.pending = t.pending[nDst:]
		if len(t.pending) > 0 {
			return nDst, 0, transform.ErrShortDst
		}
	}

	n := len(src)
	if !atEOF {
		n = decidable(src)
	}

	if n > 0 {
		out := t.decode(src[:n])
		written := copy(dst[nDst:], out)
		nDst += written
		nSrc = n
		if written < len(out) {
			t.pending = append(t.pending[:0], out[written:]...)
			return nDst, nSrc, transform.ErrShortDst
		}
	}

	if nSrc < len(src) {
		return nDst, nSrc, transform.ErrShortSrc
	}
	return nDst, nSrc, nil
}

// decode runs one chunk through a scanner that starts where the previous
// chunk ended.
func (t *Transformer) decode(chunk []byte) string {
	opts := t.opts
	opts.Start = t.point
	opts.Indent = nil
	if t.newlines < len(t.opts.Indent) {
		opts.Indent = t.opts.Indent[t.newlines:]
	}

	s := newScanner(string(chunk), &opts)
	out := s.run()
	t.point = s.now()
	t.newlines += s.newlines
	return out
}

// decidable returns how much of src can be decoded without knowing what
// follows: everything, unless the last ampersand may start a reference that
// continues past the end of src.
func decidable(src []byte) int {
	i := bytes.LastIndexByte(src, '&')
	if i < 0 || referenceEnds(src[i:]) {
		return len(src)
	}
	return i
}

// referenceEnds reports whether the reference starting at tail[0] stops
// before the end of tail, so that its terminating character is known.
func referenceEnds(tail []byte) bool {
	if len(tail) < 2 || !utf8.FullRune(tail[1:]) {
		return false
	}

	p := 1
	kind := Named
	if tail[p] == '#' {
		p++
		if p == len(tail) {
			return false
		}
		kind = Decimal
		if tail[p] == 'x' || tail[p] == 'X' {
			p++
			kind = Hexadecimal
		}
	}
	for p < len(tail) && kind.accepts(tail[p]) {
		p++
	}
	return p < len(tail)
}
