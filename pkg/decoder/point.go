package decoder

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Point is a place in the source text. Line and Column are 1-based, Offset is
// 0-based. Columns count characters, offsets count bytes.
type Point struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
	Offset int `json:"offset" yaml:"offset"`
}

// String formats the point as line:column.
func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// normalize fills in the 1-based defaults of a zero point.
func (p Point) normalize() Point {
	if p.Line < 1 {
		p.Line = 1
	}
	if p.Column < 1 {
		p.Column = 1
	}
	return p
}

// Span is the half-open range of source text an event covers.
type Span struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// String formats the span as line:column-line:column.
func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// MarshalJSON encodes the span compactly as
// [startLine, startColumn, startOffset, endLine, endColumn, endOffset].
func (s Span) MarshalJSON() ([]byte, error) {
	arr := [6]int{
		s.Start.Line, s.Start.Column, s.Start.Offset,
		s.End.Line, s.End.Column, s.End.Offset,
	}
	return json.Marshal(arr)
}

// UnmarshalJSON implements custom JSON unmarshaling for Span.
func (s *Span) UnmarshalJSON(data []byte) error {
	var arr [6]int
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	s.Start = Point{Line: arr[0], Column: arr[1], Offset: arr[2]}
	s.End = Point{Line: arr[3], Column: arr[4], Offset: arr[5]}
	return nil
}
