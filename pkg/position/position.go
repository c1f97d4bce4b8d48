// Package position tracks source locations in template text.
//
// Lines are 1-based and columns are 0-based, matching the counters the
// markup tokenizer maintains while it walks the document.
package position

import (
	"fmt"
	"strings"
)

// Loc is a single point in the source text.
type Loc struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	// Offset is the byte offset in the source text, when known. It is -1
	// for locations that were synthesized rather than lexed.
	Offset int `json:"-"`
}

// Span is a half-open range [Start, End) in the source text.
type Span struct {
	Start Loc `json:"start"`
	End   Loc `json:"end"`
}

// NewLoc creates a Loc with an unknown byte offset.
func NewLoc(line, column int) Loc {
	return Loc{Line: line, Column: column, Offset: -1}
}

// NewSpan creates a Span from two points.
func NewSpan(start, end Loc) Span {
	return Span{Start: start, End: end}
}

// Unknown is the span used for synthesized nodes that have no source text.
func Unknown() Span {
	return Span{Start: Loc{Line: 0, Column: 0, Offset: -1}, End: Loc{Line: 0, Column: 0, Offset: -1}}
}

func (l Loc) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// Slice returns the text the span covers, or "" if either offset is unknown
// or out of range.
func (s Span) Slice(source string) string {
	if s.Start.Offset < 0 || s.End.Offset < 0 {
		return ""
	}
	if s.Start.Offset > len(source) || s.End.Offset > len(source) || s.Start.Offset > s.End.Offset {
		return ""
	}
	return source[s.Start.Offset:s.End.Offset]
}

// LocAtOffset derives the line and column of a byte offset in source.
func LocAtOffset(source string, offset int) Loc {
	if offset > len(source) {
		offset = len(source)
	}
	before := source[:offset]
	line := strings.Count(before, "\n") + 1
	lastNewline := strings.LastIndexByte(before, '\n')
	return Loc{Line: line, Column: offset - lastNewline - 1, Offset: offset}
}
