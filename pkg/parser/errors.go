package parser

import "fmt"

// ErrorKind labels the fatal parse failures. Every kind aborts the whole
// parse; nothing is recovered or retried.
type ErrorKind string

const (
	// ErrUnbalancedNesting: a scope body left the open-element stack
	// different from how it found it.
	ErrUnbalancedNesting ErrorKind = "unbalanced-nesting"
	// ErrIllegalBlockContext: a block construct inside a tag or attribute.
	ErrIllegalBlockContext ErrorKind = "illegal-block-context"
	// ErrCurrentContextPath: a path starting with "./".
	ErrCurrentContextPath ErrorKind = "current-context-path"
	// ErrParentContextPath: a path starting with "../".
	ErrParentContextPath ErrorKind = "parent-context-path"
	// ErrMixedSeparators: a path using both "." and "/".
	ErrMixedSeparators ErrorKind = "mixed-separators"
	// ErrMismatchedCloseTag: a close tag that does not match the open
	// element, or a close tag with nothing open.
	ErrMismatchedCloseTag ErrorKind = "mismatched-close-tag"
	// ErrUnterminatedMarkup: the input ended in the middle of a tag or a
	// markup comment.
	ErrUnterminatedMarkup ErrorKind = "unterminated-markup"
)

// ParseError is the structured failure surfaced to callers. Line is
// 1-based.
type ParseError struct {
	Kind ErrorKind
	Msg  string
	Line int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (on line %d)", e.Msg, e.Line)
}

func parseErrf(kind ErrorKind, line int, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Msg: fmt.Sprintf(format, args...), Line: line}
}
