// Package tokenizer is an evented character tokenizer for markup text.
//
// It is deliberately incremental: the merging parser feeds it one literal
// text span at a time, in between which it inspects and adjusts the
// tokenizer's lexical state and line/column counters. All structural output
// goes through the Delegate; the tokenizer itself builds no tree.
package tokenizer

import (
	"html"
	"strings"
	"unicode"
)

// Delegate receives begin/append/finish events as the tokenizer recognizes
// markup constructs. Methods are called in document order; the delegate owns
// all accumulation.
type Delegate interface {
	// Data (text between tags).
	BeginData()
	AppendToData(c rune)
	FinishData()

	// Comments, <!-- -->.
	BeginComment()
	AppendToCommentData(c rune)
	FinishComment()

	// Tags. TagOpen fires at "<" before the tag's direction is known.
	TagOpen()
	BeginStartTag()
	BeginEndTag()
	AppendToTagName(c rune)
	MarkTagAsSelfClosing()
	FinishTag()

	// Attributes.
	BeginAttribute()
	AppendToAttributeName(c rune)
	BeginAttributeValue(isQuoted bool)
	AppendToAttributeValue(c rune)
	FinishAttributeValue()
}

// Tokenizer advances a state machine over markup text fed to it in parts.
// Line is 1-based and Column is 0-based; both are plain fields because the
// merging parser rewrites them when the expression grammar elides text.
type Tokenizer struct {
	Line   int
	Column int

	delegate Delegate
	state    State

	// character-reference accumulation, active in data and attribute
	// value states
	inEntity  bool
	entityBuf strings.Builder
}

func New(delegate Delegate) *Tokenizer {
	return &Tokenizer{Line: 1, Column: 0, delegate: delegate, state: BeforeData}
}

// State returns the current lexical state.
func (t *Tokenizer) State() State {
	return t.state
}

// TransitionTo forces the lexical state. The merging parser uses it when a
// dynamic node changes what the next characters must mean.
func (t *Tokenizer) TransitionTo(s State) {
	t.state = s
}

// TokenizePart feeds one span of text through the state machine. The span
// may stop anywhere, including mid-tag; the next call resumes where this
// one left off.
func (t *Tokenizer) TokenizePart(part string) {
	for _, c := range part {
		t.step(c)
		if c == '\n' {
			t.Line++
			t.Column = 0
		} else {
			t.Column++
		}
	}
}

// FlushData closes out any buffered text run and returns to the initial
// state. Called after each literal span so text nodes never straddle a
// dynamic node.
func (t *Tokenizer) FlushData() {
	t.flushEntity()
	if t.state == Data {
		t.delegate.FinishData()
		t.state = BeforeData
	}
}

func (t *Tokenizer) step(c rune) {
	for t.dispatch(c) {
	}
}

// dispatch consumes c in the current state; a true return means the state
// changed and c must be reconsumed.
func (t *Tokenizer) dispatch(c rune) bool {
	switch t.state {
	case BeforeData:
		if c == '<' {
			t.state = TagOpen
			t.delegate.TagOpen()
			return false
		}
		t.delegate.BeginData()
		t.state = Data
		return true

	case Data:
		if t.inEntity {
			return t.entityChar(c, t.delegate.AppendToData)
		}
		switch c {
		case '<':
			t.delegate.FinishData()
			t.state = TagOpen
			t.delegate.TagOpen()
		case '&':
			t.beginEntity()
		default:
			t.delegate.AppendToData(c)
		}
		return false

	case TagOpen:
		switch {
		case c == '!':
			t.state = MarkupDeclarationOpen
		case c == '/':
			t.state = EndTagOpen
		case isAlpha(c):
			t.delegate.BeginStartTag()
			t.delegate.AppendToTagName(unicode.ToLower(c))
			t.state = TagName
		default:
			// stray "<" is data
			t.delegate.BeginData()
			t.delegate.AppendToData('<')
			t.state = Data
			return true
		}
		return false

	case MarkupDeclarationOpen:
		if c == '-' {
			t.state = CommentStart
			return false
		}
		// bogus declaration, recovered as a comment body
		t.delegate.BeginComment()
		t.state = Comment
		return true

	case CommentStart:
		t.delegate.BeginComment()
		if c == '-' {
			t.state = Comment
			return false
		}
		t.delegate.AppendToCommentData('-')
		t.state = Comment
		return true

	case Comment:
		if c == '-' {
			t.state = CommentEndDash
		} else {
			t.delegate.AppendToCommentData(c)
		}
		return false

	case CommentEndDash:
		if c == '-' {
			t.state = CommentEnd
			return false
		}
		t.delegate.AppendToCommentData('-')
		t.state = Comment
		return true

	case CommentEnd:
		switch c {
		case '>':
			t.delegate.FinishComment()
			t.state = BeforeData
		case '-':
			t.delegate.AppendToCommentData('-')
		default:
			t.delegate.AppendToCommentData('-')
			t.delegate.AppendToCommentData('-')
			t.state = Comment
			return true
		}
		return false

	case TagName:
		switch {
		case isSpace(c):
			t.state = BeforeAttributeName
		case c == '/':
			t.state = SelfClosingStartTag
		case c == '>':
			t.delegate.FinishTag()
			t.state = BeforeData
		default:
			t.delegate.AppendToTagName(unicode.ToLower(c))
		}
		return false

	case EndTagOpen:
		if isAlpha(c) {
			t.delegate.BeginEndTag()
			t.delegate.AppendToTagName(unicode.ToLower(c))
			t.state = EndTagName
			return false
		}
		// stray "</" is data
		t.delegate.BeginData()
		t.delegate.AppendToData('<')
		t.delegate.AppendToData('/')
		t.state = Data
		return true

	case EndTagName:
		switch {
		case c == '>':
			t.delegate.FinishTag()
			t.state = BeforeData
		case isSpace(c):
			// ignore
		default:
			t.delegate.AppendToTagName(unicode.ToLower(c))
		}
		return false

	case BeforeAttributeName:
		switch {
		case isSpace(c):
		case c == '/':
			t.state = SelfClosingStartTag
		case c == '>':
			t.delegate.FinishTag()
			t.state = BeforeData
		default:
			t.delegate.BeginAttribute()
			t.delegate.AppendToAttributeName(c)
			t.state = AttributeName
		}
		return false

	case AttributeName:
		switch {
		case isSpace(c):
			t.state = AfterAttributeName
		case c == '/':
			t.delegate.BeginAttributeValue(false)
			t.delegate.FinishAttributeValue()
			t.state = SelfClosingStartTag
		case c == '=':
			t.state = BeforeAttributeValue
		case c == '>':
			t.delegate.BeginAttributeValue(false)
			t.delegate.FinishAttributeValue()
			t.delegate.FinishTag()
			t.state = BeforeData
		default:
			t.delegate.AppendToAttributeName(c)
		}
		return false

	case AfterAttributeName:
		switch {
		case isSpace(c):
		case c == '/':
			t.delegate.BeginAttributeValue(false)
			t.delegate.FinishAttributeValue()
			t.state = SelfClosingStartTag
		case c == '=':
			t.state = BeforeAttributeValue
		case c == '>':
			t.delegate.BeginAttributeValue(false)
			t.delegate.FinishAttributeValue()
			t.delegate.FinishTag()
			t.state = BeforeData
		default:
			t.delegate.BeginAttributeValue(false)
			t.delegate.FinishAttributeValue()
			t.delegate.BeginAttribute()
			t.delegate.AppendToAttributeName(c)
			t.state = AttributeName
		}
		return false

	case BeforeAttributeValue:
		switch {
		case isSpace(c):
		case c == '"':
			t.delegate.BeginAttributeValue(true)
			t.state = AttributeValueDoubleQuoted
		case c == '\'':
			t.delegate.BeginAttributeValue(true)
			t.state = AttributeValueSingleQuoted
		case c == '>':
			t.delegate.BeginAttributeValue(false)
			t.delegate.FinishAttributeValue()
			t.delegate.FinishTag()
			t.state = BeforeData
		default:
			t.delegate.BeginAttributeValue(false)
			t.state = AttributeValueUnquoted
			return true
		}
		return false

	case AttributeValueDoubleQuoted:
		if t.inEntity {
			return t.entityChar(c, t.delegate.AppendToAttributeValue)
		}
		switch c {
		case '"':
			t.delegate.FinishAttributeValue()
			t.state = AfterAttributeValueQuoted
		case '&':
			t.beginEntity()
		default:
			t.delegate.AppendToAttributeValue(c)
		}
		return false

	case AttributeValueSingleQuoted:
		if t.inEntity {
			return t.entityChar(c, t.delegate.AppendToAttributeValue)
		}
		switch c {
		case '\'':
			t.delegate.FinishAttributeValue()
			t.state = AfterAttributeValueQuoted
		case '&':
			t.beginEntity()
		default:
			t.delegate.AppendToAttributeValue(c)
		}
		return false

	case AttributeValueUnquoted:
		if t.inEntity {
			return t.entityChar(c, t.delegate.AppendToAttributeValue)
		}
		switch {
		case isSpace(c):
			t.delegate.FinishAttributeValue()
			t.state = BeforeAttributeName
		case c == '&':
			t.beginEntity()
		case c == '>':
			t.delegate.FinishAttributeValue()
			t.delegate.FinishTag()
			t.state = BeforeData
		default:
			t.delegate.AppendToAttributeValue(c)
		}
		return false

	case AfterAttributeValueQuoted:
		switch {
		case isSpace(c):
			t.state = BeforeAttributeName
		case c == '/':
			t.state = SelfClosingStartTag
		case c == '>':
			t.delegate.FinishTag()
			t.state = BeforeData
		default:
			t.state = BeforeAttributeName
			return true
		}
		return false

	case SelfClosingStartTag:
		if c == '>' {
			t.delegate.MarkTagAsSelfClosing()
			t.delegate.FinishTag()
			t.state = BeforeData
			return false
		}
		t.state = BeforeAttributeName
		return true
	}

	return false
}

func (t *Tokenizer) beginEntity() {
	t.inEntity = true
	t.entityBuf.Reset()
}

// entityChar accumulates one character of a pending reference; sink
// receives the decoded run when the reference terminates. A malformed
// reference is emitted verbatim.
func (t *Tokenizer) entityChar(c rune, sink func(rune)) bool {
	if c == ';' {
		raw := "&" + t.entityBuf.String() + ";"
		decoded := html.UnescapeString(raw)
		for _, r := range decoded {
			sink(r)
		}
		t.inEntity = false
		return false
	}
	if c == '#' || isAlpha(c) || unicode.IsDigit(c) {
		t.entityBuf.WriteRune(c)
		return false
	}
	t.emitEntityRaw(sink)
	return true
}

func (t *Tokenizer) emitEntityRaw(sink func(rune)) {
	sink('&')
	for _, r := range t.entityBuf.String() {
		sink(r)
	}
	t.inEntity = false
}

func (t *Tokenizer) flushEntity() {
	if !t.inEntity {
		return
	}
	var sink func(rune)
	switch t.state {
	case Data:
		sink = t.delegate.AppendToData
	default:
		sink = t.delegate.AppendToAttributeValue
	}
	t.emitEntityRaw(sink)
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
