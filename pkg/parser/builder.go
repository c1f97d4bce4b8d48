package parser

import (
	"strings"

	"github.com/veltlang/velt/pkg/ast"
	"github.com/veltlang/velt/pkg/position"
	"github.com/veltlang/velt/pkg/tokenizer"
)

// voidTags are elements that never take children and close themselves.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// pendingTag accumulates one tag between TagOpen and FinishTag.
type pendingTag struct {
	name        strings.Builder
	loc         position.Loc
	closing     bool
	selfClosing bool
	attributes  []*ast.AttrNode
	modifiers   []*ast.ElementModifierStatement
	comments    []*ast.MustacheCommentStatement
}

// pendingAttr accumulates one attribute. Dynamic fragments land in parts;
// literal characters buffer in text until a fragment boundary.
type pendingAttr struct {
	name     strings.Builder
	nameLoc  position.Loc
	parts    []ast.Node
	text     strings.Builder
	textLoc  position.Loc
	isQuoted bool
}

// elementBuilder is the tokenizer delegate. It owns the open-element stack
// and builds the markup side of the unified tree. Delegate methods cannot
// return errors, so the first failure is parked in err and checked by the
// dispatch core after every tokenizer interaction.
type elementBuilder struct {
	tok     *tokenizer.Tokenizer
	parents *parentStack

	open    []*ast.ElementNode
	tag     *pendingTag
	attr    *pendingAttr
	data    strings.Builder
	dataLoc position.Loc
	comment strings.Builder
	cmtLoc  position.Loc

	err error
}

var _ tokenizer.Delegate = (*elementBuilder)(nil)

func newElementBuilder(parents *parentStack) *elementBuilder {
	return &elementBuilder{parents: parents}
}

func (b *elementBuilder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// takeErr returns and clears the parked delegate error.
func (b *elementBuilder) takeErr() error {
	err := b.err
	b.err = nil
	return err
}

func (b *elementBuilder) here() position.Loc {
	return position.NewLoc(b.tok.Line, b.tok.Column)
}

// CurrentElement is the identity the dispatch core snapshots around scope
// bodies for the balance check.
func (b *elementBuilder) CurrentElement() *ast.ElementNode {
	if len(b.open) == 0 {
		return nil
	}
	return b.open[len(b.open)-1]
}

func (b *elementBuilder) appendChild(node ast.Node) {
	if parent := b.parents.current(); parent != nil {
		parent.AppendChild(node)
	}
}

// --- data ---

func (b *elementBuilder) BeginData() {
	// a data run starting while a tag is pending means the tokenizer
	// recovered a stray "<" as literal text
	b.tag = nil
	b.data.Reset()
	b.dataLoc = b.here()
}

func (b *elementBuilder) AppendToData(c rune) {
	b.data.WriteRune(c)
}

func (b *elementBuilder) FinishData() {
	b.appendChild(ast.NewText(b.data.String(), position.NewSpan(b.dataLoc, b.here())))
	b.data.Reset()
}

// --- comments ---

func (b *elementBuilder) BeginComment() {
	// the "<" of "<!--" opened a pending tag that will never finish
	b.tag = nil
	b.comment.Reset()
	b.cmtLoc = b.here()
}

func (b *elementBuilder) AppendToCommentData(c rune) {
	b.comment.WriteRune(c)
}

// AppendRawToComment splices verbatim expression source into an open markup
// comment; blocks and mustaches inside <!-- --> are not structural.
func (b *elementBuilder) AppendRawToComment(s string) {
	b.comment.WriteString(s)
}

func (b *elementBuilder) FinishComment() {
	b.appendChild(ast.NewComment(b.comment.String(), position.NewSpan(b.cmtLoc, b.here())))
	b.comment.Reset()
}

// --- tags ---

func (b *elementBuilder) TagOpen() {
	b.tag = &pendingTag{loc: b.here()}
	b.attr = nil
}

func (b *elementBuilder) BeginStartTag() {
	b.tag.closing = false
}

func (b *elementBuilder) BeginEndTag() {
	b.tag.closing = true
}

func (b *elementBuilder) AppendToTagName(c rune) {
	b.tag.name.WriteRune(c)
}

func (b *elementBuilder) MarkTagAsSelfClosing() {
	b.tag.selfClosing = true
}

func (b *elementBuilder) FinishTag() {
	tag := b.tag
	b.tag = nil
	if tag.closing {
		b.closeElement(tag.name.String(), tag.loc)
		return
	}
	b.openElement(tag)
}

func (b *elementBuilder) openElement(tag *pendingTag) {
	name := tag.name.String()
	el := ast.NewElement(name, position.NewSpan(tag.loc, b.here()))
	el.Attributes = append(el.Attributes, tag.attributes...)
	el.Modifiers = append(el.Modifiers, tag.modifiers...)
	el.Comments = append(el.Comments, tag.comments...)
	el.SelfClosing = tag.selfClosing

	if tag.selfClosing || voidTags[name] {
		b.appendChild(el)
		return
	}
	b.open = append(b.open, el)
	b.parents.push(el)
}

func (b *elementBuilder) closeElement(name string, loc position.Loc) {
	if len(b.open) == 0 {
		b.setErr(parseErrf(ErrMismatchedCloseTag, loc.Line,
			"closing tag </%s> without an open element", name))
		return
	}
	el := b.open[len(b.open)-1]
	if el.Tag != name {
		b.setErr(parseErrf(ErrMismatchedCloseTag, loc.Line,
			"closing tag </%s> did not match last open tag <%s> (on line %d)", name, el.Tag, el.Loc.Start.Line))
		return
	}
	b.open = b.open[:len(b.open)-1]
	b.parents.pop()
	el.Loc.End = b.here()
	b.appendChild(el)
}

// AddModifier attaches a mustache at tag position as an element modifier.
func (b *elementBuilder) AddModifier(m *ast.MustacheStatement) {
	b.tag.modifiers = append(b.tag.modifiers,
		ast.NewElementModifier(m.Path, m.Params, m.Hash, m.Loc))
}

// --- attributes ---

func (b *elementBuilder) BeginAttribute() {
	b.attr = &pendingAttr{nameLoc: b.here()}
}

func (b *elementBuilder) AppendToAttributeName(c rune) {
	b.attr.name.WriteRune(c)
}

func (b *elementBuilder) BeginAttributeValue(isQuoted bool) {
	b.attr.isQuoted = isQuoted
	b.attr.textLoc = b.here()
}

func (b *elementBuilder) AppendToAttributeValue(c rune) {
	if b.attr.text.Len() == 0 {
		b.attr.textLoc = b.here()
	}
	b.attr.text.WriteRune(c)
}

// AppendDynamicAttributeValuePart adds a mustache fragment to the attribute
// value being assembled.
func (b *elementBuilder) AppendDynamicAttributeValuePart(m *ast.MustacheStatement) {
	b.flushAttrText(b.attr)
	b.attr.parts = append(b.attr.parts, m)
}

func (b *elementBuilder) flushAttrText(attr *pendingAttr) {
	if attr.text.Len() == 0 {
		return
	}
	attr.parts = append(attr.parts,
		ast.NewText(attr.text.String(), position.NewSpan(attr.textLoc, b.here())))
	attr.text.Reset()
}

func (b *elementBuilder) FinishAttributeValue() {
	attr := b.attr
	b.attr = nil
	b.flushAttrText(attr)

	span := position.NewSpan(attr.nameLoc, b.here())
	var value ast.Node
	switch {
	case len(attr.parts) == 0:
		value = ast.NewText("", position.NewSpan(b.here(), b.here()))
	case len(attr.parts) == 1:
		single := attr.parts[0]
		if m, ok := single.(*ast.MustacheStatement); ok && attr.isQuoted {
			value = ast.NewConcat([]ast.Node{m}, m.Loc)
		} else {
			value = single
		}
	default:
		value = ast.NewConcat(attr.parts, position.NewSpan(attr.parts[0].Span().Start, b.here()))
	}

	b.tag.attributes = append(b.tag.attributes, ast.NewAttr(attr.name.String(), value, span))
}
