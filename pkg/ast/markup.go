package ast

import "github.com/veltlang/velt/pkg/position"

// ElementNode is a markup element with its attributes, tag modifiers and
// children, produced by the merging parser.
type ElementNode struct {
	Type        NodeType                    `json:"type"`
	Tag         string                      `json:"tag"`
	Attributes  []*AttrNode                 `json:"attributes"`
	Modifiers   []*ElementModifierStatement `json:"modifiers"`
	Comments    []*MustacheCommentStatement `json:"comments"`
	Children    []Node                      `json:"children"`
	SelfClosing bool                        `json:"selfClosing"`
	Loc         position.Span               `json:"loc"`
}

func NewElement(tag string, loc position.Span) *ElementNode {
	return &ElementNode{
		Type:       NodeElement,
		Tag:        tag,
		Attributes: []*AttrNode{},
		Modifiers:  []*ElementModifierStatement{},
		Comments:   []*MustacheCommentStatement{},
		Children:   []Node{},
		Loc:        loc,
	}
}

func (n *ElementNode) Kind() NodeType          { return NodeElement }
func (n *ElementNode) Span() position.Span    { return n.Loc }
func (n *ElementNode) AppendChild(child Node) { n.Children = append(n.Children, child) }

// AttrNode is one element attribute. Value is a TextNode, a
// MustacheStatement, or a ConcatStatement of interleaved fragments.
type AttrNode struct {
	Type  NodeType      `json:"type"`
	Name  string        `json:"name"`
	Value Node          `json:"value"`
	Loc   position.Span `json:"loc"`
}

func NewAttr(name string, value Node, loc position.Span) *AttrNode {
	return &AttrNode{Type: NodeAttr, Name: name, Value: value, Loc: loc}
}

func (n *AttrNode) Kind() NodeType       { return NodeAttr }
func (n *AttrNode) Span() position.Span { return n.Loc }

// ConcatStatement is an attribute value assembled from more than one
// fragment, for example class="a {{b}} c".
type ConcatStatement struct {
	Type  NodeType      `json:"type"`
	Parts []Node        `json:"parts"`
	Loc   position.Span `json:"loc"`
}

func NewConcat(parts []Node, loc position.Span) *ConcatStatement {
	if parts == nil {
		parts = []Node{}
	}
	return &ConcatStatement{Type: NodeConcat, Parts: parts, Loc: loc}
}

func (n *ConcatStatement) Kind() NodeType       { return NodeConcat }
func (n *ConcatStatement) Span() position.Span { return n.Loc }

// TextNode is literal markup text after tokenization.
type TextNode struct {
	Type  NodeType      `json:"type"`
	Chars string        `json:"chars"`
	Loc   position.Span `json:"loc"`
}

func NewText(chars string, loc position.Span) *TextNode {
	return &TextNode{Type: NodeText, Chars: chars, Loc: loc}
}

func (n *TextNode) Kind() NodeType       { return NodeText }
func (n *TextNode) Span() position.Span { return n.Loc }

// CommentNode is a markup comment, <!-- ... -->.
type CommentNode struct {
	Type  NodeType      `json:"type"`
	Value string        `json:"value"`
	Loc   position.Span `json:"loc"`
}

func NewComment(value string, loc position.Span) *CommentNode {
	return &CommentNode{Type: NodeComment, Value: value, Loc: loc}
}

func (n *CommentNode) Kind() NodeType       { return NodeComment }
func (n *CommentNode) Span() position.Span { return n.Loc }

// ElementModifierStatement is a mustache attached at tag position, for
// example <div {{draggable}}>.
type ElementModifierStatement struct {
	Type   NodeType      `json:"type"`
	Path   Node          `json:"path"`
	Params []Node        `json:"params"`
	Hash   *Hash         `json:"hash"`
	Loc    position.Span `json:"loc"`
}

func NewElementModifier(path Node, params []Node, hash *Hash, loc position.Span) *ElementModifierStatement {
	if params == nil {
		params = []Node{}
	}
	if hash == nil {
		hash = NewHash(nil, position.Unknown())
	}
	return &ElementModifierStatement{Type: NodeModifier, Path: path, Params: params, Hash: hash, Loc: loc}
}

func (n *ElementModifierStatement) Kind() NodeType       { return NodeModifier }
func (n *ElementModifierStatement) Span() position.Span { return n.Loc }
