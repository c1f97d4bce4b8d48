// Package ast defines the node types of the velt template language.
//
// The same node kinds serve two trees: the raw expression-grammar tree
// produced by pkg/mustache, and the unified tree produced by pkg/parser in
// which markup elements, attributes and text have been merged in. Nodes are
// never mutated after construction; normalization builds fresh values.
package ast

import "github.com/veltlang/velt/pkg/position"

// NodeType discriminates the closed set of node kinds.
type NodeType string

const (
	NodeProgram         NodeType = "Program"
	NodeContent         NodeType = "ContentStatement"
	NodeMustache        NodeType = "MustacheStatement"
	NodeBlock           NodeType = "BlockStatement"
	NodePartial         NodeType = "PartialStatement"
	NodeMustacheComment NodeType = "MustacheCommentStatement"
	NodeSubExpression   NodeType = "SubExpression"
	NodePath            NodeType = "PathExpression"
	NodeHash            NodeType = "Hash"
	NodeHashPair        NodeType = "HashPair"
	NodeString          NodeType = "StringLiteral"
	NodeNumber          NodeType = "NumberLiteral"
	NodeBoolean         NodeType = "BooleanLiteral"
	NodeNull            NodeType = "NullLiteral"
	NodeUndefined       NodeType = "UndefinedLiteral"
	NodeElement         NodeType = "ElementNode"
	NodeAttr            NodeType = "AttrNode"
	NodeConcat          NodeType = "ConcatStatement"
	NodeText            NodeType = "TextNode"
	NodeComment         NodeType = "CommentNode"
	NodeModifier        NodeType = "ElementModifierStatement"
)

// Node is implemented by every AST node.
type Node interface {
	Kind() NodeType
	Span() position.Span
}

// ParentNode is the append-a-child capability. Programs and open elements
// satisfy it; the merging parser only ever appends through this interface.
type ParentNode interface {
	Node
	AppendChild(child Node)
}

// Program is an ordered body of statements forming one nesting level: the
// document root, or one branch of a block.
type Program struct {
	Type        NodeType      `json:"type"`
	Body        []Node        `json:"body"`
	BlockParams []string      `json:"blockParams,omitempty"`
	Loc         position.Span `json:"loc"`
}

func NewProgram(blockParams []string, loc position.Span) *Program {
	return &Program{Type: NodeProgram, Body: []Node{}, BlockParams: blockParams, Loc: loc}
}

func (n *Program) Kind() NodeType          { return NodeProgram }
func (n *Program) Span() position.Span    { return n.Loc }
func (n *Program) AppendChild(child Node) { n.Body = append(n.Body, child) }

// ContentStatement is a raw literal text run from the expression grammar.
// Value is the text after whitespace control was applied; Original is the
// unstripped source text, kept so the merger can recompute line deltas.
type ContentStatement struct {
	Type     NodeType      `json:"type"`
	Value    string        `json:"value"`
	Original string        `json:"original"`
	Loc      position.Span `json:"loc"`
}

func NewContent(value, original string, loc position.Span) *ContentStatement {
	return &ContentStatement{Type: NodeContent, Value: value, Original: original, Loc: loc}
}

func (n *ContentStatement) Kind() NodeType       { return NodeContent }
func (n *ContentStatement) Span() position.Span { return n.Loc }

// MustacheStatement is a dynamic expression placeholder.
type MustacheStatement struct {
	Type    NodeType      `json:"type"`
	Path    Node          `json:"path"`
	Params  []Node        `json:"params"`
	Hash    *Hash         `json:"hash"`
	Escaped bool          `json:"escaped"`
	Loc     position.Span `json:"loc"`
}

func NewMustache(path Node, params []Node, hash *Hash, escaped bool, loc position.Span) *MustacheStatement {
	if params == nil {
		params = []Node{}
	}
	if hash == nil {
		hash = NewHash(nil, position.Unknown())
	}
	return &MustacheStatement{Type: NodeMustache, Path: path, Params: params, Hash: hash, Escaped: escaped, Loc: loc}
}

func (n *MustacheStatement) Kind() NodeType       { return NodeMustache }
func (n *MustacheStatement) Span() position.Span { return n.Loc }

// BlockStatement is a block construct with a primary branch and an optional
// alternate branch.
type BlockStatement struct {
	Type    NodeType      `json:"type"`
	Path    Node          `json:"path"`
	Params  []Node        `json:"params"`
	Hash    *Hash         `json:"hash"`
	Program *Program      `json:"program"`
	Inverse *Program      `json:"inverse,omitempty"`
	Loc     position.Span `json:"loc"`
}

func NewBlock(path Node, params []Node, hash *Hash, program, inverse *Program, loc position.Span) *BlockStatement {
	if params == nil {
		params = []Node{}
	}
	if hash == nil {
		hash = NewHash(nil, position.Unknown())
	}
	return &BlockStatement{Type: NodeBlock, Path: path, Params: params, Hash: hash, Program: program, Inverse: inverse, Loc: loc}
}

func (n *BlockStatement) Kind() NodeType       { return NodeBlock }
func (n *BlockStatement) Span() position.Span { return n.Loc }

// PartialStatement is a partial inclusion.
type PartialStatement struct {
	Type   NodeType      `json:"type"`
	Name   Node          `json:"name"`
	Params []Node        `json:"params"`
	Hash   *Hash         `json:"hash"`
	Loc    position.Span `json:"loc"`
}

func NewPartial(name Node, params []Node, hash *Hash, loc position.Span) *PartialStatement {
	if params == nil {
		params = []Node{}
	}
	if hash == nil {
		hash = NewHash(nil, position.Unknown())
	}
	return &PartialStatement{Type: NodePartial, Name: name, Params: params, Hash: hash, Loc: loc}
}

func (n *PartialStatement) Kind() NodeType       { return NodePartial }
func (n *PartialStatement) Span() position.Span { return n.Loc }

// MustacheCommentStatement is an expression-grammar comment.
type MustacheCommentStatement struct {
	Type  NodeType      `json:"type"`
	Value string        `json:"value"`
	Loc   position.Span `json:"loc"`
}

func NewMustacheComment(value string, loc position.Span) *MustacheCommentStatement {
	return &MustacheCommentStatement{Type: NodeMustacheComment, Value: value, Loc: loc}
}

func (n *MustacheCommentStatement) Kind() NodeType       { return NodeMustacheComment }
func (n *MustacheCommentStatement) Span() position.Span { return n.Loc }

// SubExpression is a call used in argument position.
type SubExpression struct {
	Type   NodeType      `json:"type"`
	Path   Node          `json:"path"`
	Params []Node        `json:"params"`
	Hash   *Hash         `json:"hash"`
	Loc    position.Span `json:"loc"`
}

func NewSubExpression(path Node, params []Node, hash *Hash, loc position.Span) *SubExpression {
	if params == nil {
		params = []Node{}
	}
	if hash == nil {
		hash = NewHash(nil, position.Unknown())
	}
	return &SubExpression{Type: NodeSubExpression, Path: path, Params: params, Hash: hash, Loc: loc}
}

func (n *SubExpression) Kind() NodeType       { return NodeSubExpression }
func (n *SubExpression) Span() position.Span { return n.Loc }

// PathExpression is a reference path. Parts never mixes separator styles
// after validation, and Depth is always 0 in this language variant.
type PathExpression struct {
	Type     NodeType      `json:"type"`
	Original string        `json:"original"`
	Parts    []string      `json:"parts"`
	This     bool          `json:"this"`
	Data     bool          `json:"data"`
	Depth    int           `json:"depth"`
	Loc      position.Span `json:"loc"`
}

func NewPath(original string, parts []string, this, data bool, loc position.Span) *PathExpression {
	if parts == nil {
		parts = []string{}
	}
	return &PathExpression{Type: NodePath, Original: original, Parts: parts, This: this, Data: data, Loc: loc}
}

func (n *PathExpression) Kind() NodeType       { return NodePath }
func (n *PathExpression) Span() position.Span { return n.Loc }

// Hash is an insertion-ordered named-argument map.
type Hash struct {
	Type  NodeType      `json:"type"`
	Pairs []*HashPair   `json:"pairs"`
	Loc   position.Span `json:"loc"`
}

func NewHash(pairs []*HashPair, loc position.Span) *Hash {
	if pairs == nil {
		pairs = []*HashPair{}
	}
	return &Hash{Type: NodeHash, Pairs: pairs, Loc: loc}
}

func (n *Hash) Kind() NodeType       { return NodeHash }
func (n *Hash) Span() position.Span { return n.Loc }

// HashPair is one named argument.
type HashPair struct {
	Type  NodeType      `json:"type"`
	Key   string        `json:"key"`
	Value Node          `json:"value"`
	Loc   position.Span `json:"loc"`
}

func NewHashPair(key string, value Node, loc position.Span) *HashPair {
	return &HashPair{Type: NodeHashPair, Key: key, Value: value, Loc: loc}
}

func (n *HashPair) Kind() NodeType       { return NodeHashPair }
func (n *HashPair) Span() position.Span { return n.Loc }
