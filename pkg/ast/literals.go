package ast

import "github.com/veltlang/velt/pkg/position"

// StringLiteral is a quoted string argument.
type StringLiteral struct {
	Type     NodeType      `json:"type"`
	Value    string        `json:"value"`
	Original string        `json:"original"`
	Loc      position.Span `json:"loc"`
}

func NewString(value, original string, loc position.Span) *StringLiteral {
	return &StringLiteral{Type: NodeString, Value: value, Original: original, Loc: loc}
}

func (n *StringLiteral) Kind() NodeType       { return NodeString }
func (n *StringLiteral) Span() position.Span { return n.Loc }

// NumberLiteral is a numeric argument.
type NumberLiteral struct {
	Type     NodeType      `json:"type"`
	Value    float64       `json:"value"`
	Original string        `json:"original"`
	Loc      position.Span `json:"loc"`
}

func NewNumber(value float64, original string, loc position.Span) *NumberLiteral {
	return &NumberLiteral{Type: NodeNumber, Value: value, Original: original, Loc: loc}
}

func (n *NumberLiteral) Kind() NodeType       { return NodeNumber }
func (n *NumberLiteral) Span() position.Span { return n.Loc }

// BooleanLiteral is a true/false argument.
type BooleanLiteral struct {
	Type     NodeType      `json:"type"`
	Value    bool          `json:"value"`
	Original string        `json:"original"`
	Loc      position.Span `json:"loc"`
}

func NewBoolean(value bool, original string, loc position.Span) *BooleanLiteral {
	return &BooleanLiteral{Type: NodeBoolean, Value: value, Original: original, Loc: loc}
}

func (n *BooleanLiteral) Kind() NodeType       { return NodeBoolean }
func (n *BooleanLiteral) Span() position.Span { return n.Loc }

// NullLiteral is the null keyword.
type NullLiteral struct {
	Type NodeType      `json:"type"`
	Loc  position.Span `json:"loc"`
}

func NewNull(loc position.Span) *NullLiteral {
	return &NullLiteral{Type: NodeNull, Loc: loc}
}

func (n *NullLiteral) Kind() NodeType       { return NodeNull }
func (n *NullLiteral) Span() position.Span { return n.Loc }

// UndefinedLiteral is the undefined keyword.
type UndefinedLiteral struct {
	Type NodeType      `json:"type"`
	Loc  position.Span `json:"loc"`
}

func NewUndefined(loc position.Span) *UndefinedLiteral {
	return &UndefinedLiteral{Type: NodeUndefined, Loc: loc}
}

func (n *UndefinedLiteral) Kind() NodeType       { return NodeUndefined }
func (n *UndefinedLiteral) Span() position.Span { return n.Loc }

// IsLiteral reports whether the node is one of the literal kinds.
func IsLiteral(n Node) bool {
	switch n.Kind() {
	case NodeString, NodeNumber, NodeBoolean, NodeNull, NodeUndefined:
		return true
	}
	return false
}
