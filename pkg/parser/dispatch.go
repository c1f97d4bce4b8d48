package parser

import (
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/veltlang/velt/pkg/ast"
	"github.com/veltlang/velt/pkg/tokenizer"
)

// merger walks the raw expression tree in document order, re-driving the
// markup tokenizer on literal text and attaching dynamic nodes at the
// position the tokenizer's lexical state implies. All state is scoped to
// one parse invocation.
type merger struct {
	source  string
	tok     *tokenizer.Tokenizer
	builder *elementBuilder
	parents *parentStack
	logger  *zerolog.Logger
}

func newMerger(source string, logger *zerolog.Logger) *merger {
	parents := &parentStack{}
	builder := newElementBuilder(parents)
	tok := tokenizer.New(builder)
	builder.tok = tok
	return &merger{source: source, tok: tok, builder: builder, parents: parents, logger: logger}
}

func (m *merger) appendChild(node ast.Node) {
	if parent := m.parents.current(); parent != nil {
		parent.AppendChild(node)
	}
}

// sourceFor recovers the verbatim source text a node was parsed from.
func (m *merger) sourceFor(node ast.Node) string {
	return node.Span().Slice(m.source)
}

func (m *merger) accept(node ast.Node) (ast.Node, error) {
	m.logger.Trace().
		Str("node", string(node.Kind())).
		Int("line", node.Span().Start.Line).
		Msg("dispatching node")

	switch n := node.(type) {
	case *ast.Program:
		return m.acceptProgram(n)
	case *ast.ContentStatement:
		return nil, m.acceptContent(n)
	case *ast.BlockStatement:
		return m.acceptBlock(n)
	case *ast.MustacheStatement:
		return m.acceptMustache(n)
	case *ast.MustacheCommentStatement:
		return m.acceptMustacheComment(n)
	case *ast.PartialStatement:
		return m.acceptPartial(n)
	case *ast.SubExpression, *ast.PathExpression, *ast.StringLiteral,
		*ast.NumberLiteral, *ast.BooleanLiteral, *ast.NullLiteral,
		*ast.UndefinedLiteral:
		return m.acceptExpr(node)
	}
	return nil, errors.Errorf("unexpected node kind %s in statement position", node.Kind())
}

// acceptProgram builds one scope. The parent-stack depth and the builder's
// open-element identity must both be unchanged across the body; a differing
// element identity means a tag was left open (or over-closed) inside this
// scope.
func (m *merger) acceptProgram(raw *ast.Program) (*ast.Program, error) {
	node := ast.NewProgram(raw.BlockParams, raw.Loc)
	if len(raw.Body) == 0 {
		return node, nil
	}

	m.parents.push(node)
	snapshot := m.builder.CurrentElement()

	for _, stmt := range raw.Body {
		if _, err := m.accept(stmt); err != nil {
			return nil, err
		}
	}

	m.parents.pop()

	if got := m.builder.CurrentElement(); got != snapshot {
		if got != nil {
			return nil, parseErrf(ErrUnbalancedNesting, got.Loc.Start.Line,
				"element <%s> was left open when its enclosing block closed", got.Tag)
		}
		return nil, parseErrf(ErrUnbalancedNesting, raw.Loc.Start.Line,
			"block closed an element it did not open")
	}

	return node, nil
}

// finish checks that the input did not end in the middle of a markup
// construct. A tag or comment still pending after the root scope closes
// would otherwise vanish from the tree.
func (m *merger) finish() error {
	if tag := m.builder.tag; tag != nil {
		name := tag.name.String()
		if tag.closing {
			return parseErrf(ErrUnterminatedMarkup, tag.loc.Line,
				"end tag </%s> was never finished", name)
		}
		return parseErrf(ErrUnterminatedMarkup, tag.loc.Line,
			"tag <%s> was never finished", name)
	}
	if m.tok.State().InComment() {
		return parseErrf(ErrUnterminatedMarkup, m.builder.cmtLoc.Line,
			"comment was never closed")
	}
	return nil
}

func (m *merger) acceptBlock(raw *ast.BlockStatement) (ast.Node, error) {
	state := m.tok.State()
	if state.InComment() {
		m.builder.AppendRawToComment(m.sourceFor(raw))
		return nil, nil
	}
	if state != tokenizer.Data && state != tokenizer.BeforeData {
		return nil, parseErrf(ErrIllegalBlockContext, raw.Loc.Start.Line,
			"a block may only be used inside an element body or another block, not in a tag or attribute")
	}

	path, params, hash, err := m.callParts(raw.Path, raw.Params, raw.Hash)
	if err != nil {
		return nil, err
	}

	program, err := m.acceptProgram(raw.Program)
	if err != nil {
		return nil, err
	}
	var inverse *ast.Program
	if raw.Inverse != nil {
		if inverse, err = m.acceptProgram(raw.Inverse); err != nil {
			return nil, err
		}
	}

	node := ast.NewBlock(path, params, hash, program, inverse, raw.Loc)
	m.appendChild(node)
	return node, nil
}

func (m *merger) acceptMustache(raw *ast.MustacheStatement) (ast.Node, error) {
	if m.tok.State().InComment() {
		m.builder.AppendRawToComment(m.sourceFor(raw))
		return nil, nil
	}

	path, params, hash, err := m.callParts(raw.Path, raw.Params, raw.Hash)
	if err != nil {
		return nil, err
	}
	node := ast.NewMustache(path, params, hash, raw.Escaped, raw.Loc)

	if err := m.place(node); err != nil {
		return nil, err
	}
	return node, nil
}

// acceptContent re-feeds literal text into the markup tokenizer. When the
// expression parser stripped leading whitespace, the tokenizer's counters
// are first advanced past what was removed.
func (m *merger) acceptContent(raw *ast.ContentStatement) error {
	line := raw.Loc.Start.Line
	column := raw.Loc.Start.Column

	if raw.Value != raw.Original {
		var removed string
		if raw.Value == "" {
			removed = raw.Original
		} else if idx := strings.Index(raw.Original, raw.Value); idx > 0 {
			removed = raw.Original[:idx]
		}
		if newlines := strings.Count(removed, "\n"); newlines > 0 {
			line += newlines
			column = 0
		} else {
			column += len(removed)
		}
	}

	m.tok.Line = line
	m.tok.Column = column

	m.tok.TokenizePart(raw.Value)
	m.tok.FlushData()
	return m.builder.takeErr()
}

func (m *merger) acceptMustacheComment(raw *ast.MustacheCommentStatement) (ast.Node, error) {
	if m.tok.State().InComment() {
		m.builder.AppendRawToComment(m.sourceFor(raw))
		return nil, nil
	}
	node := ast.NewMustacheComment(raw.Value, raw.Loc)
	switch m.tok.State() {
	case tokenizer.TagName, tokenizer.BeforeAttributeName,
		tokenizer.AfterAttributeName, tokenizer.AfterAttributeValueQuoted:
		m.builder.tag.comments = append(m.builder.tag.comments, node)
	default:
		m.appendChild(node)
	}
	return node, nil
}

func (m *merger) acceptPartial(raw *ast.PartialStatement) (ast.Node, error) {
	name, err := m.acceptExpr(raw.Name)
	if err != nil {
		return nil, err
	}
	params := []ast.Node{}
	for _, p := range raw.Params {
		np, err := m.acceptExpr(p)
		if err != nil {
			return nil, err
		}
		params = append(params, np)
	}
	hash, err := m.acceptHash(raw.Hash)
	if err != nil {
		return nil, err
	}

	node := ast.NewPartial(name, params, hash, raw.Loc)
	m.appendChild(node)
	return node, nil
}
