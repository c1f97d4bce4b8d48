package parser

import (
	"github.com/veltlang/velt/pkg/ast"
	"github.com/veltlang/velt/pkg/tokenizer"
)

// place decides where a mustache attaches, purely from the tokenizer's
// lexical state at the moment it is visited. The switch is total over the
// state enum; the final arm is the documented ordinary-child catch-all.
func (m *merger) place(node *ast.MustacheStatement) error {
	state := m.tok.State()
	m.logger.Debug().
		Str("state", state.String()).
		Int("line", node.Loc.Start.Line).
		Msg("placing mustache")

	switch state {
	case tokenizer.TagName:
		m.builder.AddModifier(node)
		m.tok.TransitionTo(tokenizer.BeforeAttributeName)

	case tokenizer.BeforeAttributeName:
		m.builder.AddModifier(node)

	case tokenizer.AttributeName, tokenizer.AfterAttributeName:
		// an attribute cannot stay open across a tag-level mustache:
		// finalize it with an empty unquoted value first
		m.builder.BeginAttributeValue(false)
		m.builder.FinishAttributeValue()
		m.builder.AddModifier(node)
		m.tok.TransitionTo(tokenizer.BeforeAttributeName)

	case tokenizer.AfterAttributeValueQuoted:
		m.builder.AddModifier(node)
		m.tok.TransitionTo(tokenizer.BeforeAttributeName)

	case tokenizer.BeforeAttributeValue:
		m.builder.BeginAttributeValue(false)
		m.tok.TransitionTo(tokenizer.AttributeValueUnquoted)
		m.builder.AppendDynamicAttributeValuePart(node)

	case tokenizer.AttributeValueDoubleQuoted,
		tokenizer.AttributeValueSingleQuoted,
		tokenizer.AttributeValueUnquoted:
		m.builder.AppendDynamicAttributeValuePart(node)

	default:
		// plain content and every remaining state: ordinary child
		m.appendChild(node)
	}

	return m.builder.takeErr()
}
