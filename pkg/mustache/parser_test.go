package mustache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veltlang/velt/pkg/ast"
	"github.com/veltlang/velt/pkg/mustache"
)

func parseOne[T ast.Node](t *testing.T, source string) T {
	t.Helper()
	program, err := mustache.Parse(source)
	require.NoError(t, err)
	require.Len(t, program.Body, 1)
	node, ok := program.Body[0].(T)
	require.True(t, ok, "expected %T, got %T", *new(T), program.Body[0])
	return node
}

func TestParse_Content(t *testing.T) {
	program, err := mustache.Parse("hello <b>world</b>")
	require.NoError(t, err)
	require.Len(t, program.Body, 1)

	content := program.Body[0].(*ast.ContentStatement)
	assert.Equal(t, "hello <b>world</b>", content.Value)
	assert.Equal(t, content.Value, content.Original)
	assert.Equal(t, 1, content.Loc.Start.Line)
	assert.Equal(t, 0, content.Loc.Start.Column)
}

func TestParse_Mustache(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		path     string
		parts    []string
		escaped  bool
		nparams  int
		npairs   int
	}{
		{name: "bare path", source: "{{name}}", path: "name", parts: []string{"name"}, escaped: true},
		{name: "dotted path", source: "{{user.name}}", path: "user.name", parts: []string{"user", "name"}, escaped: true},
		{name: "slash path kept raw", source: "{{a/b}}", path: "a/b", parts: []string{"a", "b"}, escaped: true},
		{name: "unescaped", source: "{{{html}}}", path: "html", parts: []string{"html"}, escaped: false},
		{name: "helper with params", source: "{{concat a b}}", path: "concat", parts: []string{"concat"}, escaped: true, nparams: 2},
		{name: "helper with hash", source: "{{link to=page id=3}}", path: "link", parts: []string{"link"}, escaped: true, npairs: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := parseOne[*ast.MustacheStatement](t, tt.source)
			assert.Equal(t, tt.escaped, m.Escaped)

			path := m.Path.(*ast.PathExpression)
			assert.Equal(t, tt.path, path.Original)
			assert.Equal(t, tt.parts, path.Parts)
			assert.Len(t, m.Params, tt.nparams)
			assert.Len(t, m.Hash.Pairs, tt.npairs)
		})
	}
}

func TestParse_PathFlavors(t *testing.T) {
	tests := []struct {
		source string
		data   bool
		this   bool
		parts  []string
	}{
		{"{{@index}}", true, false, []string{"index"}},
		{"{{this}}", false, true, []string{}},
		{"{{this.name}}", false, true, []string{"name"}},
		{"{{.}}", false, true, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			m := parseOne[*ast.MustacheStatement](t, tt.source)
			path := m.Path.(*ast.PathExpression)
			assert.Equal(t, tt.data, path.Data)
			assert.Equal(t, tt.this, path.This)
			assert.Equal(t, tt.parts, path.Parts)
			assert.Equal(t, 0, path.Depth)
		})
	}
}

func TestParse_Literals(t *testing.T) {
	m := parseOne[*ast.MustacheStatement](t, `{{cmp "a" 'b' 1.5 -2 true null undefined}}`)
	require.Len(t, m.Params, 7)

	assert.Equal(t, "a", m.Params[0].(*ast.StringLiteral).Value)
	assert.Equal(t, "b", m.Params[1].(*ast.StringLiteral).Value)
	assert.Equal(t, 1.5, m.Params[2].(*ast.NumberLiteral).Value)
	assert.Equal(t, -2.0, m.Params[3].(*ast.NumberLiteral).Value)
	assert.Equal(t, true, m.Params[4].(*ast.BooleanLiteral).Value)
	assert.Equal(t, ast.NodeNull, m.Params[5].Kind())
	assert.Equal(t, ast.NodeUndefined, m.Params[6].Kind())
}

func TestParse_SubExpression(t *testing.T) {
	m := parseOne[*ast.MustacheStatement](t, "{{if (eq a b) yes}}")
	require.Len(t, m.Params, 2)

	sub := m.Params[0].(*ast.SubExpression)
	assert.Equal(t, "eq", sub.Path.(*ast.PathExpression).Original)
	assert.Len(t, sub.Params, 2)
}

func TestParse_Block(t *testing.T) {
	blk := parseOne[*ast.BlockStatement](t, "{{#if ok}}yes{{/if}}")

	assert.Equal(t, "if", blk.Path.(*ast.PathExpression).Original)
	require.Len(t, blk.Params, 1)
	require.NotNil(t, blk.Program)
	require.Len(t, blk.Program.Body, 1)
	assert.Equal(t, "yes", blk.Program.Body[0].(*ast.ContentStatement).Value)
	assert.Nil(t, blk.Inverse)
}

func TestParse_BlockWithElse(t *testing.T) {
	blk := parseOne[*ast.BlockStatement](t, "{{#if ok}}yes{{else}}no{{/if}}")

	require.NotNil(t, blk.Inverse)
	require.Len(t, blk.Inverse.Body, 1)
	assert.Equal(t, "no", blk.Inverse.Body[0].(*ast.ContentStatement).Value)
}

func TestParse_ElseIfChain(t *testing.T) {
	blk := parseOne[*ast.BlockStatement](t, "{{#if a}}A{{else if b}}B{{else}}C{{/if}}")

	require.NotNil(t, blk.Inverse)
	require.Len(t, blk.Inverse.Body, 1)

	chained := blk.Inverse.Body[0].(*ast.BlockStatement)
	assert.Equal(t, "if", chained.Path.(*ast.PathExpression).Original)
	require.Len(t, chained.Params, 1)
	assert.Equal(t, "b", chained.Params[0].(*ast.PathExpression).Original)

	require.Len(t, chained.Program.Body, 1)
	assert.Equal(t, "B", chained.Program.Body[0].(*ast.ContentStatement).Value)
	require.NotNil(t, chained.Inverse)
	assert.Equal(t, "C", chained.Inverse.Body[0].(*ast.ContentStatement).Value)
}

func TestParse_BlockParams(t *testing.T) {
	blk := parseOne[*ast.BlockStatement](t, "{{#each items as |item idx|}}x{{/each}}")

	assert.Equal(t, []string{"item", "idx"}, blk.Program.BlockParams)
	require.Len(t, blk.Params, 1)
	assert.Equal(t, "items", blk.Params[0].(*ast.PathExpression).Original)
}

func TestParse_NestedBlocks(t *testing.T) {
	outer := parseOne[*ast.BlockStatement](t, "{{#each items}}{{#if this}}x{{/if}}{{/each}}")

	require.Len(t, outer.Program.Body, 1)
	inner := outer.Program.Body[0].(*ast.BlockStatement)
	assert.Equal(t, "if", inner.Path.(*ast.PathExpression).Original)
}

func TestParse_Partial(t *testing.T) {
	p := parseOne[*ast.PartialStatement](t, "{{> header title=site.title}}")

	assert.Equal(t, "header", p.Name.(*ast.PathExpression).Original)
	require.Len(t, p.Hash.Pairs, 1)
	assert.Equal(t, "title", p.Hash.Pairs[0].Key)
}

func TestParse_Comments(t *testing.T) {
	tests := []struct {
		source string
		value  string
	}{
		{"{{! plain }}", " plain "},
		{"{{!-- has }} inside --}}", " has }} inside "},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			c := parseOne[*ast.MustacheCommentStatement](t, tt.source)
			assert.Equal(t, tt.value, c.Value)
		})
	}
}

func TestParse_WhitespaceControl(t *testing.T) {
	program, err := mustache.Parse("a  {{~x}}")
	require.NoError(t, err)
	require.Len(t, program.Body, 2)

	content := program.Body[0].(*ast.ContentStatement)
	assert.Equal(t, "a", content.Value)
	assert.Equal(t, "a  ", content.Original)

	program, err = mustache.Parse("{{x~}}  \n  b")
	require.NoError(t, err)
	content = program.Body[1].(*ast.ContentStatement)
	assert.Equal(t, "b", content.Value)
	assert.Equal(t, "  \n  b", content.Original)
}

func TestParse_ContentMergesBraces(t *testing.T) {
	program, err := mustache.Parse("a { b")
	require.NoError(t, err)
	require.Len(t, program.Body, 1)
	assert.Equal(t, "a { b", program.Body[0].(*ast.ContentStatement).Value)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr string
	}{
		{name: "unclosed block", source: "{{#if a}}x", wantErr: "unclosed block"},
		{name: "mismatched close", source: "{{#if a}}x{{/each}}", wantErr: "does not match"},
		{name: "stray close", source: "x{{/if}}", wantErr: "no block open"},
		{name: "stray else", source: "a{{else}}b", wantErr: "outside of a block"},
		{name: "double else", source: "{{#if a}}{{else}}{{else}}{{/if}}", wantErr: "only one"},
		{name: "duplicate hash key", source: "{{x a=1 a=2}}", wantErr: "duplicate named argument"},
		{name: "duplicate hash key in block", source: "{{#each x k=1 k=2}}y{{/each}}", wantErr: "duplicate named argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mustache.Parse(tt.source)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
