package ast_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veltlang/velt/pkg/ast"
	"github.com/veltlang/velt/pkg/position"
)

func TestConstructorDefaults(t *testing.T) {
	loc := position.Unknown()
	path := ast.NewPath("x", nil, false, false, loc)

	m := ast.NewMustache(path, nil, nil, true, loc)
	assert.NotNil(t, m.Params)
	assert.Empty(t, m.Params)
	require.NotNil(t, m.Hash)
	assert.Empty(t, m.Hash.Pairs)

	assert.Equal(t, []string{}, path.Parts)

	el := ast.NewElement("div", loc)
	assert.NotNil(t, el.Attributes)
	assert.NotNil(t, el.Children)
}

func TestAppendChild(t *testing.T) {
	loc := position.Unknown()

	var parent ast.ParentNode = ast.NewProgram(nil, loc)
	parent.AppendChild(ast.NewText("x", loc))
	assert.Len(t, parent.(*ast.Program).Body, 1)

	parent = ast.NewElement("div", loc)
	parent.AppendChild(ast.NewText("y", loc))
	assert.Len(t, parent.(*ast.ElementNode).Children, 1)
}

func TestIsLiteral(t *testing.T) {
	loc := position.Unknown()

	tests := []struct {
		node ast.Node
		want bool
	}{
		{ast.NewString("a", `"a"`, loc), true},
		{ast.NewNumber(1, "1", loc), true},
		{ast.NewBoolean(true, "true", loc), true},
		{ast.NewNull(loc), true},
		{ast.NewUndefined(loc), true},
		{ast.NewPath("a", []string{"a"}, false, false, loc), false},
		{ast.NewSubExpression(ast.NewPath("a", []string{"a"}, false, false, loc), nil, nil, loc), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ast.IsLiteral(tt.node), "%s", tt.node.Kind())
	}
}

func TestJSONShape(t *testing.T) {
	span := position.NewSpan(position.NewLoc(1, 0), position.NewLoc(1, 7))
	m := ast.NewMustache(ast.NewPath("a.b", []string{"a", "b"}, false, false, span), nil, nil, true, span)

	encoded, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	assert.Equal(t, string(ast.NodeMustache), decoded["type"])
	assert.Equal(t, true, decoded["escaped"])

	path := decoded["path"].(map[string]any)
	assert.Equal(t, "a.b", path["original"])
	assert.Equal(t, []any{"a", "b"}, path["parts"])

	loc := decoded["loc"].(map[string]any)
	start := loc["start"].(map[string]any)
	assert.Equal(t, float64(1), start["line"])
	assert.NotContains(t, start, "offset")
}
