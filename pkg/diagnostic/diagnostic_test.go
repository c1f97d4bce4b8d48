package diagnostic_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/veltlang/velt/pkg/diagnostic"
	"github.com/veltlang/velt/pkg/parser"
)

func TestFromError_ParseError(t *testing.T) {
	_, err := parser.Parse(context.Background(), "line one\n{{./bad}}")
	require.Error(t, err)

	d := diagnostic.FromError("page.velt", err)
	assert.Equal(t, "page.velt", d.File)
	assert.Equal(t, 2, d.Line)
	assert.Equal(t, string(parser.ErrCurrentContextPath), d.Code)
	assert.Equal(t, diagnostic.Error, d.Severity)
	assert.NotEmpty(t, d.Message)
}

func TestFromError_PlainError(t *testing.T) {
	d := diagnostic.FromError("page.velt", errors.Errorf("boom"))
	assert.Equal(t, 1, d.Line)
	assert.Empty(t, d.Code)
	assert.Equal(t, "boom", d.Message)
}

func TestTextFormatter(t *testing.T) {
	diags := &diagnostic.Diagnostics{Errors: []diagnostic.Diagnostic{
		{File: "a.velt", Message: "tag left open", Line: 3, Code: "unbalanced-nesting", Severity: diagnostic.Error},
		{File: "b.velt", Message: "something odd", Line: 1, Severity: diagnostic.Warning},
	}}

	out, err := (&diagnostic.TextFormatter{}).Format(diags)
	require.NoError(t, err)
	assert.Equal(t,
		"a.velt:3: error: tag left open [unbalanced-nesting]\n"+
			"b.velt:1: warning: something odd\n",
		string(out))
}

func TestJSONFormatter(t *testing.T) {
	diags := &diagnostic.Diagnostics{Errors: []diagnostic.Diagnostic{
		{File: "a.velt", Message: "m", Line: 2, Code: "mixed-separators", Severity: diagnostic.Error},
	}}

	out, err := (&diagnostic.JSONFormatter{}).Format(diags)
	require.NoError(t, err)

	var decoded diagnostic.Diagnostics
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded.Errors, 1)
	assert.Equal(t, "mixed-separators", decoded.Errors[0].Code)
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format  string
		want    diagnostic.Formatter
		wantErr bool
	}{
		{format: "text", want: &diagnostic.TextFormatter{}},
		{format: "", want: &diagnostic.TextFormatter{}},
		{format: "json", want: &diagnostic.JSONFormatter{}},
		{format: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, err := diagnostic.NewFormatter(tt.format)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
		})
	}
}
