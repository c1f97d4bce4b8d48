// Package diagnostic converts parse failures into reportable diagnostics
// and formats them for humans or tooling.
package diagnostic

import (
	"encoding/json"
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/veltlang/velt/pkg/parser"
)

// Severity is the weight of a diagnostic.
type Severity string

const (
	Error   Severity = "error"
	Warning Severity = "warning"
)

// Diagnostic is one reportable finding in one file.
type Diagnostic struct {
	File     string   `json:"file"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
	Code     string   `json:"code,omitempty"`
	Severity Severity `json:"severity"`
}

// Diagnostics is everything found in one run.
type Diagnostics struct {
	Errors []Diagnostic `json:"errors"`
}

// FromError converts a parse failure into a diagnostic. Structured parse
// errors carry their kind and line; anything else is reported on line 1.
func FromError(file string, err error) Diagnostic {
	var perr *parser.ParseError
	if errors.As(err, &perr) {
		return Diagnostic{
			File:     file,
			Message:  perr.Msg,
			Line:     perr.Line,
			Code:     string(perr.Kind),
			Severity: Error,
		}
	}
	return Diagnostic{File: file, Message: err.Error(), Line: 1, Severity: Error}
}

// Formatter renders diagnostics into one output format.
type Formatter interface {
	Format(diagnostics *Diagnostics) ([]byte, error)
}

// TextFormatter renders one diagnostic per line, compiler style.
type TextFormatter struct{}

func (f *TextFormatter) Format(diagnostics *Diagnostics) ([]byte, error) {
	if diagnostics == nil {
		return nil, errors.Errorf("diagnostics is nil")
	}
	var sb strings.Builder
	for _, d := range diagnostics.Errors {
		if d.Code != "" {
			fmt.Fprintf(&sb, "%s:%d: %s: %s [%s]\n", d.File, d.Line, d.Severity, d.Message, d.Code)
		} else {
			fmt.Fprintf(&sb, "%s:%d: %s: %s\n", d.File, d.Line, d.Severity, d.Message)
		}
	}
	return []byte(sb.String()), nil
}

// JSONFormatter renders the whole collection as one JSON document.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(diagnostics *Diagnostics) ([]byte, error) {
	if diagnostics == nil {
		return nil, errors.Errorf("diagnostics is nil")
	}
	return json.MarshalIndent(diagnostics, "", "  ")
}

// NewFormatter returns the formatter for a format name.
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "text", "":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	}
	return nil, errors.Errorf("unknown diagnostics format %q", format)
}
