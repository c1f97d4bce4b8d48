// Package parser merges the two interleaved grammars of a velt template:
// the expression grammar parsed by pkg/mustache and the markup grammar
// tokenized character by character as the expression tree is walked. The
// result is one unified tree in which every dynamic node sits at the
// syntactic position the tokenizer's lexical state implied when it was
// visited.
package parser

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/veltlang/velt/pkg/ast"
	"github.com/veltlang/velt/pkg/mustache"
)

// Parse runs the full pipeline on template source.
func Parse(ctx context.Context, source string) (*ast.Program, error) {
	raw, err := mustache.Parse(source)
	if err != nil {
		return nil, errors.Errorf("parsing expression grammar: %w", err)
	}
	return Normalize(ctx, raw, source)
}

// Normalize merges a pre-parsed raw expression tree with the markup grammar
// of its literal text. The raw tree is not mutated; every returned node is
// freshly constructed, so normalizing an already-normalized tree is a
// no-op projection. On failure the error is a *ParseError where the input
// broke a template rule, carrying the offending line.
func Normalize(ctx context.Context, raw *ast.Program, source string) (*ast.Program, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("parse_id", uuid.NewString()).
		Logger()

	m := newMerger(source, &logger)

	program, err := m.acceptProgram(raw)
	if err == nil {
		err = m.finish()
	}
	if err != nil {
		logger.Debug().Err(err).Msg("parse aborted")
		return nil, err
	}

	logger.Debug().Int("statements", len(program.Body)).Msg("parse complete")
	return program, nil
}
