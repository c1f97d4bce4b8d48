package parser

import (
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/veltlang/velt/pkg/ast"
	"github.com/veltlang/velt/pkg/position"
)

// acceptPath normalizes and legality-checks one reference path. The checks
// run in order and each failure is fatal. Depth is always 0 in this
// language variant; the data flag and location pass through untouched.
func (m *merger) acceptPath(path *ast.PathExpression) (*ast.PathExpression, error) {
	original := path.Original
	line := path.Loc.Start.Line

	parts := path.Parts
	if strings.Contains(original, "/") {
		switch {
		case strings.HasPrefix(original, "./"):
			return nil, parseErrf(ErrCurrentContextPath, line,
				"using %q is not supported, the current context is already implied in %q", "./", original)
		case strings.HasPrefix(original, "../"):
			return nil, parseErrf(ErrParentContextPath, line,
				"changing context using %q is not supported in %q", "../", original)
		case strings.Contains(original, "."):
			return nil, parseErrf(ErrMixedSeparators, line,
				"mixing %q and %q in paths is not supported in %q, use only %q to separate segments", ".", "/", original, ".")
		default:
			// slash-only paths collapse to one opaque segment, keeping
			// legacy lookup semantics
			parts = []string{strings.Join(path.Parts, "/")}
		}
	}

	return ast.NewPath(original, parts, path.This, path.Data, path.Loc), nil
}

// callParts normalizes the path, positional arguments and named arguments
// of any call-shaped node. Arguments are never dropped or reordered; absent
// named arguments become an empty hash with no location.
func (m *merger) callParts(path ast.Node, params []ast.Node, hash *ast.Hash) (ast.Node, []ast.Node, *ast.Hash, error) {
	normPath, err := m.acceptExpr(path)
	if err != nil {
		return nil, nil, nil, err
	}
	normParams := []ast.Node{}
	for _, p := range params {
		np, err := m.acceptExpr(p)
		if err != nil {
			return nil, nil, nil, err
		}
		normParams = append(normParams, np)
	}
	normHash, err := m.acceptHash(hash)
	if err != nil {
		return nil, nil, nil, err
	}
	return normPath, normParams, normHash, nil
}

func (m *merger) acceptHash(hash *ast.Hash) (*ast.Hash, error) {
	if hash == nil {
		return ast.NewHash(nil, position.Unknown()), nil
	}
	pairs := make([]*ast.HashPair, 0, len(hash.Pairs))
	for _, pair := range hash.Pairs {
		value, err := m.acceptExpr(pair.Value)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ast.NewHashPair(pair.Key, value, pair.Loc))
	}
	return ast.NewHash(pairs, hash.Loc), nil
}

// acceptExpr visits one argument expression, recursing into nested calls.
func (m *merger) acceptExpr(node ast.Node) (ast.Node, error) {
	switch n := node.(type) {
	case *ast.PathExpression:
		return m.acceptPath(n)
	case *ast.SubExpression:
		path, params, hash, err := m.callParts(n.Path, n.Params, n.Hash)
		if err != nil {
			return nil, err
		}
		return ast.NewSubExpression(path, params, hash, n.Loc), nil
	case *ast.StringLiteral:
		return ast.NewString(n.Value, n.Original, n.Loc), nil
	case *ast.NumberLiteral:
		return ast.NewNumber(n.Value, n.Original, n.Loc), nil
	case *ast.BooleanLiteral:
		return ast.NewBoolean(n.Value, n.Original, n.Loc), nil
	case *ast.NullLiteral:
		return ast.NewNull(n.Loc), nil
	case *ast.UndefinedLiteral:
		return ast.NewUndefined(n.Loc), nil
	}
	return nil, errors.Errorf("unexpected %s in argument position", node.Kind())
}
