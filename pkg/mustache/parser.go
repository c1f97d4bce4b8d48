package mustache

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"gitlab.com/tozd/go/errors"

	"github.com/veltlang/velt/pkg/ast"
	"github.com/veltlang/velt/pkg/position"
)

// Parse turns template source into the raw expression-grammar tree. Markup
// in content runs stays as flat ContentStatements for the merging parser to
// re-tokenize.
func Parse(source string) (*ast.Program, error) {
	doc, err := documentParser.ParseString("", source)
	if err != nil {
		return nil, errors.Errorf("parsing template expressions: %w", err)
	}
	b := &builder{}
	return b.build(doc)
}

type builder struct{}

// mergedItem is one logical item after adjacent text tokens are coalesced.
type mergedItem struct {
	item *rawItem // nil for text
	text string
	pos  lexer.Position
	end  lexer.Position
}

// frame is one open nesting level while rebuilding block structure from the
// flat item stream.
type frame struct {
	openSpan    position.Span
	path        ast.Node
	pathText    string
	params      []ast.Node
	hash        *ast.Hash
	blockParams []string
	body        []ast.Node
	primary     *ast.Program
	chained     bool
}

func (b *builder) build(doc *rawDocument) (*ast.Program, error) {
	items := coalesce(doc.Items)

	stack := []*frame{{body: []ast.Node{}}}
	top := func() *frame { return stack[len(stack)-1] }

	for i, it := range items {
		switch {
		case it.item == nil:
			value := it.text
			if i > 0 && items[i-1].item != nil {
				if _, closeStrip := strips(items[i-1].item); closeStrip {
					value = strings.TrimLeft(value, " \t\r\n")
				}
			}
			if i+1 < len(items) && items[i+1].item != nil {
				if openStrip, _ := strips(items[i+1].item); openStrip {
					value = strings.TrimRight(value, " \t\r\n")
				}
			}
			top().body = append(top().body, ast.NewContent(value, it.text, span(it.pos, it.end)))

		case it.item.Comment != nil:
			value, _, _ := splitComment(*it.item.Comment)
			top().body = append(top().body, ast.NewMustacheComment(value, span(it.pos, it.end)))

		case it.item.Escaped != nil:
			esc := it.item.Escaped
			if ref := esc.Call.Head.Ref; ref != nil && *ref == "else" {
				if err := b.acceptElse(&stack, esc); err != nil {
					return nil, err
				}
				continue
			}
			node, err := b.mustache(&esc.Call, true, span(it.pos, it.end))
			if err != nil {
				return nil, err
			}
			top().body = append(top().body, node)

		case it.item.Unescaped != nil:
			node, err := b.mustache(&it.item.Unescaped.Call, false, span(it.pos, it.end))
			if err != nil {
				return nil, err
			}
			top().body = append(top().body, node)

		case it.item.BlockOpen != nil:
			f, err := b.openBlock(it.item.BlockOpen, span(it.pos, it.end))
			if err != nil {
				return nil, err
			}
			stack = append(stack, f)

		case it.item.BlockClose != nil:
			if err := b.closeBlock(&stack, it.item.BlockClose, span(it.pos, it.end)); err != nil {
				return nil, err
			}

		case it.item.Partial != nil:
			node, err := b.partial(it.item.Partial, span(it.pos, it.end))
			if err != nil {
				return nil, err
			}
			top().body = append(top().body, node)
		}
	}

	if len(stack) > 1 {
		f := stack[len(stack)-1]
		return nil, errors.Errorf("unclosed block %q opened at line %d", f.pathText, f.openSpan.Start.Line)
	}

	root := ast.NewProgram(nil, span(doc.Pos, doc.EndPos))
	root.Body = stack[0].body
	return root, nil
}

func (b *builder) openBlock(raw *rawBlockOpen, loc position.Span) (*frame, error) {
	head, params, hash, err := b.call(&raw.Call)
	if err != nil {
		return nil, err
	}
	ref := raw.Call.Head.Ref
	if ref == nil {
		return nil, errors.Errorf("block opened with a non-path expression at line %d", loc.Start.Line)
	}
	return &frame{
		openSpan:    loc,
		path:        head,
		pathText:    *ref,
		params:      params,
		hash:        hash,
		blockParams: raw.BlockParams,
		body:        []ast.Node{},
	}, nil
}

func (b *builder) acceptElse(stack *[]*frame, esc *rawEscaped) error {
	line := esc.Pos.Line
	if len(*stack) < 2 {
		return errors.Errorf("{{else}} used outside of a block at line %d", line)
	}
	f := (*stack)[len(*stack)-1]
	if f.primary != nil {
		return errors.Errorf("a block may have only one {{else}}, second found at line %d", line)
	}
	f.primary = b.program(f.body, f.blockParams)
	f.body = []ast.Node{}

	if len(esc.Call.Params) == 0 && len(esc.Call.Hash) == 0 {
		return nil
	}

	// {{else if ...}} opens a chained block that closes with the outer one.
	chainCall := rawCall{
		Pos:    esc.Call.Params[0].Pos,
		EndPos: esc.Call.EndPos,
		Head:   esc.Call.Params[0],
		Params: esc.Call.Params[1:],
		Hash:   esc.Call.Hash,
	}
	cf, err := b.openBlock(&rawBlockOpen{Call: chainCall}, span(esc.Pos, esc.EndPos))
	if err != nil {
		return err
	}
	cf.chained = true
	*stack = append(*stack, cf)
	return nil
}

func (b *builder) closeBlock(stack *[]*frame, raw *rawBlockEnd, loc position.Span) error {
	var child *ast.BlockStatement
	for {
		if len(*stack) < 2 {
			return errors.Errorf("closing block {{/%s}} at line %d with no block open", raw.Path, loc.Start.Line)
		}
		f := (*stack)[len(*stack)-1]
		*stack = (*stack)[:len(*stack)-1]

		var primary, inverse *ast.Program
		switch {
		case child != nil:
			primary = f.primary
			inverse = b.wrap(child)
		case f.primary != nil:
			primary = f.primary
			inverse = b.program(f.body, nil)
		default:
			primary = b.program(f.body, f.blockParams)
		}

		blk := ast.NewBlock(f.path, f.params, f.hash, primary, inverse,
			position.NewSpan(f.openSpan.Start, loc.End))

		if f.chained {
			child = blk
			continue
		}

		if raw.Path != f.pathText {
			return errors.Errorf("closing block {{/%s}} at line %d does not match open block %q at line %d",
				raw.Path, loc.Start.Line, f.pathText, f.openSpan.Start.Line)
		}
		top := (*stack)[len(*stack)-1]
		top.body = append(top.body, blk)
		return nil
	}
}

func (b *builder) program(body []ast.Node, blockParams []string) *ast.Program {
	loc := position.Unknown()
	if len(body) > 0 {
		loc = position.NewSpan(body[0].Span().Start, body[len(body)-1].Span().End)
	}
	p := ast.NewProgram(blockParams, loc)
	p.Body = body
	return p
}

func (b *builder) wrap(blk *ast.BlockStatement) *ast.Program {
	p := ast.NewProgram(nil, blk.Loc)
	p.Body = []ast.Node{blk}
	return p
}

func (b *builder) mustache(call *rawCall, escaped bool, loc position.Span) (*ast.MustacheStatement, error) {
	head, params, hash, err := b.call(call)
	if err != nil {
		return nil, err
	}
	return ast.NewMustache(head, params, hash, escaped, loc), nil
}

func (b *builder) partial(raw *rawPartial, loc position.Span) (*ast.PartialStatement, error) {
	head, params, hash, err := b.call(&raw.Call)
	if err != nil {
		return nil, err
	}
	return ast.NewPartial(head, params, hash, loc), nil
}

func (b *builder) call(raw *rawCall) (ast.Node, []ast.Node, *ast.Hash, error) {
	head, err := b.expr(&raw.Head)
	if err != nil {
		return nil, nil, nil, err
	}
	params := []ast.Node{}
	for i := range raw.Params {
		p, err := b.expr(&raw.Params[i])
		if err != nil {
			return nil, nil, nil, err
		}
		params = append(params, p)
	}
	var hash *ast.Hash
	if len(raw.Hash) > 0 {
		pairs := make([]*ast.HashPair, 0, len(raw.Hash))
		seen := make(map[string]bool, len(raw.Hash))
		for i := range raw.Hash {
			hp := &raw.Hash[i]
			if seen[hp.Key] {
				return nil, nil, nil, errors.Errorf("duplicate named argument %q at line %d", hp.Key, hp.Pos.Line)
			}
			seen[hp.Key] = true
			v, err := b.expr(&hp.Value)
			if err != nil {
				return nil, nil, nil, err
			}
			pairs = append(pairs, ast.NewHashPair(hp.Key, v, span(hp.Pos, hp.EndPos)))
		}
		hash = ast.NewHash(pairs, span(raw.Hash[0].Pos, raw.Hash[len(raw.Hash)-1].EndPos))
	}
	return head, params, hash, nil
}

func (b *builder) expr(raw *rawExpr) (ast.Node, error) {
	loc := span(raw.Pos, raw.EndPos)
	switch {
	case raw.SubExpr != nil:
		head, params, hash, err := b.call(raw.SubExpr)
		if err != nil {
			return nil, err
		}
		return ast.NewSubExpression(head, params, hash, loc), nil
	case raw.Str != nil:
		return ast.NewString(unquote(*raw.Str), *raw.Str, loc), nil
	case raw.Num != nil:
		v, err := strconv.ParseFloat(*raw.Num, 64)
		if err != nil {
			return nil, errors.Errorf("invalid number %q at line %d: %w", *raw.Num, raw.Pos.Line, err)
		}
		return ast.NewNumber(v, *raw.Num, loc), nil
	default:
		return pathOrKeyword(*raw.Ref, loc), nil
	}
}

// pathOrKeyword resolves the keyword literals, then splits a reference path
// into segments. Separator legality is left to the normalizer.
func pathOrKeyword(text string, loc position.Span) ast.Node {
	switch text {
	case "true":
		return ast.NewBoolean(true, text, loc)
	case "false":
		return ast.NewBoolean(false, text, loc)
	case "null":
		return ast.NewNull(loc)
	case "undefined":
		return ast.NewUndefined(loc)
	}

	data := strings.HasPrefix(text, "@")
	rest := strings.TrimPrefix(text, "@")

	this := false
	parts := strings.FieldsFunc(rest, func(r rune) bool { return r == '.' || r == '/' })
	if rest == "." || rest == "this" {
		this = true
		parts = nil
	} else if len(parts) > 0 && parts[0] == "this" {
		this = true
		parts = parts[1:]
	}

	return ast.NewPath(text, parts, this, data, loc)
}

func coalesce(items []rawItem) []mergedItem {
	var out []mergedItem
	for i := range items {
		it := &items[i]
		if it.Text != nil {
			if n := len(out); n > 0 && out[n-1].item == nil {
				out[n-1].text += *it.Text
				out[n-1].end = it.EndPos
				continue
			}
			out = append(out, mergedItem{text: *it.Text, pos: it.Pos, end: it.EndPos})
			continue
		}
		out = append(out, mergedItem{item: it, pos: it.Pos, end: it.EndPos})
	}
	return out
}

// strips reports whether an expression item's delimiters carry whitespace
// control tildes.
func strips(it *rawItem) (openStrip, closeStrip bool) {
	var openTok, closeTok string
	switch {
	case it.Comment != nil:
		_, openStrip, closeStrip = splitComment(*it.Comment)
		return openStrip, closeStrip
	case it.Escaped != nil:
		openTok, closeTok = it.Escaped.Open, it.Escaped.Close
	case it.Unescaped != nil:
		openTok, closeTok = it.Unescaped.Open, it.Unescaped.Close
	case it.BlockOpen != nil:
		openTok, closeTok = it.BlockOpen.Open, it.BlockOpen.Close
	case it.BlockClose != nil:
		openTok, closeTok = it.BlockClose.Open, it.BlockClose.Close
	case it.Partial != nil:
		openTok, closeTok = it.Partial.Open, it.Partial.Close
	}
	return strings.Contains(openTok, "~"), strings.Contains(closeTok, "~")
}

func splitComment(tok string) (value string, openStrip, closeStrip bool) {
	rest := strings.TrimPrefix(tok, "{{")
	if strings.HasPrefix(rest, "~") {
		openStrip = true
		rest = rest[1:]
	}
	rest = strings.TrimPrefix(rest, "!")
	if strings.HasSuffix(rest, "~}}") {
		closeStrip = true
		rest = strings.TrimSuffix(rest, "~}}")
	} else {
		rest = strings.TrimSuffix(rest, "}}")
	}
	if strings.HasPrefix(rest, "--") {
		rest = strings.TrimSuffix(strings.TrimPrefix(rest, "--"), "--")
	}
	return rest, openStrip, closeStrip
}

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	body := s[1 : len(s)-1]
	var out strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' && i+1 < len(body) {
			i++
			switch body[i] {
			case 'n':
				out.WriteByte('\n')
			case 't':
				out.WriteByte('\t')
			case 'r':
				out.WriteByte('\r')
			default:
				out.WriteByte(body[i])
			}
			continue
		}
		out.WriteByte(c)
	}
	return out.String()
}

func span(start, end lexer.Position) position.Span {
	return position.Span{
		Start: position.Loc{Line: start.Line, Column: start.Column - 1, Offset: start.Offset},
		End:   position.Loc{Line: end.Line, Column: end.Column - 1, Offset: end.Offset},
	}
}
