package mustache

import "github.com/alecthomas/participle/v2/lexer"

// rawDocument is the flat item stream; block nesting is rebuilt afterwards.
type rawDocument struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Items []rawItem `parser:"@@*"`
}

type rawItem struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Text       *string       `parser:"@Text"`
	Comment    *string       `parser:"| @Comment"`
	Unescaped  *rawUnescaped `parser:"| @@"`
	BlockOpen  *rawBlockOpen `parser:"| @@"`
	BlockClose *rawBlockEnd  `parser:"| @@"`
	Partial    *rawPartial   `parser:"| @@"`
	Escaped    *rawEscaped   `parser:"| @@"`
}

type rawEscaped struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Open  string  `parser:"@Open"`
	Call  rawCall `parser:"@@"`
	Close string  `parser:"@Close"`
}

type rawUnescaped struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Open  string  `parser:"@OpenUnescaped"`
	Call  rawCall `parser:"@@"`
	Close string  `parser:"@CloseUnescaped"`
}

type rawBlockOpen struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Open        string   `parser:"@OpenBlock"`
	Call        rawCall  `parser:"@@"`
	BlockParams []string `parser:"('as' Pipe @Path+ Pipe)?"`
	Close       string   `parser:"@Close"`
}

type rawBlockEnd struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Open  string `parser:"@OpenEndBlock"`
	Path  string `parser:"@Path"`
	Close string `parser:"@Close"`
}

type rawPartial struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Open  string  `parser:"@OpenPartial"`
	Call  rawCall `parser:"@@"`
	Close string  `parser:"@Close"`
}

// rawCall is a head expression followed by positional params and then named
// params. The lookaheads keep the param loop from eating a hash key or the
// "as |...|" block-param introducer.
type rawCall struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Head   rawExpr       `parser:"@@"`
	Params []rawExpr     `parser:"( (?! Path Equals) (?! 'as' Pipe) @@ )*"`
	Hash   []rawHashPair `parser:"@@*"`
}

type rawHashPair struct {
	Pos    lexer.Position
	EndPos lexer.Position

	Key   string  `parser:"@Path Equals"`
	Value rawExpr `parser:"@@"`
}

type rawExpr struct {
	Pos    lexer.Position
	EndPos lexer.Position

	SubExpr *rawCall `parser:"OpenParen @@ CloseParen"`
	Str     *string  `parser:"| @String"`
	Num     *string  `parser:"| @Number"`
	Ref     *string  `parser:"| @Path"`
}
