// Package mustache parses the expression grammar of velt templates: content
// runs, mustaches, blocks, partials and comments. Markup inside content is
// not interpreted here; that is the merging parser's job.
package mustache

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	// LexerRules is a two-mode lexer: Root for literal content, Action for
	// the inside of {{ }} delimiters.
	LexerRules = lexer.Rules{
		"Root": {
			// Comments carry their own delimiters so strip tildes survive
			{Name: "Comment", Pattern: `\{\{~?!--(?s:.*?)--~?\}\}|\{\{~?![^}]*\}\}`, Action: nil},
			{Name: "OpenUnescaped", Pattern: `\{\{~?\{`, Action: lexer.Push("Action")},
			{Name: "OpenBlock", Pattern: `\{\{~?#`, Action: lexer.Push("Action")},
			{Name: "OpenEndBlock", Pattern: `\{\{~?/`, Action: lexer.Push("Action")},
			{Name: "OpenPartial", Pattern: `\{\{~?>`, Action: lexer.Push("Action")},
			{Name: "Open", Pattern: `\{\{~?`, Action: lexer.Push("Action")},
			{Name: "Text", Pattern: `[^{]+|\{`, Action: nil},
		},
		"Action": {
			{Name: "whitespace", Pattern: `\s+`, Action: nil},
			{Name: "CloseUnescaped", Pattern: `~?\}\}\}`, Action: lexer.Pop()},
			{Name: "Close", Pattern: `~?\}\}`, Action: lexer.Pop()},
			{Name: "String", Pattern: `"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'`, Action: nil},
			{Name: "Number", Pattern: `-?[0-9]+(?:\.[0-9]+)?`, Action: nil},
			{Name: "OpenParen", Pattern: `\(`, Action: nil},
			{Name: "CloseParen", Pattern: `\)`, Action: nil},
			{Name: "Pipe", Pattern: `\|`, Action: nil},
			{Name: "Equals", Pattern: `=`, Action: nil},
			// Paths keep their separators; legality of "./", "../" and
			// mixed separators is checked during normalization, not here.
			{Name: "Path", Pattern: `[@a-zA-Z0-9_$./-]+`, Action: nil},
		},
	}

	mustacheLexer = lexer.MustStateful(LexerRules)

	documentParser = participle.MustBuild[rawDocument](
		participle.Lexer(mustacheLexer),
		participle.Elide("whitespace"),
		participle.UseLookahead(2),
	)
)
