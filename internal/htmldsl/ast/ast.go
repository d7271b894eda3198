// Package ast holds the syntax tree of .htmldsl scripts, a textual form of
// the markup builder calls:
//
//	html {
//		head { title { + "Intro" } }
//		body {
//			p { + "Hello" } // comments run to the end of the line
//		}
//	}
package ast

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type Node interface {
	node()
	Position() lexer.Position
}

// Document is a whole script. It holds exactly one root element.
type Document struct {
	Pos  lexer.Position
	Root *Element `@@`
}

type Element struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Name     string   `@Ident`
	Children []*Child `"{" @@* "}"`
}

func (*Element) node() {}

func (e *Element) Position() lexer.Position { return e.Pos }

// Nodes returns the children in source order.
func (e *Element) Nodes() []Node {
	nodes := make([]Node, 0, len(e.Children))
	for _, c := range e.Children {
		nodes = append(nodes, c.Node())
	}
	return nodes
}

type Text struct {
	Pos   lexer.Position
	Value string `"+" @String`
}

func (*Text) node() {}

func (t *Text) Position() lexer.Position { return t.Pos }

// Child is the grammar alternative between text and a nested element.
type Child struct {
	Text    *Text    `  @@`
	Element *Element `| @@`
}

// Node returns whichever alternative was parsed.
func (c *Child) Node() Node {
	if c.Text != nil {
		return c.Text
	}
	return c.Element
}

var (
	scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//[^\n]*`},
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Punct", Pattern: `[{}+]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser = participle.MustBuild[Document](
		participle.Lexer(scriptLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.Unquote("String"),
	)
)

// Parse parses a script. Errors carry a filename:line:col prefix.
func Parse(filename string, src []byte) (*Document, error) {
	return parser.ParseBytes(filename, src)
}
