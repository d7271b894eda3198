package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianc/htmldsl/internal/htmldsl/ast"
)

func TestParse(t *testing.T) {
	src := `html {
	// metadata
	head { title { + "Intro \"quoted\"" } }
	body {
		p { + "one" + "two" }
		p {}
	}
}`
	doc, err := ast.Parse("page.htmldsl", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, doc.Root)

	root := doc.Root
	assert.Equal(t, "html", root.Name)
	assert.Equal(t, 1, root.Pos.Line)

	nodes := root.Nodes()
	require.Len(t, nodes, 2)
	head, ok := nodes[0].(*ast.Element)
	require.True(t, ok)
	assert.Equal(t, "head", head.Name)
	assert.Equal(t, 3, head.Position().Line)
	assert.Equal(t, "page.htmldsl", head.Position().Filename)

	title := head.Children[0].Element
	require.NotNil(t, title)
	text, ok := title.Nodes()[0].(*ast.Text)
	require.True(t, ok)
	assert.Equal(t, `Intro "quoted"`, text.Value)

	body := nodes[1].(*ast.Element)
	require.Len(t, body.Children, 2)
	first := body.Children[0].Element
	require.Len(t, first.Children, 2)
	assert.Equal(t, "one", first.Children[0].Text.Value)
	assert.Equal(t, "two", first.Children[1].Text.Value)
	assert.Empty(t, body.Children[1].Element.Children)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "empty", src: ""},
		{name: "unclosed", src: "html {"},
		{name: "bare text", src: `html { "x" }`},
		{name: "two roots", src: "html {} html {}"},
		{name: "unterminated string", src: `html { p { + "x } }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ast.Parse("bad.htmldsl", []byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "bad.htmldsl")
		})
	}
}
