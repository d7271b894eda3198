package gomponents_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianc/htmldsl/internal/htmldsl/gomponents"
	"github.com/kilianc/htmldsl/pkg/markup"
)

func TestRenderDocument(t *testing.T) {
	doc := markup.Build(func(h *markup.HTML) {
		h.Head(func(hd *markup.Head) {
			hd.Title(func(t *markup.Title) { t.AddText("Intro") })
		})
		h.Body(func(b *markup.Body) {
			b.P(func(p *markup.Paragraph) { p.AddText("Hello") })
			b.P(nil)
		})
	})

	out, err := gomponents.RenderDocument(doc)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(strings.ToLower(s), "<!doctype html>"), s)
	assert.True(t, strings.HasSuffix(s, "<html><head><title>Intro</title></head><body><p>Hello</p><p></p></body></html>"), s)
}

func TestTextIsEscaped(t *testing.T) {
	var p *markup.Paragraph
	markup.Build(func(h *markup.HTML) {
		h.Body(func(b *markup.Body) {
			p = b.P(func(p *markup.Paragraph) { p.AddText("<b>Tom & Jerry</b>") })
		})
	})

	n, err := gomponents.Lower(p)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, n.Render(&buf))
	assert.Equal(t, "<p>&lt;b&gt;Tom &amp; Jerry&lt;/b&gt;</p>", buf.String())
}

func TestLowerNil(t *testing.T) {
	_, err := gomponents.Lower(nil)
	assert.Error(t, err)
}
