// Package compile turns .htmldsl scripts into rendered markup.
package compile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/kilianc/htmldsl/internal/htmldsl/ast"
	"github.com/kilianc/htmldsl/internal/htmldsl/gomponents"
	"github.com/kilianc/htmldsl/pkg/markup"
)

// Format selects the output representation.
type Format string

const (
	// FormatText is the canonical line-oriented rendering of package markup.
	FormatText Format = "text"
	// FormatHTML is escaped HTML5 with a doctype.
	FormatHTML Format = "html"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat accepts "text" or "html", case-insensitively. The empty string
// yields FormatText.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatText):
		return FormatText, nil
	case string(FormatHTML):
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w %q (want text or html)", ErrUnknownFormat, s)
	}
}

// Extension returns the suffix appended to a source path for generated files.
func (f Format) Extension() string {
	if f == FormatHTML {
		return ".html"
	}
	return ".txt"
}

type Options struct {
	Format Format
}

// CompileFile parses src, builds the document and renders it.
func CompileFile(path string, src []byte, opts Options) ([]byte, error) {
	doc, err := ast.Parse(path, src)
	if err != nil {
		return nil, err
	}
	root, err := Build(doc)
	if err != nil {
		return nil, err
	}
	return Render(root, opts.Format)
}

// Render renders a built document in the given format.
func Render(root *markup.HTML, format Format) ([]byte, error) {
	switch format {
	case "", FormatText:
		return []byte(root.Render()), nil
	case FormatHTML:
		return gomponents.RenderDocument(root)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// Build replays a parsed script through the markup builder. Only the
// nestings the builder offers are accepted.
func Build(doc *ast.Document) (*markup.HTML, error) {
	if doc == nil || doc.Root == nil {
		return nil, errors.New("empty document")
	}
	if doc.Root.Name != markup.KindHTML.String() {
		return nil, posErrorf(doc.Root.Pos, "root must be <%s>, got <%s>", markup.KindHTML, doc.Root.Name)
	}

	b := &builder{}
	root := markup.Build(func(h *markup.HTML) {
		b.html(h, doc.Root)
	})
	if b.err != nil {
		return nil, b.err
	}
	return root, nil
}

var kindsByName = func() map[string]markup.Kind {
	m := map[string]markup.Kind{}
	for _, k := range markup.Kinds() {
		m[k.String()] = k
	}
	return m
}()

// builder keeps the first error. Once set, the remaining script is skipped.
type builder struct {
	err error
}

func (b *builder) html(h *markup.HTML, el *ast.Element) {
	b.children(markup.KindHTML, el, nil, func(c *ast.Element, k markup.Kind) {
		switch k {
		case markup.KindHead:
			h.Head(func(hd *markup.Head) { b.head(hd, c) })
		case markup.KindBody:
			h.Body(func(bd *markup.Body) { b.body(bd, c) })
		}
	})
}

func (b *builder) head(h *markup.Head, el *ast.Element) {
	b.children(markup.KindHead, el, nil, func(c *ast.Element, k markup.Kind) {
		if k == markup.KindTitle {
			h.Title(func(t *markup.Title) { b.text(markup.KindTitle, c, t.AddText) })
		}
	})
}

func (b *builder) body(bd *markup.Body, el *ast.Element) {
	b.children(markup.KindBody, el, nil, func(c *ast.Element, k markup.Kind) {
		if k == markup.KindParagraph {
			bd.P(func(p *markup.Paragraph) { b.text(markup.KindParagraph, c, p.AddText) })
		}
	})
}

func (b *builder) text(kind markup.Kind, el *ast.Element, add func(string)) {
	b.children(kind, el, add, nil)
}

// children checks every child of el against the containment rules of kind
// and hands the legal ones to onText or onElement.
func (b *builder) children(kind markup.Kind, el *ast.Element, onText func(string), onElement func(*ast.Element, markup.Kind)) {
	for _, n := range el.Nodes() {
		if b.err != nil {
			return
		}
		switch n := n.(type) {
		case *ast.Text:
			if !markup.Allowed(kind, markup.KindText) || onText == nil {
				b.err = posErrorf(n.Pos, "text is not allowed inside <%s>", kind)
				return
			}
			onText(n.Value)
		case *ast.Element:
			k, ok := kindsByName[n.Name]
			if !ok {
				b.err = posErrorf(n.Pos, "unknown tag <%s>", n.Name)
				return
			}
			if !markup.Allowed(kind, k) || onElement == nil {
				b.err = posErrorf(n.Pos, "<%s> is not allowed inside <%s>", k, kind)
				return
			}
			onElement(n, k)
		}
	}
}

func posErrorf(pos lexer.Position, format string, args ...any) error {
	return fmt.Errorf("%s: %s", pos, fmt.Sprintf(format, args...))
}
