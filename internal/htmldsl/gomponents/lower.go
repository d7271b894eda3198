package gomponents

import (
	"bytes"
	"fmt"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/kilianc/htmldsl/pkg/markup"
)

// tag is the read-only view every markup tag kind offers.
type tag interface {
	markup.Element
	Kind() markup.Kind
	Children() []markup.Element
}

// Lower converts a markup element and its subtree to a gomponents node.
// Text is escaped by gomponents.
func Lower(e markup.Element) (g.Node, error) {
	switch t := e.(type) {
	case *markup.TextElement:
		return g.Text(t.Text()), nil
	case tag:
		children, err := LowerNodes(t.Children())
		if err != nil {
			return nil, err
		}
		return htmlElementFunc(t.Kind())(children...), nil
	default:
		return nil, fmt.Errorf("unsupported element type %T", e)
	}
}

// LowerNodes lowers a list of elements, keeping their order.
func LowerNodes(elems []markup.Element) ([]g.Node, error) {
	nodes := make([]g.Node, 0, len(elems))
	for _, e := range elems {
		n, err := Lower(e)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// Document lowers a whole document and prefixes it with the HTML5 doctype.
func Document(root *markup.HTML) (g.Node, error) {
	n, err := Lower(root)
	if err != nil {
		return nil, err
	}
	return h.Doctype(n), nil
}

// RenderDocument renders root as HTML5.
func RenderDocument(root *markup.HTML) ([]byte, error) {
	n, err := Document(root)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := n.Render(&buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

func htmlElementFunc(k markup.Kind) func(...g.Node) g.Node {
	switch k {
	case markup.KindHTML:
		return h.HTML
	case markup.KindHead:
		return h.Head
	case markup.KindTitle:
		return h.TitleEl
	case markup.KindBody:
		return h.Body
	case markup.KindParagraph:
		return h.P
	default:
		name := k.String()
		return func(children ...g.Node) g.Node { return g.El(name, children...) }
	}
}
