// Package markup builds typed trees of markup tags through scoped callbacks
// and renders them to a canonical line-oriented text form.
//
//	doc := markup.Build(func(h *markup.HTML) {
//		h.Head(func(hd *markup.Head) {
//			hd.Title(func(t *markup.Title) { t.AddText("Intro") })
//		})
//	})
//	fmt.Print(doc.Render())
//
// Which children a tag accepts is decided by the methods its type exposes,
// so an illegal nesting does not compile.
package markup

// Element is a node of a markup tree. The set of implementations is closed:
// *TextElement and the tag kinds of this package.
type Element interface {
	// Render returns the canonical text of the element and its subtree.
	Render() string
	element()
}

// TextElement is a literal text leaf. It is created by TagWithText.AddText.
type TextElement struct {
	text string
}

func (*TextElement) element() {}

// Text returns the payload as given, without the trailing newline.
func (t *TextElement) Text() string {
	return t.text
}

// Render returns the payload followed by a single newline. No escaping is
// applied.
func (t *TextElement) Render() string {
	return t.text + "\n"
}

func (t *TextElement) String() string {
	return t.Render()
}
