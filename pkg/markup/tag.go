package markup

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrSealed is the panic value (wrapped) raised when a child is attached to a
// tag whose configure callback has already returned.
var ErrSealed = errors.New("markup: tag is sealed")

// ErrNotBuilt is the panic value (wrapped) raised when a child is attached to
// a zero tag value, e.g. &markup.Body{}.
var ErrNotBuilt = errors.New("markup: tag not created by Build")

// tagged is implemented by *Tag and, through embedding, by every tag kind.
type tagged interface {
	Element
	tag() *Tag
}

// Tag is the common part of all tag kinds: a name and an ordered list of
// owned children. Children are only added through the kind specific methods.
type Tag struct {
	kind     Kind
	children []Element
	// sealed is set once the configure callback that populated this tag has
	// returned.
	sealed bool
}

func (*Tag) element() {}

func (t *Tag) tag() *Tag {
	return t
}

// Name returns the tag name, e.g. "p".
func (t *Tag) Name() string {
	return t.kind.String()
}

// Kind returns the kind of the tag.
func (t *Tag) Kind() Kind {
	return t.kind
}

// Children returns a copy of the child list in document order.
func (t *Tag) Children() []Element {
	return slices.Clone(t.children)
}

// Sealed reports whether the tag no longer accepts children.
func (t *Tag) Sealed() bool {
	return t.sealed
}

// Render returns "<name>\n", the rendering of every child in order and
// "</name>\n".
func (t *Tag) Render() string {
	var b strings.Builder
	t.writeTo(&b)
	return b.String()
}

func (t *Tag) String() string {
	return t.Render()
}

func (t *Tag) writeTo(b *strings.Builder) {
	b.WriteString("<")
	b.WriteString(t.Name())
	b.WriteString(">\n")
	for _, c := range t.children {
		switch c := c.(type) {
		case *TextElement:
			b.WriteString(c.text)
			b.WriteString("\n")
		case tagged:
			c.tag().writeTo(b)
		}
	}
	b.WriteString("</")
	b.WriteString(t.Name())
	b.WriteString(">\n")
}

func (t *Tag) mustBeOpen() {
	if t.kind == kindInvalid {
		panic(fmt.Errorf("%w: zero value of a tag type cannot hold children", ErrNotBuilt))
	}
	if t.sealed {
		panic(fmt.Errorf("%w: cannot attach to <%s> after its configure callback returned", ErrSealed, t.Name()))
	}
}

// attach is the only way a child tag enters a tree: configure populates the
// child, then the child is sealed and appended to parent.
func attach[T tagged](parent *Tag, child T, configure func(T)) T {
	parent.mustBeOpen()
	if configure != nil {
		configure(child)
	}
	child.tag().sealed = true
	parent.children = append(parent.children, child)
	return child
}

// TagWithText is a Tag that also accepts literal text children.
type TagWithText struct {
	Tag
}

// AddText appends a text leaf holding s verbatim.
func (t *TagWithText) AddText(s string) {
	t.mustBeOpen()
	t.children = append(t.children, &TextElement{text: s})
}
