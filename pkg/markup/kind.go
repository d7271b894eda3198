package markup

// Kind identifies a tag kind. The set is closed.
type Kind int

const (
	// kindInvalid is the kind of a zero Tag, one not created by Build or a
	// child operation.
	kindInvalid Kind = iota
	KindHTML
	KindHead
	KindTitle
	KindBody
	KindParagraph
	// KindText is the pseudo-kind of text leaves. It has no tag name.
	KindText
)

// String returns the tag name of the kind.
func (k Kind) String() string {
	switch k {
	case KindHTML:
		return "html"
	case KindHead:
		return "head"
	case KindTitle:
		return "title"
	case KindBody:
		return "body"
	case KindParagraph:
		return "p"
	case KindText:
		return "#text"
	default:
		return "unknown"
	}
}

// Kinds returns all tag kinds, excluding KindText, in declaration order.
func Kinds() []Kind {
	return []Kind{KindHTML, KindHead, KindTitle, KindBody, KindParagraph}
}

// containment mirrors the child operations each kind exposes.
var containment = map[Kind][]Kind{
	KindHTML:      {KindHead, KindBody},
	KindHead:      {KindTitle},
	KindTitle:     {KindText},
	KindBody:      {KindParagraph},
	KindParagraph: {KindText},
}

// Allowed reports whether a child of kind child may be attached to a tag of
// kind parent.
func Allowed(parent, child Kind) bool {
	for _, k := range containment[parent] {
		if k == child {
			return true
		}
	}
	return false
}

// KindOf returns the kind of e. A nil element yields -1.
func KindOf(e Element) Kind {
	switch t := e.(type) {
	case *TextElement:
		return KindText
	case tagged:
		return t.tag().kind
	default:
		return -1
	}
}
