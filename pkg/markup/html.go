package markup

// HTML is the document root. It accepts Head and Body children.
type HTML struct {
	Tag
}

// Head adds a metadata section.
func (h *HTML) Head(configure func(*Head)) *Head {
	return attach(&h.Tag, &Head{Tag{kind: KindHead}}, configure)
}

// Body adds a body section.
func (h *HTML) Body(configure func(*Body)) *Body {
	return attach(&h.Tag, &Body{Tag{kind: KindBody}}, configure)
}

// Head is the metadata section. It accepts Title children.
type Head struct {
	Tag
}

// Title adds a title.
func (h *Head) Title(configure func(*Title)) *Title {
	return attach(&h.Tag, &Title{TagWithText{Tag{kind: KindTitle}}}, configure)
}

// Title holds text only.
type Title struct {
	TagWithText
}

// Body accepts Paragraph children.
type Body struct {
	Tag
}

// P adds a paragraph.
func (b *Body) P(configure func(*Paragraph)) *Paragraph {
	return attach(&b.Tag, &Paragraph{TagWithText{Tag{kind: KindParagraph}}}, configure)
}

// Paragraph holds text only.
type Paragraph struct {
	TagWithText
}

// Build creates a document root, lets configure populate it and returns it
// sealed. Panics raised by configure propagate to the caller.
func Build(configure func(*HTML)) *HTML {
	h := &HTML{Tag{kind: KindHTML}}
	if configure != nil {
		configure(h)
	}
	h.sealed = true
	return h
}

// TryBuild is Build for callbacks that can fail. If configure returns an
// error, the partially built tree is dropped and the error is returned as is.
func TryBuild(configure func(*HTML) error) (*HTML, error) {
	var err error
	h := Build(func(h *HTML) {
		if configure != nil {
			err = configure(h)
		}
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}
