package markup

// Walk visits e and its descendants depth-first in document order. fn
// receives each element with its parent, nil for e itself. Returning false
// from fn skips the children of the element.
func Walk(e Element, fn func(e, parent Element) bool) {
	walk(e, nil, fn)
}

func walk(e, parent Element, fn func(e, parent Element) bool) {
	if e == nil || !fn(e, parent) {
		return
	}
	if t, ok := e.(tagged); ok {
		for _, c := range t.tag().children {
			walk(c, e, fn)
		}
	}
}
