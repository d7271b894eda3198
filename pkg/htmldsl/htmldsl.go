// Package htmldsl compiles .htmldsl scripts, the textual form of the
// markup builder, into rendered documents.
package htmldsl

import "github.com/kilianc/htmldsl/internal/htmldsl/compile"

// Format selects between the canonical text rendering and HTML5.
type Format = compile.Format

const (
	FormatText = compile.FormatText
	FormatHTML = compile.FormatHTML
)

// CompileFile compiles a script such as
//
//	html { head { title { + "Intro" } } body { p { + "Hello" } } }
//
// and renders it in the given format. Errors point at path:line:col.
//
// The result is suitable for writing to "<path>.txt" or "<path>.html".
func CompileFile(path string, src []byte, format Format) ([]byte, error) {
	return compile.CompileFile(path, src, compile.Options{Format: format})
}
