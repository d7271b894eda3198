package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianc/htmldsl/internal/htmldsl/compile"
	"github.com/kilianc/htmldsl/pkg/jsonobj"
	"github.com/kilianc/htmldsl/pkg/markup"
)

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print a sample document and a sample JSON object",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := compile.Render(sampleDocument(), cfg.OutputFormat())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if _, err := fmt.Fprintf(w, "%s\n", out); err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, sampleObject().Pretty())
		return err
	},
}

func sampleDocument() *markup.HTML {
	return markup.Build(func(h *markup.HTML) {
		h.Head(func(hd *markup.Head) {
			hd.Title(func(t *markup.Title) { t.AddText("Document Title") })
		})
		h.Body(func(b *markup.Body) {
			b.P(func(p *markup.Paragraph) { p.AddText("Hello, World!") })
		})
	})
}

func sampleObject() *jsonobj.Object {
	return jsonobj.Obj(func(o *jsonobj.Object) {
		o.Set("property", jsonobj.String("value"))
		o.Arr("array", jsonobj.Int(1), jsonobj.Int(2), jsonobj.Int(3))
		o.Set("null", jsonobj.Null())
		o.Obj("empty", nil)
	})
}
