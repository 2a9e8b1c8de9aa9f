// Package shared holds the layout and the small writer the template
// packages build their markup with. Components are plain Go: each one wraps
// a templ.ComponentFunc and writes HTML through an HTML writer, so the
// project needs no generation step.
package shared

import (
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// HTML accumulates the first write error so components can emit markup
// without checking every call.
type HTML struct {
	w   io.Writer
	err error
}

func NewHTML(w io.Writer) *HTML {
	return &HTML{w: w}
}

// Raw writes s as-is. Only use for markup literals.
func (h *HTML) Raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

// Esc writes s HTML-escaped. Safe for text nodes and attribute values.
func (h *HTML) Esc(s string) {
	h.Raw(templ.EscapeString(s))
}

// F writes a formatted markup literal. Escape dynamic strings with
// templ.EscapeString before passing them in.
func (h *HTML) F(format string, args ...any) {
	if h.err == nil {
		_, h.err = fmt.Fprintf(h.w, format, args...)
	}
}

func (h *HTML) Err() error {
	return h.err
}
