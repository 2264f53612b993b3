package element

import (
	"io"
	"strings"
)

// Render serializes the element and its subtree to HTML.
func (e *Element) Render() string {
	var b strings.Builder
	w := &renderWriter{w: &b}
	e.render(w)
	return b.String()
}

// String implements fmt.Stringer and returns Render().
func (e *Element) String() string {
	return e.Render()
}

// WriteTo streams the rendered element to w. It implements io.WriterTo.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	rw := &renderWriter{w: w}
	e.render(rw)
	return rw.n, rw.err
}

// render writes the element depth-first: opening tag with attributes,
// text, children in insertion order, then the end tag for closed elements.
func (e *Element) render(w *renderWriter) {
	if e == nil {
		return
	}

	w.write("<")
	w.write(e.tag)
	e.attrs.each(func(name, value string) {
		w.write(" ")
		w.write(name)
		w.write(` = "`)
		w.write(value)
		w.write(`"`)
	})
	w.write(">")

	if !e.closed {
		return
	}

	w.write(e.text)
	for _, child := range e.children {
		child.render(w)
	}

	w.write("</")
	w.write(e.tag)
	w.write(">")
}

// renderWriter keeps the first write error and the byte count.
type renderWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (rw *renderWriter) write(s string) {
	if rw.err != nil || s == "" {
		return
	}
	n, err := io.WriteString(rw.w, s)
	rw.n += int64(n)
	rw.err = err
}
