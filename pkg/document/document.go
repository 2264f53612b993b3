package document

import (
	"github.com/vango-dev/gearrs/pkg/element"
)

// Doctype is written before the head of every assembled document.
const Doctype = "<!DOCTYPE html>\n"

// DefaultHead returns a <head> holding a viewport meta followed by a
// charset meta.
func DefaultHead() *element.Element {
	charset := element.New("meta", false).AddAttr("charset", "utf-8")
	viewport := element.New("meta", false).
		AddAttr("name", "viewport").
		AddAttr("content", "width=device-width, initial-scale=1")

	return element.New("head", true).
		Add(viewport).
		Add(charset)
}

// Assemble renders head and body and joins them under the doctype.
func Assemble(head, body *element.Element) string {
	return Doctype + head.Render() + "\n" + body.Render()
}

// Wrap returns a new <div> holding a copy of child.
func Wrap(child *element.Element) *element.Element {
	return element.New("div", true).Add(child)
}

// Text returns a closed element whose inner text is text.
func Text(tag, text string) *element.Element {
	return element.New(tag, true).AddValue(text)
}
