package main

import (
	"github.com/vango-dev/gearrs/internal/config"
	"github.com/vango-dev/gearrs/pkg/document"
	"github.com/vango-dev/gearrs/pkg/element"
)

// buildPage assembles the document described by the config: the text in
// a paragraph wrapped in a div.
func buildPage(doc config.DocumentConfig) *document.Page {
	body := element.New("body", true).
		Add(document.Wrap(document.Text("p", doc.Text)))

	return &document.Page{
		Title: doc.Title,
		Lang:  doc.Lang,
		Body:  body,
	}
}
