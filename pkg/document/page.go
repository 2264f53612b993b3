package document

import (
	"io"
	"strings"

	"github.com/vango-dev/gearrs/pkg/element"
)

// Page contains all data needed to render a complete HTML document.
type Page struct {
	// Title is the page title. No <title> is written when empty.
	Title string

	// Lang is set as the lang attribute of the body when not empty and
	// the body has no lang of its own.
	Lang string

	// Meta contains meta tags appended after the default ones.
	Meta []MetaTag

	// Links contains link tags (stylesheets, favicon, etc.)
	Links []LinkTag

	// Body is the page body. An empty <body> is used when nil.
	Body *element.Element
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name      string // name attribute
	Content   string // content attribute
	Property  string // property attribute (for OpenGraph)
	HTTPEquiv string // http-equiv attribute
}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	Rel  string // rel attribute
	Href string // href attribute
	Type string // type attribute
}

// Head builds the page head: the default metas, then the title, the
// extra metas and the links in declaration order.
func (p *Page) Head() *element.Element {
	head := DefaultHead()

	if p.Title != "" {
		head.Add(Text("title", p.Title))
	}

	for _, m := range p.Meta {
		meta := element.New("meta", false)
		setAttr(meta, "name", m.Name)
		setAttr(meta, "property", m.Property)
		setAttr(meta, "http-equiv", m.HTTPEquiv)
		setAttr(meta, "content", m.Content)
		head.Add(meta)
	}

	for _, l := range p.Links {
		link := element.New("link", false)
		setAttr(link, "rel", l.Rel)
		setAttr(link, "href", l.Href)
		setAttr(link, "type", l.Type)
		head.Add(link)
	}

	return head
}

// BodyElement returns a copy of the page body, or an empty <body>.
// A lang already on Body takes precedence over Lang.
func (p *Page) BodyElement() *element.Element {
	var body *element.Element
	if p.Body != nil {
		body = p.Body.Clone()
	} else {
		body = element.New("body", true)
	}
	if _, ok := body.Attr("lang"); !ok && p.Lang != "" {
		body.PushAttr("lang", p.Lang)
	}
	return body
}

// Render returns the assembled document.
func (p *Page) Render() string {
	return Assemble(p.Head(), p.BodyElement())
}

// WriteTo streams the assembled document to w.
func (p *Page) WriteTo(w io.Writer) (int64, error) {
	var total int64

	n, err := io.WriteString(w, Doctype)
	total += int64(n)
	if err != nil {
		return total, err
	}

	m, err := p.Head().WriteTo(w)
	total += m
	if err != nil {
		return total, err
	}

	n, err = io.WriteString(w, "\n")
	total += int64(n)
	if err != nil {
		return total, err
	}

	m, err = p.BodyElement().WriteTo(w)
	total += m
	return total, err
}

func setAttr(el *element.Element, name, value string) {
	if strings.TrimSpace(value) != "" {
		el.PushAttr(name, value)
	}
}
