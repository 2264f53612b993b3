package element

// Element is one HTML element together with its subtree. The root owns
// every descendant by value.
type Element struct {
	tag      string
	closed   bool
	text     string
	children []*Element
	attrs    Attributes
}

// Pair is a tag name together with its closed flag.
type Pair struct {
	Tag    string
	Closed bool
}

// New creates an element with no text, children or attributes.
// Closed elements render an end tag; void elements do not.
func New(tag string, closed bool) *Element {
	return &Element{tag: tag, closed: closed}
}

// From creates an element from a tag/closed pair. It is equivalent to New.
func From(p Pair) *Element {
	return New(p.Tag, p.Closed)
}

// Tag returns the element's tag name.
func (e *Element) Tag() string {
	return e.tag
}

// IsClosed reports whether the element renders an end tag and accepts content.
func (e *Element) IsClosed() bool {
	return e.closed
}

// SetValue replaces the inner text. It returns ErrUnclosedTag for void
// elements and leaves the text untouched.
func (e *Element) SetValue(value string) error {
	if !e.closed {
		return unclosedTag(e.tag)
	}
	e.text = value
	return nil
}

// AddValue appends value to the inner text and returns e. On void
// elements it does nothing.
func (e *Element) AddValue(value string) *Element {
	if e.closed {
		e.text += value
	}
	return e
}

// Value returns the inner text.
func (e *Element) Value() string {
	return e.text
}

// Add appends a copy of child and returns e. On void elements the child
// is dropped.
func (e *Element) Add(child *Element) *Element {
	if e.closed && child != nil {
		e.children = append(e.children, child.Clone())
	}
	return e
}

// Push appends a copy of child. It returns ErrUnclosedTag for void
// elements, in which case nothing is appended.
func (e *Element) Push(child *Element) error {
	if !e.closed {
		return unclosedTag(e.tag)
	}
	if child != nil {
		e.children = append(e.children, child.Clone())
	}
	return nil
}

// Remove detaches and returns the child at index, shifting the following
// children left. It returns ErrIndexOutOfBounds if no such child exists.
func (e *Element) Remove(index int) (*Element, error) {
	if index < 0 || index >= len(e.children) {
		return nil, indexOutOfBounds(index, len(e.children))
	}
	removed := e.children[index]
	copy(e.children[index:], e.children[index+1:])
	e.children[len(e.children)-1] = nil
	e.children = e.children[:len(e.children)-1]
	return removed, nil
}

// Children returns copies of the children in render order.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	for i, c := range e.children {
		out[i] = c.Clone()
	}
	return out
}

// Len returns the number of children.
func (e *Element) Len() int {
	return len(e.children)
}

// AddAttr merges an attribute and returns e.
func (e *Element) AddAttr(name, value string) *Element {
	e.attrs.Merge(name, value)
	return e
}

// PushAttr merges an attribute in place.
func (e *Element) PushAttr(name, value string) {
	e.attrs.Merge(name, value)
}

// Attr returns the value of a single attribute.
func (e *Element) Attr(name string) (string, bool) {
	return e.attrs.Get(name)
}

// Attrs returns a copy of all attributes.
func (e *Element) Attrs() map[string]string {
	return e.attrs.Map()
}

// AttrNames returns the attribute names in insertion order.
func (e *Element) AttrNames() []string {
	return e.attrs.Names()
}

// Clone returns a deep copy of e.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	c := &Element{
		tag:    e.tag,
		closed: e.closed,
		text:   e.text,
		attrs:  e.attrs.Clone(),
	}
	if len(e.children) > 0 {
		c.children = make([]*Element, len(e.children))
		for i, child := range e.children {
			c.children[i] = child.Clone()
		}
	}
	return c
}
