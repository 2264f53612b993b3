// Package element provides an in-memory HTML element tree and its
// serialization to markup.
//
// An Element is a tag plus a closed flag fixed at construction, inner
// text, an ordered list of children and a set of attributes. Closed
// elements render a matching end tag and may hold text and children.
// Void elements (closed == false) such as <meta> or <input> never do.
//
// # Builder and Mutation APIs
//
// Elements are assembled either through chainable builder methods or
// through in-place mutation methods:
//
//	div := element.New("div", true).
//	    AddAttr("class", "card").
//	    AddValue("Hello").
//	    Add(element.New("p", true))
//
//	if err := div.Push(element.New("span", true)); err != nil {
//	    return err
//	}
//
// The two APIs treat void elements differently. Add and AddValue drop
// content silently so chains keep flowing, while Push and SetValue return
// ErrUnclosedTag. Attributes are accepted on every element.
//
// # Value Semantics
//
// Add and Push store a deep copy of the child. Changing the child later
// does not change the parent, and Children returns copies as well, so a
// tree is never shared between two owners.
//
// # Rendering
//
// Render produces <tag key = "value">text children</tag>. Attributes are
// written in insertion order, a repeated key having its values joined by
// a single space. Text always precedes the children. Nothing is escaped:
// tag names, attribute values and text are written verbatim.
package element
