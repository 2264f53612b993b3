package element

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Attributes is an insertion-ordered set of attribute name/value pairs.
// The zero value is empty and ready to use.
type Attributes struct {
	m *orderedmap.OrderedMap[string, string]
}

// Merge adds value under name. An existing value is kept and the new one
// is appended after a single space.
func (a *Attributes) Merge(name, value string) {
	if a.m == nil {
		a.m = orderedmap.New[string, string]()
	}
	if old, ok := a.m.Get(name); ok {
		a.m.Set(name, old+" "+value)
		return
	}
	a.m.Set(name, value)
}

// Get returns the value stored under name.
func (a *Attributes) Get(name string) (string, bool) {
	if a.m == nil {
		return "", false
	}
	return a.m.Get(name)
}

// Len returns the number of distinct attribute names.
func (a *Attributes) Len() int {
	if a.m == nil {
		return 0
	}
	return a.m.Len()
}

// Names returns attribute names in insertion order.
func (a *Attributes) Names() []string {
	names := make([]string, 0, a.Len())
	a.each(func(name, _ string) {
		names = append(names, name)
	})
	return names
}

// Map returns a copy of the attributes as a plain map.
func (a *Attributes) Map() map[string]string {
	out := make(map[string]string, a.Len())
	a.each(func(name, value string) {
		out[name] = value
	})
	return out
}

// Clone returns an independent copy.
func (a *Attributes) Clone() Attributes {
	var c Attributes
	a.each(func(name, value string) {
		if c.m == nil {
			c.m = orderedmap.New[string, string]()
		}
		c.m.Set(name, value)
	})
	return c
}

func (a *Attributes) each(fn func(name, value string)) {
	if a.m == nil {
		return
	}
	for pair := a.m.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}
