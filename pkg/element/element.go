// Package element describes the declared UI tree handed to the reconciler.
//
// An Element pairs a type with its props. Host elements use a string type
// naming a registered view ("StackLayout", "Label"); composite elements use a
// Component. Children live under the "children" prop, mirroring how the
// reconciler and host config see them: a single child is stored unwrapped,
// several children as a []any, and no children leaves the prop unset.
//
//	el := element.Create("StackLayout", element.Props{"orientation": "vertical"},
//	    element.Create("Label", nil, "Hello"),
//	    element.Create("Button", element.Props{"onTap": tap}, "Go"),
//	)
package element

import "github.com/vango-dev/vnative/pkg/widget"

// ChildrenKey is the prop holding an element's children.
const ChildrenKey = "children"

// Props is one snapshot of an element's declared attributes.
type Props map[string]any

// Clone returns a shallow copy of p. A nil Props clones to an empty map.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Has reports whether key is present, even with a nil value.
func (p Props) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Component renders props into a child node list.
type Component func(props Props) any

// AsComponent returns t as a Component when it is a non-nil render func.
func AsComponent(t any) (Component, bool) {
	switch c := t.(type) {
	case Component:
		return c, c != nil
	case func(Props) any:
		return Component(c), c != nil
	}
	return nil, false
}

// fragmentType marks Fragment elements.
type fragmentType struct{}

// Fragment groups children without a host view of its own.
var Fragment any = fragmentType{}

// IsFragment reports whether t is the Fragment type.
func IsFragment(t any) bool {
	_, ok := t.(fragmentType)
	return ok
}

// Element is an immutable element descriptor.
type Element struct {
	Type  any
	Key   string
	Props Props
}

// Create builds an element. The "key" prop, if present, is lifted into Key
// and removed from Props.
func Create(typ any, props Props, children ...any) *Element {
	p := props.Clone()
	var key string
	if k, ok := p["key"].(string); ok {
		key = k
		delete(p, "key")
	}
	switch len(children) {
	case 0:
	case 1:
		p[ChildrenKey] = children[0]
	default:
		p[ChildrenKey] = append([]any(nil), children...)
	}
	return &Element{Type: typ, Key: key, Props: p}
}

// WithKey returns a copy of e with key set.
func (e *Element) WithKey(key string) *Element {
	cp := *e
	cp.Key = key
	return &cp
}

// HostType returns the host tag and true when e is a host element.
func (e *Element) HostType() (string, bool) {
	s, ok := e.Type.(string)
	return s, ok
}

// Children returns the children prop.
func (e *Element) Children() any {
	return e.Props[ChildrenKey]
}

// Portal renders Children into Container, independently of where the portal
// sits in the tree.
type Portal struct {
	Children  any
	Container widget.Node
	Key       string
}

// IsText reports whether v is rendered as text content (string or number).
func IsText(v any) bool {
	switch v.(type) {
	case string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// Flatten normalises a children value into a flat list, skipping nil and
// boolean entries the way conditional rendering expects.
func Flatten(children any) []any {
	var out []any
	flattenInto(&out, children)
	return out
}

func flattenInto(out *[]any, v any) {
	switch c := v.(type) {
	case nil, bool:
	case []any:
		for _, item := range c {
			flattenInto(out, item)
		}
	case []*Element:
		for _, item := range c {
			if item != nil {
				*out = append(*out, item)
			}
		}
	case *Element:
		if c != nil {
			*out = append(*out, c)
		}
	default:
		*out = append(*out, v)
	}
}
