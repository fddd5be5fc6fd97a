package widget

import "sort"

// PropertyChangeEvent is the event name fired by NotifyPropertyChange.
const PropertyChangeEvent = "propertyChange"

// Node is a native view in the toolkit tree.
//
// Node is sealed: concrete views embed View and are created through their
// constructor so that Parent reports the outer view.
type Node interface {
	// TypeName returns the type the view was created as (e.g. "Label").
	TypeName() string

	// Parent returns the parent view, or nil for an unattached view.
	Parent() Node

	// Get returns the property value for key, or nil when unset.
	Get(key string) any

	// Set stores a property. A nil value clears the key.
	Set(key string, value any)

	// Props returns a copy of the property bag.
	Props() map[string]any

	// EachChild visits children in order until fn returns false.
	EachChild(fn func(child Node) bool)

	// AddChild inserts child at index; index < 0 or past the end appends.
	// A child that already has a parent is detached from it first.
	AddChild(child Node, index int)

	// RemoveChild detaches child. Removing an absent child is a no-op.
	RemoveChild(child Node)

	// NotifyPropertyChange fires the propertyChange event.
	NotifyPropertyChange(name string, value, oldValue any)

	// On registers a listener for event and returns a handle for Off.
	On(event string, fn Listener) ListenerID

	// Off removes a listener. Unknown IDs are ignored.
	Off(event string, id ListenerID)

	// Notify fires event to its listeners in registration order.
	Notify(event string, data EventData)

	base() *View
}

// Focusable is implemented by views that can take input focus.
type Focusable interface {
	Node
	Focus() bool
	Focused() bool
}

// EventData is passed to listeners.
type EventData struct {
	EventName string
	Object    Node

	// Set for propertyChange.
	PropertyName string
	Value        any
	OldValue     any

	// Payload carries event-specific data (e.g. an item index).
	Payload any
}

// Listener handles a view event.
type Listener func(EventData)

// ListenerID identifies a registered listener.
type ListenerID uint64

type listenerEntry struct {
	id ListenerID
	fn Listener
}

// View is the base implementation shared by every concrete view.
type View struct {
	self     Node
	typeName string
	parent   Node
	props    map[string]any
	children []Node
	single   bool
	focused  bool

	listeners map[string][]listenerEntry
	nextID    ListenerID
}

// initView wires the outer view into its embedded base.
func (v *View) initView(self Node, typeName string, single bool) {
	v.self = self
	v.typeName = typeName
	v.single = single
	v.props = make(map[string]any)
}

func (v *View) base() *View { return v }

// TypeName implements Node.
func (v *View) TypeName() string { return v.typeName }

// Parent implements Node.
func (v *View) Parent() Node { return v.parent }

// Get implements Node.
func (v *View) Get(key string) any {
	return v.props[key]
}

// Set implements Node.
func (v *View) Set(key string, value any) {
	if value == nil {
		delete(v.props, key)
		return
	}
	v.props[key] = value
}

// Props implements Node.
func (v *View) Props() map[string]any {
	out := make(map[string]any, len(v.props))
	for k, val := range v.props {
		out[k] = val
	}
	return out
}

// PropKeys returns the set property keys in sorted order.
func (v *View) PropKeys() []string {
	keys := make([]string, 0, len(v.props))
	for k := range v.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EachChild implements Node.
func (v *View) EachChild(fn func(child Node) bool) {
	// Iterate over a snapshot so fn may mutate the child list.
	snapshot := append([]Node(nil), v.children...)
	for _, c := range snapshot {
		if !fn(c) {
			return
		}
	}
}

// ChildCount returns the number of children.
func (v *View) ChildCount() int { return len(v.children) }

// AddChild implements Node.
func (v *View) AddChild(child Node, index int) {
	if child == nil {
		return
	}
	cb := child.base()
	if cb.parent != nil {
		cb.parent.RemoveChild(child)
	}

	if v.single {
		for _, old := range v.children {
			old.base().parent = nil
		}
		v.children = []Node{child}
		cb.parent = v.self
		return
	}

	if index < 0 || index >= len(v.children) {
		v.children = append(v.children, child)
	} else {
		v.children = append(v.children, nil)
		copy(v.children[index+1:], v.children[index:])
		v.children[index] = child
	}
	cb.parent = v.self
}

// RemoveChild implements Node.
func (v *View) RemoveChild(child Node) {
	if child == nil {
		return
	}
	for i, c := range v.children {
		if c == child {
			v.children = append(v.children[:i], v.children[i+1:]...)
			child.base().parent = nil
			return
		}
	}
}

// NotifyPropertyChange implements Node.
func (v *View) NotifyPropertyChange(name string, value, oldValue any) {
	v.Notify(PropertyChangeEvent, EventData{
		PropertyName: name,
		Value:        value,
		OldValue:     oldValue,
	})
}

// On implements Node.
func (v *View) On(event string, fn Listener) ListenerID {
	if fn == nil {
		return 0
	}
	if v.listeners == nil {
		v.listeners = make(map[string][]listenerEntry)
	}
	v.nextID++
	v.listeners[event] = append(v.listeners[event], listenerEntry{id: v.nextID, fn: fn})
	return v.nextID
}

// Off implements Node.
func (v *View) Off(event string, id ListenerID) {
	entries := v.listeners[event]
	for i, e := range entries {
		if e.id == id {
			v.listeners[event] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of listeners for event.
func (v *View) ListenerCount(event string) int {
	return len(v.listeners[event])
}

// Notify implements Node.
func (v *View) Notify(event string, data EventData) {
	data.EventName = event
	data.Object = v.self
	entries := append([]listenerEntry(nil), v.listeners[event]...)
	for _, e := range entries {
		e.fn(data)
	}
}

// Focus implements Focusable.
func (v *View) Focus() bool {
	v.focused = true
	return true
}

// Focused implements Focusable.
func (v *View) Focused() bool { return v.focused }

// Children returns a copy of n's child list.
func Children(n Node) []Node {
	if n == nil {
		return nil
	}
	return append([]Node(nil), n.base().children...)
}

// IndexOf returns the position of child in parent, or -1.
func IndexOf(parent, child Node) int {
	idx := -1
	i := 0
	parent.EachChild(func(c Node) bool {
		if c == child {
			idx = i
			return false
		}
		i++
		return true
	})
	return idx
}

// IsSingleChild reports whether n holds at most one child.
func IsSingleChild(n Node) bool {
	return n != nil && n.base().single
}
