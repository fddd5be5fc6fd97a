package reconciler

import (
	"reflect"
	"strconv"

	"github.com/google/uuid"

	"github.com/vango-dev/vnative/pkg/element"
	"github.com/vango-dev/vnative/pkg/widget"
)

// Tag is the fiber type discriminator.
type Tag uint8

const (
	TagHostRoot          Tag = iota // Root of a container
	TagHostComponent                // Native view
	TagHostText                     // Text instance
	TagFunctionComponent            // element.Component
	TagFragment                     // element.Fragment
	TagHostPortal                   // element.Portal
)

// String returns the string representation of the Tag.
func (t Tag) String() string {
	switch t {
	case TagHostRoot:
		return "HostRoot"
	case TagHostComponent:
		return "HostComponent"
	case TagHostText:
		return "HostText"
	case TagFunctionComponent:
		return "FunctionComponent"
	case TagFragment:
		return "Fragment"
	case TagHostPortal:
		return "HostPortal"
	default:
		return "Unknown"
	}
}

type flags uint8

const (
	flagPlacement flags = 1 << iota
	flagUpdate
	flagTextUpdate
	flagResetText
	flagMount
)

// work holds the render phase result for a fiber until commit.
type work struct {
	props     element.Props
	text      string
	index     int
	children  []*Fiber
	deletions []*Fiber
	payload   UpdatePayload
	flags     flags
	mounting  bool
}

// Fiber is one node of the committed tree. It is the OpaqueHandle handed to
// the host config.
type Fiber struct {
	Tag   Tag
	Type  any
	Key   string
	Index int
	Props element.Props
	Text  string

	Parent   *Fiber
	Children []*Fiber

	node      widget.Node
	container widget.Node // HostPortal target
	work      *work
}

// StateNode implements OpaqueHandle. It is nil for fibers without a view.
func (f *Fiber) StateNode() widget.Node {
	return f.node
}

var _ OpaqueHandle = (*Fiber)(nil)

// Container returns the portal container, or nil.
func (f *Fiber) Container() widget.Node {
	return f.container
}

// TypeName returns the host tag, or a readable name for other fibers.
func (f *Fiber) TypeName() string {
	if s, ok := f.Type.(string); ok {
		return s
	}
	return f.Tag.String()
}

// children returns the pending child list during a render, else the
// committed one.
func (f *Fiber) children() []*Fiber {
	if f.work != nil {
		return f.work.children
	}
	return f.Children
}

func (f *Fiber) has(fl flags) bool {
	return f.work != nil && f.work.flags&fl != 0
}

func (f *Fiber) isHostParent() bool {
	return f.Tag == TagHostComponent || f.Tag == TagHostRoot || f.Tag == TagHostPortal
}

// matchKey identifies a child among its siblings.
func matchKey(key string, index int) string {
	if key != "" {
		return "k:" + key
	}
	return "i:" + strconv.Itoa(index)
}

// sameType compares element types. Components are funcs and are compared
// by code pointer.
func sameType(a, b any) bool {
	ca, aok := element.AsComponent(a)
	cb, bok := element.AsComponent(b)
	if aok || bok {
		if !aok || !bok {
			return false
		}
		return reflect.ValueOf(ca).Pointer() == reflect.ValueOf(cb).Pointer()
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}

// FiberRoot is the reconciler-held handle for a container.
type FiberRoot struct {
	ID        uuid.UUID
	Container widget.Node
	Async     bool

	current *Fiber
	pending widget.TimerID
	lastErr error
}

// Current returns the committed HostRoot fiber.
func (r *FiberRoot) Current() *Fiber { return r.current }

// LastError returns the error from the most recent deferred update.
func (r *FiberRoot) LastError() error { return r.lastErr }

// HostNodes returns the top-level views committed under the root.
func (r *FiberRoot) HostNodes() []widget.Node {
	var out []widget.Node
	for _, c := range r.current.Children {
		out = append(out, topHostNodes(c)...)
	}
	return out
}

// topHostNodes returns the outermost views owned by f, skipping portals.
func topHostNodes(f *Fiber) []widget.Node {
	switch f.Tag {
	case TagHostComponent, TagHostText:
		return []widget.Node{f.node}
	case TagHostPortal:
		return nil
	}
	var out []widget.Node
	for _, c := range f.children() {
		out = append(out, topHostNodes(c)...)
	}
	return out
}
