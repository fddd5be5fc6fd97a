package hostconfig

import (
	"sync"

	"github.com/vango-dev/vnative/pkg/element"
	"github.com/vango-dev/vnative/pkg/reconciler"
	"github.com/vango-dev/vnative/pkg/widget"
)

// entry is the metadata held for one view.
type entry struct {
	handle reconciler.OpaqueHandle
	props  element.Props
	bound  map[string]bool
}

// Registry maps views to their reconciler handle and last-committed props.
// Views are keyed by identity, so nothing is written onto the view itself.
type Registry struct {
	mu      sync.RWMutex
	entries map[widget.Node]*entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[widget.Node]*entry)}
}

func (r *Registry) get(node widget.Node) *entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[node]
}

func (r *Registry) ensure(node widget.Node) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entries[node]
	if e == nil {
		e = &entry{}
		r.entries[node] = e
	}
	return e
}

// AttachHandle associates handle with node, replacing any previous handle.
func (r *Registry) AttachHandle(node widget.Node, handle reconciler.OpaqueHandle) {
	if node == nil {
		return
	}
	e := r.ensure(node)
	r.mu.Lock()
	e.handle = handle
	r.mu.Unlock()
}

// FindHandle returns the handle attached directly to node.
func (r *Registry) FindHandle(node widget.Node) (reconciler.OpaqueHandle, bool) {
	if node == nil {
		return nil, false
	}
	e := r.get(node)
	if e == nil || e.handle == nil {
		return nil, false
	}
	return e.handle, true
}

// FindClosestHandle walks from node up through its parents and returns the
// first attached handle. It reports false when the walk reaches the top of
// the tree, meaning node is not part of a managed tree.
func (r *Registry) FindClosestHandle(node widget.Node) (reconciler.OpaqueHandle, bool) {
	for n := node; n != nil; n = n.Parent() {
		if h, ok := r.FindHandle(n); ok {
			return h, true
		}
	}
	return nil, false
}

// NodeForHandle returns the view handle designates.
func NodeForHandle(handle reconciler.OpaqueHandle) widget.Node {
	return handle.StateNode()
}

// CachedProps returns the last-committed props of node, or nil.
func (r *Registry) CachedProps(node widget.Node) element.Props {
	if node == nil {
		return nil
	}
	e := r.get(node)
	if e == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return e.props
}

// SetCachedProps records props as the last-committed props of node.
func (r *Registry) SetCachedProps(node widget.Node, props element.Props) {
	if node == nil {
		return
	}
	e := r.ensure(node)
	r.mu.Lock()
	e.props = props
	r.mu.Unlock()
}

// bind records that events named event on node are routed through the
// registry. It reports false when that was already the case.
func (r *Registry) bind(node widget.Node, event string) bool {
	e := r.ensure(node)
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.bound[event] {
		return false
	}
	if e.bound == nil {
		e.bound = make(map[string]bool)
	}
	e.bound[event] = true
	return true
}

// Forget drops node and its whole subtree from the registry.
func (r *Registry) Forget(node widget.Node) {
	if node == nil {
		return
	}
	r.mu.Lock()
	delete(r.entries, node)
	r.mu.Unlock()
	node.EachChild(func(c widget.Node) bool {
		r.Forget(c)
		return true
	})
}

// Len returns the number of tracked views.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Reset drops every entry.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.entries = make(map[widget.Node]*entry)
	r.mu.Unlock()
}
