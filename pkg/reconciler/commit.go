package reconciler

import "github.com/vango-dev/vnative/pkg/widget"

// commitRoot applies the pending work under rootFiber to the native tree,
// promotes it to the committed tree and runs mount hooks.
func (r *Reconciler) commitRoot(rs *renderState, rootFiber *Fiber) {
	container := rs.root.Container
	r.host.PrepareForCommit(container)
	r.commitWork(rs, rootFiber)
	r.host.ResetAfterCommit(container)

	finalize(rootFiber)

	for _, f := range rs.mounts {
		r.host.CommitMount(f.node, f.TypeName(), f.Props, f)
	}
}

// commitWork commits f's subtree. Removals go first so an insert never
// lands next to a view that is about to leave.
func (r *Reconciler) commitWork(rs *renderState, f *Fiber) {
	w := f.work
	if w == nil {
		return
	}

	for _, d := range w.deletions {
		r.commitDeletion(rs, f, d)
	}
	if w.flags&flagResetText != 0 {
		r.host.ResetTextContent(f.node)
	}

	for _, c := range w.children {
		r.commitWork(rs, c)
	}

	if w.flags&flagPlacement != 0 {
		r.commitPlacement(rs, f)
	}
	if w.flags&flagUpdate != 0 {
		r.host.CommitUpdate(f.node, w.payload, f.TypeName(), f.Props, w.props, f)
	}
	if w.flags&flagTextUpdate != 0 {
		r.host.CommitTextUpdate(f.node, f.Text, w.text)
	}
}

// hostParent returns the nearest ancestor that owns native children.
func hostParent(f *Fiber) *Fiber {
	p := f.Parent
	for p != nil && !p.isHostParent() {
		p = p.Parent
	}
	return p
}

// target resolves the view a host parent fiber inserts into and whether it
// is a container (root or portal).
func (r *Reconciler) target(rs *renderState, parent *Fiber) (widget.Node, bool) {
	switch parent.Tag {
	case TagHostRoot:
		return rs.root.Container, true
	case TagHostPortal:
		return parent.container, true
	}
	return parent.node, false
}

func (r *Reconciler) commitPlacement(rs *renderState, f *Fiber) {
	parent := hostParent(f)
	if parent == nil {
		return
	}
	into, isContainer := r.target(rs, parent)
	if into == nil {
		// Detached root.
		return
	}
	before := hostSibling(f)

	for _, n := range topHostNodes(f) {
		switch {
		case before != nil && isContainer:
			r.host.InsertInContainerBefore(into, n, before)
		case before != nil:
			r.host.InsertBefore(into, n, before)
		case isContainer:
			r.host.AppendChildToContainer(into, n)
		default:
			r.host.AppendChild(into, n)
		}
	}
}

// hostSibling finds the first view after f under the same host parent that
// is already in place, or nil when f goes last.
func hostSibling(f *Fiber) widget.Node {
	for cur := f; cur != nil; {
		parent := cur.Parent
		if parent == nil {
			return nil
		}
		siblings := parent.children()
		for i := indexOf(siblings, cur) + 1; i < len(siblings); i++ {
			if n := firstPlacedNode(siblings[i]); n != nil {
				return n
			}
		}
		if parent.isHostParent() {
			return nil
		}
		cur = parent
	}
	return nil
}

// firstPlacedNode returns the first view of f that is not itself waiting
// for placement.
func firstPlacedNode(f *Fiber) widget.Node {
	if f.has(flagPlacement) {
		return nil
	}
	switch f.Tag {
	case TagHostComponent, TagHostText:
		return f.node
	case TagHostPortal:
		return nil
	}
	for _, c := range f.children() {
		if n := firstPlacedNode(c); n != nil {
			return n
		}
	}
	return nil
}

func indexOf(list []*Fiber, f *Fiber) int {
	for i, c := range list {
		if c == f {
			return i
		}
	}
	return -1
}

// commitDeletion detaches d from the native tree. parent is the fiber d was
// a child of.
func (r *Reconciler) commitDeletion(rs *renderState, parent, d *Fiber) {
	hp := parent
	if !hp.isHostParent() {
		hp = hostParent(parent)
	}
	if hp != nil {
		if from, isContainer := r.target(rs, hp); from != nil {
			for _, n := range topHostNodes(d) {
				if isContainer {
					r.host.RemoveChildFromContainer(from, n)
				} else {
					r.host.RemoveChild(from, n)
				}
			}
		}
	}
	r.unmountPortals(d)
	r.logger.Debug("fiber deleted", "fiber", describe(d))
}

// unmountPortals removes the content of every portal under f from its
// container; it is not reachable through f's own views.
func (r *Reconciler) unmountPortals(f *Fiber) {
	if f.Tag == TagHostPortal {
		if f.container != nil {
			for _, c := range f.Children {
				for _, n := range topHostNodes(c) {
					r.host.RemoveChildFromContainer(f.container, n)
				}
			}
		}
	}
	for _, c := range f.Children {
		r.unmountPortals(c)
	}
}
