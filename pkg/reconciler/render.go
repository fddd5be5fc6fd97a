package reconciler

import (
	"fmt"

	vnerrors "github.com/vango-dev/vnative/internal/errors"
	"github.com/vango-dev/vnative/pkg/element"
)

// reconcileChildren matches the new children of parent against its
// committed children and renders each. Children with a key match by key,
// the rest by position.
func (r *Reconciler) reconcileChildren(rs *renderState, parent *Fiber, children any, ctx HostContext) error {
	items := element.Flatten(children)

	existing := make(map[string]*Fiber, len(parent.Children))
	for _, old := range parent.Children {
		existing[matchKey(old.Key, old.Index)] = old
	}

	next := make([]*Fiber, 0, len(items))
	matched := make(map[*Fiber]bool)
	lastPlaced := 0
	// Children of a subtree being mounted are attached by AppendInitialChild
	// and only the subtree's top fiber is placed. Portal children live in
	// another container and are always placed.
	track := !parent.work.mounting || parent.Tag == TagHostPortal

	for i, item := range items {
		proto, err := fiberFor(item)
		if err != nil {
			return err
		}
		k := matchKey(proto.Key, i)

		var f *Fiber
		if old, ok := existing[k]; ok && !matched[old] && old.Tag == proto.Tag && sameType(old.Type, proto.Type) && old.container == proto.container {
			matched[old] = true
			f = old
			f.work = &work{props: proto.Props, text: proto.Text, index: i}
			if old.Index < lastPlaced {
				f.work.flags |= flagPlacement
			} else {
				lastPlaced = old.Index
			}
		} else {
			f = proto
			f.Parent = parent
			f.work = &work{props: proto.Props, text: proto.Text, index: i, mounting: true}
			if track {
				f.work.flags |= flagPlacement
			}
		}

		// Published before beginWork so a failed render can release f.
		next = append(next, f)
		parent.work.children = next
		if err := r.beginWork(rs, f, ctx); err != nil {
			return err
		}
	}

	for _, old := range parent.Children {
		if !matched[old] {
			parent.work.deletions = append(parent.work.deletions, old)
		}
	}
	parent.work.children = next
	return nil
}

// fiberFor builds an unattached fiber describing item.
func fiberFor(item any) (*Fiber, error) {
	switch v := item.(type) {
	case *element.Element:
		if v.Type == nil {
			return nil, vnerrors.New("E002").WithDetailf("element with key %q", v.Key)
		}
		f := &Fiber{Type: v.Type, Key: v.Key, Props: v.Props}
		switch {
		case element.IsFragment(v.Type):
			f.Tag = TagFragment
		default:
			if _, ok := v.HostType(); ok {
				f.Tag = TagHostComponent
			} else if _, ok := element.AsComponent(v.Type); ok {
				f.Tag = TagFunctionComponent
			} else {
				return nil, vnerrors.New("E005").WithDetailf("element type %T", v.Type)
			}
		}
		return f, nil
	case *element.Portal:
		return &Fiber{
			Tag:       TagHostPortal,
			Key:       v.Key,
			Props:     element.Props{element.ChildrenKey: v.Children},
			container: v.Container,
		}, nil
	}
	if element.IsText(item) {
		return &Fiber{Tag: TagHostText, Text: fmt.Sprint(item)}, nil
	}
	return nil, vnerrors.New("E005").WithDetailf("child of type %T", item)
}

// beginWork renders f. New fibers get their views created here; committed
// fibers get an update prepared.
func (r *Reconciler) beginWork(rs *renderState, f *Fiber, ctx HostContext) error {
	w := f.work
	switch f.Tag {
	case TagHostText:
		if f.node == nil {
			f.node = r.host.CreateTextInstance(w.text, rs.root.Container, ctx, f)
		} else if w.text != f.Text {
			w.flags |= flagTextUpdate
		}
		return nil

	case TagHostComponent:
		return r.beginHostComponent(rs, f, ctx)

	case TagFunctionComponent:
		out, err := renderComponent(f, w.props)
		if err != nil {
			return err
		}
		return r.reconcileChildren(rs, f, out, ctx)

	case TagFragment:
		return r.reconcileChildren(rs, f, w.props[element.ChildrenKey], ctx)

	case TagHostPortal:
		portalCtx := r.host.GetRootHostContext(f.container)
		return r.reconcileChildren(rs, f, w.props[element.ChildrenKey], portalCtx)
	}
	return nil
}

func (r *Reconciler) beginHostComponent(rs *renderState, f *Fiber, ctx HostContext) error {
	w := f.work
	typ := f.Type.(string)
	container := rs.root.Container
	childCtx := r.host.GetChildHostContext(ctx, typ, container)
	nextText := r.host.ShouldSetTextContent(typ, w.props)
	if r.host.ShouldDeprioritizeSubtree(typ, w.props) {
		r.logger.Debug("subtree is hidden", "fiber", describe(f))
	}

	if f.node == nil {
		node, err := r.host.CreateInstance(typ, w.props, container, ctx, f)
		if err != nil {
			return err
		}
		f.node = node
		if !nextText {
			if err := r.reconcileChildren(rs, f, w.props[element.ChildrenKey], childCtx); err != nil {
				return err
			}
			for _, c := range w.children {
				for _, n := range topHostNodes(c) {
					r.host.AppendInitialChild(node, n)
				}
			}
		}
		if r.host.FinalizeInitialChildren(node, typ, w.props, container, ctx) {
			w.flags |= flagMount
			rs.mounts = append(rs.mounts, f)
		}
		return nil
	}

	w.payload = r.host.PrepareUpdate(f.node, typ, f.Props, w.props, container, ctx)
	if w.payload != nil {
		w.flags |= flagUpdate
	}
	if r.host.ShouldSetTextContent(typ, f.Props) && !nextText {
		w.flags |= flagResetText
	}

	var children any
	if !nextText {
		children = w.props[element.ChildrenKey]
	}
	return r.reconcileChildren(rs, f, children, childCtx)
}

// renderComponent calls a function component, turning a panic into an
// error so the render aborts instead of crashing the loop.
func renderComponent(f *Fiber, props element.Props) (out any, err error) {
	comp, _ := element.AsComponent(f.Type)
	defer func() {
		if rec := recover(); rec != nil {
			err = vnerrors.New("E004").WithDetailf("%v", rec)
		}
	}()
	return comp(props), nil
}
