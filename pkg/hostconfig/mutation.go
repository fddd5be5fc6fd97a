package hostconfig

import (
	"fmt"

	"github.com/vango-dev/vnative/pkg/element"
	"github.com/vango-dev/vnative/pkg/reconciler"
	"github.com/vango-dev/vnative/pkg/widget"
)

// CustomHierarchyManager is implemented by views that manage their own
// children. Each method returns true when it handled the operation, false
// to fall through to the default behavior.
type CustomHierarchyManager interface {
	CustomAppendChild(child widget.Node) bool
	CustomRemoveChild(child widget.Node) bool
	CustomInsertBefore(child, beforeChild widget.Node) bool
}

// AppendInitialChild appends child to a parent that is still being built.
func (h *HostConfig) AppendInitialChild(parent, child widget.Node) {
	parent.AddChild(child, -1)
}

// AppendChild appends child to parent. A parent that holds a single child
// has its content replaced.
func (h *HostConfig) AppendChild(parent, child widget.Node) {
	h.appendChild("appendChild", parent, child)
}

// AppendChildToContainer appends child to a root container.
func (h *HostConfig) AppendChildToContainer(container, child widget.Node) {
	h.appendChild("appendChildToContainer", container, child)
}

func (h *HostConfig) appendChild(op string, parent, child widget.Node) {
	if m, ok := parent.(CustomHierarchyManager); ok && m.CustomAppendChild(child) {
		return
	}
	// A Page is shown by navigating a Frame to it, never by appending it.
	if _, isPage := child.(*widget.Page); isPage {
		if _, isFrame := parent.(*widget.Frame); !isFrame {
			h.logger.Debug("page not appended outside a frame", "op", op, "parent", parent.TypeName())
			return
		}
	}

	h.metrics.mutation(op)
	if widget.IsSingleChild(parent) {
		if holder, ok := parent.(widget.ContentHolder); ok {
			holder.SetContent(child)
			return
		}
	}
	parent.AddChild(child, -1)
}

// InsertBefore inserts child in front of beforeChild. When beforeChild is
// not a child of parent the insert falls back to an append, and a
// diagnostic is logged.
func (h *HostConfig) InsertBefore(parent, child, beforeChild widget.Node) {
	h.insertBefore("insertBefore", parent, child, beforeChild)
}

// InsertInContainerBefore is InsertBefore for a root container.
func (h *HostConfig) InsertInContainerBefore(container, child, beforeChild widget.Node) {
	h.insertBefore("insertInContainerBefore", container, child, beforeChild)
}

func (h *HostConfig) insertBefore(op string, parent, child, beforeChild widget.Node) {
	if m, ok := parent.(CustomHierarchyManager); ok && m.CustomInsertBefore(child, beforeChild) {
		return
	}
	if widget.IsSingleChild(parent) {
		h.appendChild(op, parent, child)
		return
	}
	h.metrics.mutation(op)

	// Detach first so the scan sees the list child will be inserted into.
	if p := child.Parent(); p != nil {
		p.RemoveChild(child)
	}
	index := scanIndex(parent, beforeChild)
	if index < 0 {
		h.warn(op, "reference child not found; appending", "parent", parent.TypeName(), "child", child.TypeName())
	}
	parent.AddChild(child, index)
}

// scanIndex returns the position of target among parent's children, or -1.
func scanIndex(parent, target widget.Node) int {
	index, i := -1, 0
	parent.EachChild(func(c widget.Node) bool {
		if c == target {
			index = i
			return false
		}
		i++
		return true
	})
	return index
}

// RemoveChild detaches child from parent and forgets the removed subtree.
// Removing a child that is not there is a no-op.
func (h *HostConfig) RemoveChild(parent, child widget.Node) {
	h.removeChild("removeChild", parent, child)
}

// RemoveChildFromContainer is RemoveChild for a root container.
func (h *HostConfig) RemoveChildFromContainer(container, child widget.Node) {
	h.removeChild("removeChildFromContainer", container, child)
}

func (h *HostConfig) removeChild(op string, parent, child widget.Node) {
	defer h.registry.Forget(child)
	if m, ok := parent.(CustomHierarchyManager); ok && m.CustomRemoveChild(child) {
		return
	}
	h.metrics.mutation(op)
	parent.RemoveChild(child)
}

// ResetTextContent clears the text of a text view. Other views only get a
// diagnostic.
func (h *HostConfig) ResetTextContent(instance widget.Node) {
	tn, ok := instance.(widget.TextNode)
	if !ok {
		h.warn("resetTextContent", "view does not hold text", "type", instance.TypeName())
		return
	}
	old := tn.Text()
	tn.SetText("")
	instance.NotifyPropertyChange(widget.TextProperty, "", old)
}

// DetachDeletedInstance drops a view built by a discarded render from the
// registry. The view was never attached, so only its entry needs releasing.
func (h *HostConfig) DetachDeletedInstance(instance widget.Node) {
	h.registry.Forget(instance)
}

// CommitTextUpdate sets the text of a text instance and notifies listeners
// of the change.
func (h *HostConfig) CommitTextUpdate(textInstance widget.Node, oldText, newText string) {
	if tn, ok := textInstance.(widget.TextNode); ok {
		tn.SetText(newText)
	} else {
		textInstance.Set(widget.TextProperty, newText)
	}
	textInstance.NotifyPropertyChange(widget.TextProperty, newText, oldText)
}

// CommitUpdate applies a Payload from PrepareUpdate in order and caches
// newProps for event dispatch.
func (h *HostConfig) CommitUpdate(instance widget.Node, payload reconciler.UpdatePayload, typ string, oldProps, newProps element.Props, handle reconciler.OpaqueHandle) {
	h.registry.SetCachedProps(instance, newProps)
	h.bindHandlers(instance, newProps)

	updates, ok := payload.(Payload)
	if !ok {
		h.warn("commitUpdate", "unexpected payload", "type", typ, "payload", fmt.Sprintf("%T", payload))
		return
	}
	for _, u := range updates {
		h.applyUpdate(instance, typ, u)
	}
	h.metrics.committed(typ, len(updates))
}

func (h *HostConfig) applyUpdate(node widget.Node, typ string, u Update) {
	switch Classify(u.Key) {
	case KeyChildren:
		if !isPrimitive(u.Value) {
			return
		}
		tn, ok := node.(widget.TextNode)
		if !ok {
			h.warn("commitUpdate", "text children on a view that does not hold text", "type", typ, "key", u.Key)
			return
		}
		tn.SetText(fmt.Sprint(u.Value))
	case KeyStyle:
		style, _ := styleOf(u.Value)
		for _, name := range sortedKeys(style) {
			h.setStyle(node, name, style[name])
		}
	case KeyInnerHTML:
		node.Set(InnerHTMLProp, u.Value)
	default:
		h.setProperty(node, typ, u.Key, u.Value)
	}
}
