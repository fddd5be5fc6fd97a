package hostconfig

import (
	"errors"
	"fmt"

	vnerrors "github.com/vango-dev/vnative/internal/errors"
	"github.com/vango-dev/vnative/pkg/element"
	"github.com/vango-dev/vnative/pkg/reconciler"
	"github.com/vango-dev/vnative/pkg/widget"
)

// ErrUnknownType is wrapped by the error CreateInstance returns for a type
// missing from the type table.
var ErrUnknownType = errors.New("unknown element type")

// StyleKey is the view property a style sub-property is written to.
func StyleKey(name string) string {
	return StyleProp + "." + name
}

// CreateInstance builds a typ view and applies props to it. An unknown type
// is a fatal error for the subtree.
func (h *HostConfig) CreateInstance(typ string, props element.Props, rootContainer widget.Node, ctx reconciler.HostContext, handle reconciler.OpaqueHandle) (widget.Node, error) {
	ctor, ok := h.types.Lookup(typ)
	if !ok {
		return nil, vnerrors.New("E001").
			WithDetailf("type %q", typ).
			Wrap(fmt.Errorf("%w: %s", ErrUnknownType, typ))
	}
	node := ctor()

	if contextOf(ctx).IsInAParentText {
		if _, ok := node.(widget.TextNode); !ok {
			h.warn("createInstance", "view nested inside a text view", "type", typ)
		}
	}

	for _, key := range sortedKeys(props) {
		h.applyInitial(node, typ, key, props[key])
	}

	h.registry.AttachHandle(node, handle)
	h.registry.SetCachedProps(node, props)
	h.bindHandlers(node, props)
	h.metrics.created(typ)
	h.logger.Debug("instance created", "type", typ)
	return node, nil
}

func (h *HostConfig) applyInitial(node widget.Node, typ, key string, value any) {
	switch Classify(key) {
	case KeyChildren:
		if !isPrimitive(value) {
			return
		}
		text := fmt.Sprint(value)
		if tn, ok := node.(widget.TextNode); ok {
			tn.SetText(text)
			return
		}
		h.warn("createInstance", "text children on a view that does not hold text; adding a TextView", "type", typ)
		child := widget.NewTextView()
		child.SetText(text)
		node.AddChild(child, -1)
	case KeyStyle:
		style, _ := styleOf(value)
		for _, name := range sortedKeys(style) {
			h.setStyle(node, name, style[name])
		}
	case KeyInnerHTML:
		if html := htmlOf(value); !isNil(html) {
			node.Set(InnerHTMLProp, fmt.Sprint(html))
		}
	case KeySuppressContentEditableWarning, KeySuppressHydrationWarning:
	case KeyClassName, KeyAutoFocus, KeyGeneric:
		h.setProperty(node, typ, key, value)
	}
}

// setProperty is the generic property setter. className is written to the
// view's class property. Handler props stay in the cached props and are not
// written to the view.
func (h *HostConfig) setProperty(node widget.Node, typ, key string, value any) {
	if _, ok := EventName(key); ok {
		return
	}
	if Classify(key) == KeyClassName {
		h.warn("setProperty", "className is written to the class property", "type", typ)
		key = ClassAttribute
	}
	if key == widget.TextProperty {
		if tn, ok := node.(widget.TextNode); ok && !isNil(value) {
			tn.SetText(fmt.Sprint(value))
			return
		}
	}
	if isNil(value) {
		value = nil
	}
	node.Set(key, value)
}

// setStyle writes one style sub-property. "" and nil clear it.
func (h *HostConfig) setStyle(node widget.Node, name string, value any) {
	if s, ok := value.(string); (ok && s == "") || isNil(value) {
		node.Set(StyleKey(name), nil)
		return
	}
	node.Set(StyleKey(name), value)
}

// CreateTextInstance builds a TextView holding text.
func (h *HostConfig) CreateTextInstance(text string, rootContainer widget.Node, ctx reconciler.HostContext, handle reconciler.OpaqueHandle) widget.Node {
	node := widget.NewTextView()
	node.SetText(text)
	h.registry.AttachHandle(node, handle)
	h.metrics.created("#text")
	return node
}
