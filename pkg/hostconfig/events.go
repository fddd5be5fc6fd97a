package hostconfig

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vango-dev/vnative/pkg/element"
	"github.com/vango-dev/vnative/pkg/widget"
)

// HandlerProp returns the prop holding the handler for event: "tap" is
// handled by "onTap".
func HandlerProp(event string) string {
	r, size := utf8.DecodeRuneInString(event)
	if r == utf8.RuneError {
		return "on"
	}
	return "on" + string(unicode.ToUpper(r)) + event[size:]
}

// EventName is the inverse of HandlerProp. It reports false for props that
// are not handlers.
func EventName(prop string) (string, bool) {
	rest, ok := strings.CutPrefix(prop, "on")
	if !ok || rest == "" {
		return "", false
	}
	r, size := utf8.DecodeRuneInString(rest)
	if !unicode.IsUpper(r) {
		return "", false
	}
	return string(unicode.ToLower(r)) + rest[size:], true
}

// DispatchEvent delivers an event fired on node to the handler currently in
// the props of the closest managed view. Views created by the toolkit itself
// resolve to their nearest managed ancestor. It reports whether a handler
// ran.
func (h *HostConfig) DispatchEvent(node widget.Node, event string, data widget.EventData) bool {
	handle, ok := h.registry.FindClosestHandle(node)
	if !ok {
		h.warn("dispatchEvent", "event on a view outside any managed tree", "event", event)
		return false
	}
	owner := NodeForHandle(handle)
	if owner == nil {
		owner = node
	}
	props := h.registry.CachedProps(owner)
	if data.EventName == "" {
		data.EventName = event
	}
	if data.Object == nil {
		data.Object = node
	}
	return h.invoke(props, event, data)
}

func (h *HostConfig) invoke(props element.Props, event string, data widget.EventData) bool {
	key := HandlerProp(event)
	switch fn := props[key].(type) {
	case nil:
		h.logger.Debug("no handler for event", "event", event, "key", key)
		return false
	case widget.Listener:
		fn(data)
	case func(widget.EventData):
		fn(data)
	case func():
		fn()
	default:
		h.warn("dispatchEvent", "handler prop is not a func", "event", event, "key", key)
		return false
	}
	return true
}

// bindHandlers routes the events named by handler props of node through
// DispatchEvent. Each event is bound once per view; later handler changes
// are picked up from the cached props.
func (h *HostConfig) bindHandlers(node widget.Node, props element.Props) {
	for key, v := range props {
		event, ok := EventName(key)
		if !ok || isNil(v) {
			continue
		}
		if !h.registry.bind(node, event) {
			continue
		}
		node.On(event, func(data widget.EventData) {
			h.DispatchEvent(node, event, data)
		})
	}
}

// UpdateListener swaps the listener for event on node. prev is the ID from
// an earlier call, or 0. The returned ID identifies next, and is 0 when next
// is nil. A nil node gets a diagnostic: the view it referred to is gone.
func (h *HostConfig) UpdateListener(node widget.Node, event string, prev widget.ListenerID, next widget.Listener) widget.ListenerID {
	if node == nil {
		h.warn("updateListener", "lost the view reference; listener not updated", "event", event)
		return 0
	}
	if prev != 0 {
		node.Off(event, prev)
	}
	if next == nil {
		return 0
	}
	return node.On(event, next)
}
