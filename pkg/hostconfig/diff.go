package hostconfig

import (
	"fmt"
	"sort"

	"github.com/vango-dev/vnative/pkg/element"
	"github.com/vango-dev/vnative/pkg/widget"
)

// Update is one entry of a Payload. A nil Value clears the property. The
// style entry carries a Style of per-property deltas where "" clears.
type Update struct {
	Key   string
	Value any
}

// Payload is the ordered list of updates moving a view from one prop set
// to the next.
type Payload []Update

// Get returns the value queued for key and whether it is present.
func (p Payload) Get(key string) (any, bool) {
	for _, u := range p {
		if u.Key == key {
			return u.Value, true
		}
	}
	return nil, false
}

// Keys returns the queued keys in order.
func (p Payload) Keys() []string {
	keys := make([]string, len(p))
	for i, u := range p {
		keys[i] = u.Key
	}
	return keys
}

// Diff returns the updates needed to move a view from prev to next, or nil
// when nothing changed. Removed props are queued before added or changed
// ones; within each pass keys are visited in sorted order, and the style
// entry, if any, goes last.
//
// A key that moves from unset to nil, or from nil to nil, is not a change.
// dangerouslySetInnerHTML can be set but never cleared.
func Diff(node widget.Node, typ string, prev, next element.Props, root widget.Node) Payload {
	var payload Payload
	var styleUpdates Style

	setStyle := func(name string, v any) {
		if styleUpdates == nil {
			styleUpdates = Style{}
		}
		styleUpdates[name] = v
	}

	// Removed or cleared.
	for _, key := range sortedKeys(prev) {
		if isNil(prev[key]) || !isNil(next[key]) {
			continue
		}
		switch Classify(key) {
		case KeyChildren, KeyInnerHTML, KeySuppressContentEditableWarning,
			KeySuppressHydrationWarning, KeyAutoFocus:
		case KeyStyle:
			last, _ := styleOf(prev[key])
			for _, name := range sortedKeys(last) {
				setStyle(name, "")
			}
		case KeyGeneric, KeyClassName:
			payload = append(payload, Update{Key: key, Value: nil})
		}
	}

	// Added or changed.
	for _, key := range sortedKeys(next) {
		nextProp, lastProp := next[key], prev[key]
		if isNil(nextProp) || equal(nextProp, lastProp) {
			continue
		}
		switch Classify(key) {
		case KeyStyle:
			nextStyle, _ := styleOf(nextProp)
			lastStyle, hadStyle := styleOf(lastProp)
			if !hadStyle {
				for _, name := range sortedKeys(nextStyle) {
					setStyle(name, nextStyle[name])
				}
				continue
			}
			for _, name := range sortedKeys(lastStyle) {
				if _, ok := nextStyle[name]; !ok {
					setStyle(name, "")
				}
			}
			for _, name := range sortedKeys(nextStyle) {
				if !equal(lastStyle[name], nextStyle[name]) {
					setStyle(name, nextStyle[name])
				}
			}
		case KeyInnerHTML:
			nextHTML, lastHTML := htmlOf(nextProp), htmlOf(lastProp)
			if !isNil(nextHTML) && !equal(nextHTML, lastHTML) {
				payload = append(payload, Update{Key: key, Value: fmt.Sprint(nextHTML)})
			}
		case KeyChildren:
			if isPrimitive(nextProp) {
				payload = append(payload, Update{Key: key, Value: fmt.Sprint(nextProp)})
			}
		case KeySuppressContentEditableWarning, KeySuppressHydrationWarning:
		case KeyAutoFocus, KeyGeneric, KeyClassName:
			payload = append(payload, Update{Key: key, Value: nextProp})
		}
	}

	if styleUpdates != nil {
		payload = append(payload, Update{Key: StyleProp, Value: styleUpdates})
	}
	if len(payload) == 0 {
		return nil
	}
	return payload
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
