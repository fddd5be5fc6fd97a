package hostconfig

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/vango-dev/vnative/pkg/element"
)

// PropKey classifies a prop name. Every key that is not special is
// KeyGeneric and passes straight through to the view.
type PropKey uint8

const (
	KeyGeneric PropKey = iota
	KeyChildren
	KeyStyle
	KeyInnerHTML
	KeySuppressContentEditableWarning
	KeySuppressHydrationWarning
	KeyAutoFocus
	KeyClassName
)

// Reserved prop names.
const (
	ChildrenProp                       = element.ChildrenKey
	StyleProp                          = "style"
	InnerHTMLProp                      = "dangerouslySetInnerHTML"
	HTMLField                          = "__html"
	SuppressContentEditableWarningProp = "suppressContentEditableWarning"
	SuppressHydrationWarningProp       = "suppressHydrationWarning"
	AutoFocusProp                      = "autoFocus"
	ClassNameProp                      = "className"
	HiddenProp                         = "hidden"

	// ClassAttribute is the view property className is written to.
	ClassAttribute = "class"
)

var propKeys = map[string]PropKey{
	ChildrenProp:                       KeyChildren,
	StyleProp:                          KeyStyle,
	InnerHTMLProp:                      KeyInnerHTML,
	SuppressContentEditableWarningProp: KeySuppressContentEditableWarning,
	SuppressHydrationWarningProp:       KeySuppressHydrationWarning,
	AutoFocusProp:                      KeyAutoFocus,
	ClassNameProp:                      KeyClassName,
}

// Classify returns the PropKey for name.
func Classify(name string) PropKey {
	return propKeys[name]
}

// String returns the prop name of a special key.
func (k PropKey) String() string {
	switch k {
	case KeyGeneric:
		return "generic"
	case KeyChildren:
		return ChildrenProp
	case KeyStyle:
		return StyleProp
	case KeyInnerHTML:
		return InnerHTMLProp
	case KeySuppressContentEditableWarning:
		return SuppressContentEditableWarningProp
	case KeySuppressHydrationWarning:
		return SuppressHydrationWarningProp
	case KeyAutoFocus:
		return AutoFocusProp
	case KeyClassName:
		return ClassNameProp
	}
	return fmt.Sprintf("PropKey(%d)", uint8(k))
}

// Style is a nested map of style properties.
type Style map[string]any

// styleOf reads a style prop. It accepts Style and plain maps.
func styleOf(v any) (Style, bool) {
	switch s := v.(type) {
	case Style:
		return s, s != nil
	case map[string]any:
		return Style(s), s != nil
	}
	return nil, false
}

// htmlOf reads the __html field of a dangerouslySetInnerHTML prop.
func htmlOf(v any) any {
	switch m := v.(type) {
	case map[string]any:
		return m[HTMLField]
	case map[string]string:
		if s, ok := m[HTMLField]; ok {
			return s
		}
	case Style:
		return m[HTMLField]
	}
	return nil
}

// isPrimitive reports whether a children value is text content.
func isPrimitive(v any) bool {
	return element.IsText(v)
}

// equal compares prop values. Two nil values are equal; funcs compare by
// identity; everything else by deep equality.
func equal(a, b any) bool {
	if a == nil || b == nil {
		return isNil(a) && isNil(b)
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.Func || rb.Kind() == reflect.Func {
		return ra.Kind() == rb.Kind() && ra.Type() == rb.Type() && funcIdentity(a) == funcIdentity(b)
	}
	return reflect.DeepEqual(a, b)
}

// funcIdentity returns the closure a func value points at. reflect only
// exposes the code pointer, which closures built by the same literal share.
func funcIdentity(fn any) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&fn))[1]
}

// isNil reports whether v is nil or a typed nil pointer, map, slice or func.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
