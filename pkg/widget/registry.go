package widget

import (
	"sort"
	"strings"
	"sync"
)

// Constructor creates a new, unattached view.
type Constructor func() Node

type registryEntry struct {
	name string
	ctor Constructor
}

// Registry maps element type names to view constructors.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]registryEntry
}

// NewRegistry creates a registry holding the built-in view types.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]registryEntry)}
	for name, ctor := range builtins() {
		r.Register(name, ctor)
	}
	return r
}

// Register adds or replaces a type. Names are matched case-insensitively.
func (r *Registry) Register(name string, ctor Constructor) {
	if name == "" || ctor == nil {
		return
	}
	r.mu.Lock()
	r.entries[strings.ToLower(name)] = registryEntry{name: name, ctor: ctor}
	r.mu.Unlock()
}

// Lookup returns the constructor for name.
func (r *Registry) Lookup(name string) (Constructor, bool) {
	r.mu.RLock()
	e, ok := r.entries[strings.ToLower(name)]
	r.mu.RUnlock()
	return e.ctor, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry { return defaultRegistry }

// Lookup resolves name in the default registry.
func Lookup(name string) (Constructor, bool) {
	return defaultRegistry.Lookup(name)
}

// Register adds a type to the default registry.
func Register(name string, ctor Constructor) {
	defaultRegistry.Register(name, ctor)
}

func plain(name string) Constructor {
	return func() Node { return NewPlain(name) }
}

func builtins() map[string]Constructor {
	return map[string]Constructor{
		"AbsoluteLayout":     func() Node { return NewAbsoluteLayout() },
		"ActionBar":          plain("ActionBar"),
		"ActionItem":         func() Node { return NewActionItem() },
		"ActivityIndicator":  plain("ActivityIndicator"),
		"Button":             func() Node { return NewButton() },
		"ContentView":        func() Node { return NewContentView() },
		"DatePicker":         plain("DatePicker"),
		"DockLayout":         func() Node { return NewDockLayout() },
		"FlexboxLayout":      func() Node { return NewFlexboxLayout() },
		"FormattedString":    plain("FormattedString"),
		"Frame":              func() Node { return NewFrame() },
		"GridLayout":         func() Node { return NewGridLayout() },
		"HtmlView":           plain("HtmlView"),
		"Image":              plain("Image"),
		"Label":              func() Node { return NewLabel() },
		"ListPicker":         plain("ListPicker"),
		"ListView":           plain("ListView"),
		"NavigationButton":   func() Node { return NewNavigationButton() },
		"Page":               func() Node { return NewPage() },
		"Placeholder":        plain("Placeholder"),
		"Progress":           plain("Progress"),
		"ProxyViewContainer": func() Node { return NewProxyViewContainer() },
		"ScrollView":         func() Node { return NewScrollView() },
		"SearchBar":          func() Node { return NewSearchBar() },
		"SegmentedBar":       plain("SegmentedBar"),
		"Slider":             plain("Slider"),
		"StackLayout":        func() Node { return NewStackLayout() },
		"Switch":             plain("Switch"),
		"TabView":            plain("TabView"),
		"TabViewItem":        func() Node { return NewTabViewItem() },
		"TextBase":           func() Node { return NewTextBase() },
		"TextField":          func() Node { return NewTextField() },
		"TextView":           func() Node { return NewTextView() },
		"TimePicker":         plain("TimePicker"),
		"WebView":            plain("WebView"),
		"WrapLayout":         func() Node { return NewWrapLayout() },
	}
}
