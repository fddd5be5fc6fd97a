package widget

// TextNode is implemented by views with a text property.
type TextNode interface {
	Node
	Text() string
	SetText(text string)
}

// ContentHolder is implemented by views that hold at most one child.
type ContentHolder interface {
	Node
	Content() Node
	SetContent(child Node)
}

// TextProperty is the property key backing TextNode.
const TextProperty = "text"

// =============================================================================
// Layouts
// =============================================================================

// LayoutBase is a view with an ordered child list.
type LayoutBase struct{ View }

type (
	StackLayout        struct{ LayoutBase }
	FlexboxLayout      struct{ LayoutBase }
	GridLayout         struct{ LayoutBase }
	AbsoluteLayout     struct{ LayoutBase }
	DockLayout         struct{ LayoutBase }
	WrapLayout         struct{ LayoutBase }
	ProxyViewContainer struct{ LayoutBase }
)

func NewStackLayout() *StackLayout {
	v := &StackLayout{}
	v.initView(v, "StackLayout", false)
	return v
}

func NewFlexboxLayout() *FlexboxLayout {
	v := &FlexboxLayout{}
	v.initView(v, "FlexboxLayout", false)
	return v
}

func NewGridLayout() *GridLayout {
	v := &GridLayout{}
	v.initView(v, "GridLayout", false)
	return v
}

func NewAbsoluteLayout() *AbsoluteLayout {
	v := &AbsoluteLayout{}
	v.initView(v, "AbsoluteLayout", false)
	return v
}

func NewDockLayout() *DockLayout {
	v := &DockLayout{}
	v.initView(v, "DockLayout", false)
	return v
}

func NewWrapLayout() *WrapLayout {
	v := &WrapLayout{}
	v.initView(v, "WrapLayout", false)
	return v
}

// NewProxyViewContainer creates a layout that adds no native view of its own.
func NewProxyViewContainer() *ProxyViewContainer {
	v := &ProxyViewContainer{}
	v.initView(v, "ProxyViewContainer", false)
	return v
}

// =============================================================================
// Content holders
// =============================================================================

// ContentView holds a single content view.
type ContentView struct{ View }

// Content returns the current content view, or nil.
func (c *ContentView) Content() Node {
	if len(c.children) == 0 {
		return nil
	}
	return c.children[0]
}

// SetContent replaces the content. A nil child clears it.
func (c *ContentView) SetContent(child Node) {
	if child == nil {
		if old := c.Content(); old != nil {
			c.RemoveChild(old)
		}
		return
	}
	c.AddChild(child, 0)
}

func NewContentView() *ContentView {
	v := &ContentView{}
	v.initView(v, "ContentView", true)
	return v
}

// Page is the content of a Frame.
type Page struct{ ContentView }

func NewPage() *Page {
	v := &Page{}
	v.initView(v, "Page", true)
	return v
}

type ScrollView struct{ ContentView }

func NewScrollView() *ScrollView {
	v := &ScrollView{}
	v.initView(v, "ScrollView", true)
	return v
}

type TabViewItem struct{ ContentView }

func NewTabViewItem() *TabViewItem {
	v := &TabViewItem{}
	v.initView(v, "TabViewItem", true)
	return v
}

// Frame shows one page at a time.
type Frame struct {
	ContentView
	entry func() Node
}

func NewFrame() *Frame {
	v := &Frame{}
	v.initView(v, "Frame", true)
	return v
}

// Navigate shows the page returned by create and remembers create as the
// current entry.
func (f *Frame) Navigate(create func() Node) {
	if create == nil {
		return
	}
	f.entry = create
	f.SetContent(create())
}

// CurrentPage returns the page being shown.
func (f *Frame) CurrentPage() Node {
	return f.Content()
}

// ReloadPage rebuilds the current page from its entry.
func (f *Frame) ReloadPage() bool {
	if f.entry == nil || f.CurrentPage() == nil {
		return false
	}
	f.SetContent(f.entry())
	return true
}

// =============================================================================
// Text views
// =============================================================================

// TextBase is a view whose content is a text string.
type TextBase struct{ View }

// Text returns the text property.
func (t *TextBase) Text() string {
	s, _ := t.Get(TextProperty).(string)
	return s
}

// SetText sets the text property. It does not notify.
func (t *TextBase) SetText(text string) {
	t.Set(TextProperty, text)
}

type (
	Label            struct{ TextBase }
	Button           struct{ TextBase }
	TextField        struct{ TextBase }
	TextView         struct{ TextBase }
	SearchBar        struct{ TextBase }
	ActionItem       struct{ TextBase }
	NavigationButton struct{ TextBase }
)

func NewTextBase() *TextBase {
	v := &TextBase{}
	v.initView(v, "TextBase", false)
	return v
}

func NewLabel() *Label {
	v := &Label{}
	v.initView(v, "Label", false)
	return v
}

func NewButton() *Button {
	v := &Button{}
	v.initView(v, "Button", false)
	return v
}

func NewTextField() *TextField {
	v := &TextField{}
	v.initView(v, "TextField", false)
	return v
}

func NewTextView() *TextView {
	v := &TextView{}
	v.initView(v, "TextView", false)
	return v
}

func NewSearchBar() *SearchBar {
	v := &SearchBar{}
	v.initView(v, "SearchBar", false)
	return v
}

func NewActionItem() *ActionItem {
	v := &ActionItem{}
	v.initView(v, "ActionItem", false)
	return v
}

func NewNavigationButton() *NavigationButton {
	v := &NavigationButton{}
	v.initView(v, "NavigationButton", false)
	return v
}

// =============================================================================
// Other views
// =============================================================================

// Plain is a view with no specialised behaviour. Leaf widgets such as
// Image or Slider are Plain views distinguished by type name.
type Plain struct{ View }

// NewPlain creates a Plain view with the given type name.
func NewPlain(typeName string) *Plain {
	v := &Plain{}
	v.initView(v, typeName, false)
	return v
}

// NewCustom initialises a caller-defined view that embeds View. It must be
// called once, from the custom type's constructor.
//
//	type Chart struct{ widget.View }
//
//	func NewChart() *Chart {
//	    c := &Chart{}
//	    widget.NewCustom(c, &c.View, "Chart", false)
//	    return c
//	}
func NewCustom(self Node, base *View, typeName string, singleChild bool) {
	base.initView(self, typeName, singleChild)
}
