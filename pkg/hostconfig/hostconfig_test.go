package hostconfig

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vnerrors "github.com/vango-dev/vnative/internal/errors"
	"github.com/vango-dev/vnative/pkg/element"
	"github.com/vango-dev/vnative/pkg/reconciler"
	"github.com/vango-dev/vnative/pkg/widget"
)

type testHandle struct{ node widget.Node }

func (h *testHandle) StateNode() widget.Node { return h.node }

func newTestHost(opts ...Option) (*HostConfig, *Metrics) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	base := []Option{
		WithMetrics(m),
		WithLoop(widget.NewLoop()),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return New(append(base, opts...)...), m
}

func create(t *testing.T, h *HostConfig, typ string, props element.Props) widget.Node {
	t.Helper()
	handle := &testHandle{}
	n, err := h.CreateInstance(typ, props, nil, Context{}, handle)
	require.NoError(t, err)
	handle.node = n
	return n
}

func diagnostics(m *Metrics, op string) float64 {
	return testutil.ToFloat64(m.diagnostics.WithLabelValues(op))
}

func TestCreateInstanceUnknownType(t *testing.T) {
	h, _ := newTestHost()
	n, err := h.CreateInstance("Marquee", nil, nil, Context{}, &testHandle{})
	require.Error(t, err)
	assert.Nil(t, n)
	assert.True(t, errors.Is(err, ErrUnknownType))
	assert.True(t, vnerrors.HasCode(err, "E001"))
}

func TestCreateInstanceCaseInsensitive(t *testing.T) {
	h, _ := newTestHost()
	n := create(t, h, "button", nil)
	assert.Equal(t, "Button", n.TypeName())
}

func TestCreateInstanceTextChildren(t *testing.T) {
	h, m := newTestHost()

	label := create(t, h, "Label", element.Props{"children": "hello"})
	assert.Equal(t, "hello", label.(widget.TextNode).Text())
	assert.Empty(t, widget.Children(label))

	num := create(t, h, "Label", element.Props{"children": 42})
	assert.Equal(t, "42", num.(widget.TextNode).Text())

	stack := create(t, h, "StackLayout", element.Props{"children": "loose"})
	kids := widget.Children(stack)
	require.Len(t, kids, 1)
	assert.Equal(t, "TextView", kids[0].TypeName())
	assert.Equal(t, "loose", kids[0].(widget.TextNode).Text())
	assert.Equal(t, 1.0, diagnostics(m, "createInstance"))
}

func TestCreateInstanceProps(t *testing.T) {
	h, m := newTestHost()
	n := create(t, h, "Label", element.Props{
		"className":                "title",
		"style":                    Style{"color": "red", "fontSize": 12},
		"width":                    100,
		"suppressHydrationWarning": true,
	})

	assert.Equal(t, "title", n.Get("class"))
	assert.Nil(t, n.Get("className"))
	assert.Equal(t, "red", n.Get(StyleKey("color")))
	assert.Equal(t, 12, n.Get(StyleKey("fontSize")))
	assert.Equal(t, 100, n.Get("width"))
	assert.Nil(t, n.Get("suppressHydrationWarning"))
	assert.Equal(t, 1.0, diagnostics(m, "setProperty"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.instancesCreated.WithLabelValues("Label")))
}

func TestCreateInstanceRegistersHandleAndProps(t *testing.T) {
	h, _ := newTestHost()
	handle := &testHandle{}
	props := element.Props{"color": "red"}
	n, err := h.CreateInstance("Label", props, nil, Context{}, handle)
	require.NoError(t, err)

	got, ok := h.Registry().FindHandle(n)
	require.True(t, ok)
	assert.Same(t, handle, got)
	assert.Equal(t, props, h.Registry().CachedProps(n))
}

func TestCreateInstanceInsideTextWarns(t *testing.T) {
	h, m := newTestHost()
	ctx := h.GetChildHostContext(h.GetRootHostContext(nil), "Label", nil)
	assert.True(t, contextOf(ctx).IsInAParentText)

	_, err := h.CreateInstance("StackLayout", nil, nil, ctx, &testHandle{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, diagnostics(m, "createInstance"))
}

func TestChildHostContext(t *testing.T) {
	h, _ := newTestHost()
	root := h.GetRootHostContext(nil)
	assert.Equal(t, Context{}, root)

	assert.Equal(t, Context{IsInADockLayout: true}, h.GetChildHostContext(root, "DockLayout", nil))
	assert.Equal(t, Context{IsInAGridLayout: true}, h.GetChildHostContext(root, "gridLayout", nil))
	assert.Equal(t, Context{IsInAnAbsoluteLayout: true}, h.GetChildHostContext(root, "AbsoluteLayout", nil))
	assert.Equal(t, Context{IsInAFlexboxLayout: true}, h.GetChildHostContext(root, "FlexboxLayout", nil))
	assert.Equal(t, Context{}, h.GetChildHostContext(Context{IsInADockLayout: true}, "StackLayout", nil))
}

func TestTextContentAndHidden(t *testing.T) {
	h, _ := newTestHost()
	assert.True(t, h.ShouldSetTextContent("Label", element.Props{"children": "x"}))
	assert.True(t, h.ShouldSetTextContent("Label", element.Props{"children": 3.5}))
	assert.False(t, h.ShouldSetTextContent("Label", element.Props{"children": element.Create("Label", nil)}))
	assert.False(t, h.ShouldSetTextContent("Label", element.Props{}))

	assert.True(t, h.ShouldDeprioritizeSubtree("StackLayout", element.Props{"hidden": true}))
	assert.False(t, h.ShouldDeprioritizeSubtree("StackLayout", element.Props{"hidden": false}))
	assert.False(t, h.ShouldDeprioritizeSubtree("StackLayout", nil))
}

func TestAutoFocusMount(t *testing.T) {
	h, _ := newTestHost()
	props := element.Props{"autoFocus": true}
	n := create(t, h, "TextField", props)

	require.True(t, h.FinalizeInitialChildren(n, "TextField", props, nil, Context{}))
	assert.False(t, h.FinalizeInitialChildren(n, "TextField", element.Props{}, nil, Context{}))

	h.CommitMount(n, "TextField", props, &testHandle{node: n})
	assert.True(t, n.(widget.Focusable).Focused())
}

func TestPrepareUpdateNilIsUntyped(t *testing.T) {
	h, _ := newTestHost()
	p := element.Props{"a": 1}
	payload := h.PrepareUpdate(nil, "Label", p, p, nil, Context{})
	assert.True(t, payload == nil)
}

func TestPrepareUpdateRefreshesHandlers(t *testing.T) {
	h, _ := newTestHost()
	handler := func(tag string) func() string { return func() string { return tag } }

	n := widget.NewButton()
	oldProps := element.Props{"onTap": handler("old")}
	h.CommitUpdate(n, Payload{}, "Button", nil, oldProps, nil)

	assert.Nil(t, h.PrepareUpdate(n, "Button", oldProps, oldProps, nil, Context{}))

	newProps := element.Props{"onTap": handler("new")}
	payload := h.PrepareUpdate(n, "Button", oldProps, newProps, nil, Context{})
	require.NotNil(t, payload)
	_, ok := payload.(Payload).Get("onTap")
	assert.True(t, ok)

	h.CommitUpdate(n, payload, "Button", oldProps, newProps, nil)
	fn, ok := h.Registry().CachedProps(n)["onTap"].(func() string)
	require.True(t, ok)
	assert.Equal(t, "new", fn())
}

func TestCapabilities(t *testing.T) {
	h, _ := newTestHost()
	assert.True(t, h.IsPrimaryRenderer())
	assert.True(t, h.SupportsMutation())
	assert.False(t, h.SupportsPersistence())
	assert.False(t, h.SupportsHydration())
	assert.Equal(t, widget.TimerID(0), h.NoTimeout())
	assert.WithinDuration(t, time.Now(), h.Now(), time.Second)

	n := widget.NewLabel()
	assert.Equal(t, n, h.GetPublicInstance(n))
}

func TestDeferredCallbacks(t *testing.T) {
	h, _ := newTestHost()
	var ran []string

	id := h.ScheduleDeferredCallback(func() { ran = append(ran, "a") }, 0)
	cancelled := h.ScheduleDeferredCallback(func() { ran = append(ran, "b") }, 0)
	h.CancelDeferredCallback(cancelled)
	assert.Empty(t, ran, "callbacks never run synchronously")

	h.Loop().RunPending()
	assert.Equal(t, []string{"a"}, ran)

	// Cancelling after the callback fired is a no-op.
	assert.NotPanics(t, func() { h.CancelDeferredCallback(id) })

	timeout := h.SetTimeout(func() { ran = append(ran, "c") }, time.Hour)
	h.ClearTimeout(timeout)
	assert.Equal(t, 0, h.Loop().Pending())
}

func TestMetricsLifecycle(t *testing.T) {
	h, m := newTestHost()
	n := create(t, h, "Label", element.Props{"a": 1})
	h.CommitUpdate(n, Payload{{Key: "a", Value: 2}, {Key: "b", Value: 3}}, "Label", nil, element.Props{"a": 2, "b": 3}, &testHandle{node: n})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.updatesCommitted.WithLabelValues("Label")))
	m.SetRoots(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.roots))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.SetRoots(1) })
}

// The full pipeline: the reference reconciler driving this host config.
func TestReconcilerIntegration(t *testing.T) {
	h, _ := newTestHost()
	r := reconciler.New(h)
	page := widget.NewPage()
	root := r.CreateContainer(page, false, false)

	taps := 0
	tree := func(title string, items ...string) any {
		var rows []any
		for _, it := range items {
			rows = append(rows, element.Create("Label", element.Props{"key": it}, it))
		}
		return element.Create("StackLayout", element.Props{"style": Style{"color": "red"}},
			element.Create("Label", element.Props{"className": "title"}, title),
			element.Create("Button", element.Props{"onTap": func() { taps++ }}, "Tap"),
			element.Create(element.Fragment, nil, rows...),
		)
	}

	require.NoError(t, r.UpdateContainer(tree("Hello", "a", "b"), root, nil, nil))
	stack := page.Content()
	require.NotNil(t, stack)
	kids := widget.Children(stack)
	require.Len(t, kids, 4)
	assert.Equal(t, "Hello", kids[0].(widget.TextNode).Text())
	assert.Equal(t, "title", kids[0].Get("class"))
	assert.Equal(t, "red", stack.Get(StyleKey("color")))

	kids[1].Notify("tap", widget.EventData{})
	assert.Equal(t, 1, taps)

	require.NoError(t, r.UpdateContainer(tree("Bye", "b", "c"), root, nil, nil))
	kids = widget.Children(stack)
	require.Len(t, kids, 4)
	assert.Equal(t, "Bye", kids[0].(widget.TextNode).Text())
	assert.Equal(t, "b", kids[2].(widget.TextNode).Text())
	assert.Equal(t, "c", kids[3].(widget.TextNode).Text())

	require.NoError(t, r.UpdateContainer(nil, root, nil, nil))
	assert.Nil(t, page.Content())
	assert.Equal(t, 0, h.Registry().Len())
}

func TestReconcilerUnknownTypeAborts(t *testing.T) {
	h, _ := newTestHost()
	r := reconciler.New(h)
	c := widget.NewStackLayout()
	root := r.CreateContainer(c, false, false)

	err := r.UpdateContainer(element.Create("StackLayout", nil, element.Create("Nope", nil)), root, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownType))
	assert.Empty(t, widget.Children(c))
}

func TestFailedRenderDoesNotGrowRegistry(t *testing.T) {
	h, _ := newTestHost()
	r := reconciler.New(h)
	c := widget.NewStackLayout()
	root := r.CreateContainer(c, false, false)

	bad := func() *element.Element {
		return element.Create("StackLayout", nil,
			element.Create("Label", element.Props{"text": "a"}),
			element.Create("Label", element.Props{"text": "b"}),
			element.Create("Nope", nil))
	}
	for i := 0; i < 3; i++ {
		require.Error(t, r.UpdateContainer(bad(), root, nil, nil))
		assert.Equal(t, 0, h.Registry().Len())
	}

	require.NoError(t, r.UpdateContainer(element.Create("StackLayout", nil, element.Create("Label", element.Props{"text": "a"})), root, nil, nil))
	before := h.Registry().Len()
	require.Error(t, r.UpdateContainer(bad(), root, nil, nil))
	assert.Equal(t, before, h.Registry().Len())
}
