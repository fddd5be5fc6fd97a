package vnative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vnative/pkg/element"
	"github.com/vango-dev/vnative/pkg/widget"
)

func pageTree(title string) *element.Element {
	return element.Create("Page", nil, label(title))
}

func TestStartWithFrame(t *testing.T) {
	r := newTestRenderer(t)
	require.NoError(t, r.StartWithFrame(pageTree("home"), nil))

	app := r.Application()
	require.True(t, app.HasLaunched())
	frame, ok := app.RootView().(*widget.Frame)
	require.True(t, ok)

	page, ok := frame.CurrentPage().(*widget.Page)
	require.True(t, ok)
	assert.Equal(t, "home", page.Content().(*widget.Label).Text())
}

func TestStartWithFrameAndPage(t *testing.T) {
	r := newTestRenderer(t)
	frame, page := widget.NewFrame(), widget.NewPage()
	require.NoError(t, r.StartWithFrameAndPage(label("hello"), frame, page))

	assert.Equal(t, widget.Node(frame), r.Application().RootView())
	assert.Equal(t, widget.Node(page), frame.CurrentPage())
	assert.Equal(t, "hello", page.Content().(*widget.Label).Text())
	_, ok := r.Root(widget.Node(page))
	assert.True(t, ok)
}

func TestStartWithFrameRenderError(t *testing.T) {
	r := newTestRenderer(t)
	err := r.StartWithFrame(element.Create("Marquee", nil), nil)
	require.Error(t, err)
	assert.True(t, r.Application().HasLaunched())
}

func TestStartWithView(t *testing.T) {
	r := newTestRenderer(t)
	root := widget.NewStackLayout()
	require.NoError(t, r.StartWithView(label("a"), root))
	assert.Equal(t, widget.Node(root), r.Application().RootView())
	assert.Equal(t, 1, root.ChildCount())

	// A second start, as after a hot reload, renders nothing.
	require.NoError(t, r.StartWithView(label("b"), nil))
	assert.Equal(t, widget.Node(root), r.Application().RootView())
	assert.Equal(t, "a", widget.Children(root)[0].(*widget.Label).Text())
	assert.Len(t, r.Roots(), 1)
}

func TestStartWithViewDefaultsToContentView(t *testing.T) {
	r := newTestRenderer(t)
	require.NoError(t, r.StartWithView(label("a"), nil))
	_, ok := r.Application().RootView().(*widget.ContentView)
	assert.True(t, ok)
}

func TestStartWithAnyView(t *testing.T) {
	r := newTestRenderer(t)
	require.NoError(t, r.StartWithAnyView(element.Create("StackLayout", nil, label("x"))))

	stack, ok := r.Application().RootView().(*widget.StackLayout)
	require.True(t, ok)
	assert.Equal(t, 1, stack.ChildCount())
}

func TestStartWithAnyViewReloadsFramePage(t *testing.T) {
	r := newTestRenderer(t)
	builds := 0
	frame := widget.NewFrame()
	r.Application().Run(func() widget.Node {
		frame.Navigate(func() widget.Node {
			builds++
			return widget.NewPage()
		})
		return frame
	})
	require.Equal(t, 1, builds)

	require.NoError(t, r.StartWithAnyView(label("ignored")))
	assert.Equal(t, 2, builds)
	assert.Empty(t, r.Roots())
}
