package vnative

import (
	"sync"

	"github.com/vango-dev/vnative/pkg/hostconfig"
	"github.com/vango-dev/vnative/pkg/widget"
)

var (
	defaultOnce     sync.Once
	defaultRenderer *Renderer
)

// Default returns the process-wide renderer. Its host config records
// metrics into the default Prometheus registerer.
func Default() *Renderer {
	defaultOnce.Do(func() {
		app := widget.DefaultApplication()
		host := hostconfig.New(
			hostconfig.WithLoop(app.Loop()),
			hostconfig.WithMetrics(hostconfig.NewMetrics()),
		)
		defaultRenderer = NewRenderer(WithHostConfig(host), WithApplication(app))
	})
	return defaultRenderer
}

// Render renders into the default renderer. See Renderer.Render.
func Render(el any, container widget.Node, callback func(), rootKey string) (any, error) {
	return Default().Render(el, container, callback, rootKey)
}

// UnmountComponentAtNode unmounts a root of the default renderer.
func UnmountComponentAtNode(key any) error {
	return Default().UnmountComponentAtNode(key)
}

// Reset empties the default renderer's root registry.
func Reset() {
	Default().Reset()
}

// StartWithFrame starts the default application. See Renderer.StartWithFrame.
func StartWithFrame(app any, frame *widget.Frame) error {
	return Default().StartWithFrame(app, frame)
}

// StartWithFrameAndPage starts the default application. See
// Renderer.StartWithFrameAndPage.
func StartWithFrameAndPage(app any, frame *widget.Frame, page *widget.Page) error {
	return Default().StartWithFrameAndPage(app, frame, page)
}

// StartWithView starts the default application. See Renderer.StartWithView.
func StartWithView(app any, rootView widget.Node) error {
	return Default().StartWithView(app, rootView)
}

// StartWithAnyView starts the default application. See
// Renderer.StartWithAnyView.
func StartWithAnyView(app any) error {
	return Default().StartWithAnyView(app)
}
