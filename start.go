package vnative

import "github.com/vango-dev/vnative/pkg/widget"

func (r *Renderer) committed() {
	r.logger.Debug("container updated")
}

// StartWithFrame launches the application with frame (a new Frame when
// nil) navigated to the page app renders. The outermost view of app must be
// a Page; it is rendered into a scratch ProxyViewContainer and handed to the
// frame.
func (r *Renderer) StartWithFrame(app any, frame *widget.Frame) error {
	if frame == nil {
		frame = widget.NewFrame()
	}
	var err error
	r.app.Run(func() widget.Node {
		frame.Navigate(func() widget.Node {
			inst, rerr := r.Render(app, widget.NewProxyViewContainer(), r.committed, "")
			if rerr != nil {
				err = rerr
				return nil
			}
			page, _ := inst.(widget.Node)
			return page
		})
		return frame
	})
	return err
}

// StartWithFrameAndPage launches the application with frame navigated to
// page, and renders app into page. Nil arguments get new views.
func (r *Renderer) StartWithFrameAndPage(app any, frame *widget.Frame, page *widget.Page) error {
	if frame == nil {
		frame = widget.NewFrame()
	}
	if page == nil {
		page = widget.NewPage()
	}
	var err error
	r.app.Run(func() widget.Node {
		frame.Navigate(func() widget.Node {
			if _, rerr := r.Render(app, page, r.committed, ""); rerr != nil {
				err = rerr
			}
			return page
		})
		return frame
	})
	return err
}

// StartWithView launches the application with rootView (a new ContentView
// when nil) and renders app into it. When the application already has a
// root view, as after a hot reload, nothing is rendered.
func (r *Renderer) StartWithView(app any, rootView widget.Node) error {
	existing := r.app.RootView()
	if r.app.HasLaunched() || existing != nil {
		r.logger.Debug("hot reload: start is a no-op", "root", typeName(existing))
		return nil
	}
	if rootView == nil {
		rootView = widget.NewContentView()
	}
	var err error
	r.app.Run(func() widget.Node {
		_, err = r.Render(app, rootView, r.committed, "")
		return rootView
	})
	return err
}

// StartWithAnyView renders app into a scratch ContentView and launches the
// application with the view app rendered. After a hot reload the current
// page of a Frame root view is rebuilt instead.
func (r *Renderer) StartWithAnyView(app any) error {
	if existing := r.app.RootView(); r.app.HasLaunched() || existing != nil {
		if frame, ok := existing.(*widget.Frame); ok && frame.CurrentPage() != nil {
			r.logger.Debug("hot reload: reloading the frame's page")
			frame.ReloadPage()
		}
		return nil
	}

	inst, err := r.Render(app, widget.NewContentView(), r.committed, "")
	if err != nil {
		return err
	}
	view, _ := inst.(widget.Node)
	r.app.Run(func() widget.Node { return view })
	return nil
}

func typeName(n widget.Node) string {
	if n == nil {
		return ""
	}
	return n.TypeName()
}
