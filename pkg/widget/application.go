package widget

import "sync"

// Application is the platform entry point that owns the root view.
type Application struct {
	mu       sync.Mutex
	launched bool
	root     Node
	loop     *Loop
}

// NewApplication creates an application that has not launched.
func NewApplication() *Application {
	return &Application{loop: NewLoop()}
}

// Run launches the application with the view returned by create.
// Calling Run on a launched application replaces the root view.
func (a *Application) Run(create func() Node) {
	var root Node
	if create != nil {
		root = create()
	}
	a.mu.Lock()
	a.root = root
	a.launched = true
	a.mu.Unlock()
}

// HasLaunched reports whether Run has been called.
func (a *Application) HasLaunched() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.launched
}

// RootView returns the root view, or nil before launch.
func (a *Application) RootView() Node {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.root
}

// Loop returns the application's event loop.
func (a *Application) Loop() *Loop { return a.loop }

// Reset returns the application to its pre-launch state.
func (a *Application) Reset() {
	a.mu.Lock()
	a.launched = false
	a.root = nil
	a.mu.Unlock()
}

var defaultApp = NewApplication()

// DefaultApplication returns the process-wide application.
func DefaultApplication() *Application { return defaultApp }
