// Package vnative renders element trees into native widget trees.
//
// Render commits an element into a container view, creating the root on the
// first call for a key and updating it in place afterwards:
//
//	page := widget.NewPage()
//	_, err := vnative.Render(
//	    element.Create("StackLayout", nil,
//	        element.Create("Label", nil, "Hello"),
//	    ),
//	    page, nil, "",
//	)
//
// Roots are keyed by the rootKey argument, or by the container when the key
// is empty. The package-level functions use a process-wide Renderer; tests
// call Reset between runs.
package vnative

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	vnerrors "github.com/vango-dev/vnative/internal/errors"
	"github.com/vango-dev/vnative/pkg/element"
	"github.com/vango-dev/vnative/pkg/hostconfig"
	"github.com/vango-dev/vnative/pkg/reconciler"
	"github.com/vango-dev/vnative/pkg/widget"
)

const tracerName = "github.com/vango-dev/vnative"

// RootInfo describes a live root.
type RootInfo struct {
	Key       string
	ID        uuid.UUID
	Container widget.Node
	Root      *reconciler.FiberRoot
}

// CommitEvent is delivered to OnCommit subscribers after each render.
type CommitEvent struct {
	Key  string
	Root uuid.UUID
}

// Renderer owns a set of roots rendered through one host config.
type Renderer struct {
	host   *hostconfig.HostConfig
	rec    *reconciler.Reconciler
	app    *widget.Application
	logger *slog.Logger
	tracer trace.Tracer

	mu        sync.Mutex
	roots     map[any]*reconciler.FiberRoot
	listeners map[int]func(CommitEvent)
	nextSub   int
}

// Option configures a Renderer.
type Option func(*rendererConfig)

type rendererConfig struct {
	host   *hostconfig.HostConfig
	app    *widget.Application
	logger *slog.Logger
	tracer trace.Tracer
}

// WithHostConfig sets the host config. Default: hostconfig.New with the
// renderer's logger and the application's loop.
func WithHostConfig(h *hostconfig.HostConfig) Option {
	return func(c *rendererConfig) { c.host = h }
}

// WithApplication sets the application used by the Start helpers.
// Default: widget.DefaultApplication().
func WithApplication(app *widget.Application) Option {
	return func(c *rendererConfig) {
		if app != nil {
			c.app = app
		}
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *rendererConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer sets the tracer. Default: the global otel tracer provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *rendererConfig) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// NewRenderer creates a renderer with no roots.
func NewRenderer(opts ...Option) *Renderer {
	cfg := rendererConfig{
		app:    widget.DefaultApplication(),
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.host == nil {
		cfg.host = hostconfig.New(
			hostconfig.WithLogger(cfg.logger),
			hostconfig.WithLoop(cfg.app.Loop()),
		)
	}
	return &Renderer{
		host:      cfg.host,
		rec:       reconciler.New(cfg.host, reconciler.WithLogger(cfg.logger), reconciler.WithTracer(cfg.tracer)),
		app:       cfg.app,
		logger:    cfg.logger.With("component", "renderer"),
		tracer:    cfg.tracer,
		roots:     make(map[any]*reconciler.FiberRoot),
		listeners: make(map[int]func(CommitEvent)),
	}
}

// Host returns the host config.
func (r *Renderer) Host() *hostconfig.HostConfig { return r.host }

// Application returns the application the Start helpers launch.
func (r *Renderer) Application() *widget.Application { return r.app }

// resolveKey returns the registry key for a render call.
func resolveKey(container widget.Node, key string) (any, error) {
	if key != "" {
		return key, nil
	}
	if container == nil {
		return nil, vnerrors.New("E003")
	}
	return container, nil
}

// KeyString formats a root key for display.
func KeyString(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case widget.Node:
		return fmt.Sprintf("%s@%p", k.TypeName(), k)
	}
	return fmt.Sprint(key)
}

// Render commits el into the root for rootKey, or for container when
// rootKey is empty, creating the root if needed. container may be nil for a
// detached tree when rootKey is set. callback runs after the commit. The
// result is the public instance of the root's first view.
func (r *Renderer) Render(el any, container widget.Node, callback func(), rootKey string) (any, error) {
	key, err := resolveKey(container, rootKey)
	if err != nil {
		return nil, err
	}

	_, span := r.tracer.Start(context.Background(), "vnative.Render",
		trace.WithAttributes(attribute.String("vnative.root_key", KeyString(key))))
	defer span.End()

	r.mu.Lock()
	root, ok := r.roots[key]
	if !ok {
		root = r.rec.CreateContainer(container, false, false)
		r.roots[key] = root
		r.host.Metrics().SetRoots(len(r.roots))
		r.logger.Debug("root created", "key", KeyString(key), "root", root.ID)
	}
	r.mu.Unlock()

	if err := r.rec.UpdateContainer(el, root, nil, callback); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	r.notify(CommitEvent{Key: KeyString(key), Root: root.ID})
	return r.rec.GetPublicRootInstance(root), nil
}

// UnmountComponentAtNode commits an empty tree into the root for key and
// forgets the root once the commit completes. key is the rootKey string or
// the container view passed to Render. An unknown key is a no-op.
func (r *Renderer) UnmountComponentAtNode(key any) error {
	r.mu.Lock()
	root, ok := r.roots[key]
	r.mu.Unlock()
	if !ok {
		return nil
	}
	return r.rec.UpdateContainer(nil, root, nil, func() {
		r.mu.Lock()
		delete(r.roots, key)
		n := len(r.roots)
		r.mu.Unlock()
		r.host.Metrics().SetRoots(n)
		r.logger.Debug("root unmounted", "key", KeyString(key))
		r.notify(CommitEvent{Key: KeyString(key), Root: root.ID})
	})
}

// Root returns the root registered for key.
func (r *Renderer) Root(key any) (*reconciler.FiberRoot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	root, ok := r.roots[key]
	return root, ok
}

// Roots lists the live roots sorted by key.
func (r *Renderer) Roots() []RootInfo {
	r.mu.Lock()
	out := make([]RootInfo, 0, len(r.roots))
	for k, root := range r.roots {
		out = append(out, RootInfo{Key: KeyString(k), ID: root.ID, Container: root.Container, Root: root})
	}
	r.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Reset forgets every root and clears the instance registry. Views already
// rendered are left as they are.
func (r *Renderer) Reset() {
	r.mu.Lock()
	r.roots = make(map[any]*reconciler.FiberRoot)
	r.mu.Unlock()
	r.host.Registry().Reset()
	r.host.Metrics().SetRoots(0)
}

// OnCommit subscribes fn to commit events. The returned func unsubscribes.
func (r *Renderer) OnCommit(fn func(CommitEvent)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextSub++
	id := r.nextSub
	r.listeners[id] = fn
	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

func (r *Renderer) notify(ev CommitEvent) {
	r.mu.Lock()
	fns := make([]func(CommitEvent), 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// CreatePortal describes children rendered into container, independently
// of where the portal sits in the tree.
func CreatePortal(children any, container widget.Node, key string) *element.Portal {
	return &element.Portal{Children: children, Container: container, Key: key}
}
