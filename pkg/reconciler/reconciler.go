// Package reconciler defines the host config contract and provides a
// synchronous reference reconciler that drives it.
//
// The reconciler keeps a committed fiber tree per container. UpdateContainer
// renders the new element tree against it in a render phase (instances are
// created and prepared, nothing attached to the live tree is touched), then
// applies every mutation in a commit phase. A render phase error discards the
// pending work, so the committed tree and the native tree stay in step.
package reconciler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vnative/pkg/element"
	"github.com/vango-dev/vnative/pkg/widget"
)

const tracerName = "github.com/vango-dev/vnative/pkg/reconciler"

// Reconciler drives a HostConfig.
type Reconciler struct {
	host   HostConfig
	logger *slog.Logger
	tracer trace.Tracer
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTracer sets the tracer. Default: the global otel tracer provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Reconciler) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// New creates a reconciler for host.
func New(host HostConfig, opts ...Option) *Reconciler {
	r := &Reconciler{
		host:   host,
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "reconciler")
	return r
}

// Host returns the host config.
func (r *Reconciler) Host() HostConfig { return r.host }

// CreateContainer creates a root for container. container may be nil for a
// detached tree. Async roots commit on a later loop turn; hydration is not
// supported and is ignored.
func (r *Reconciler) CreateContainer(container widget.Node, isAsync, hydrate bool) *FiberRoot {
	if hydrate {
		r.logger.Warn("hydration is not supported; rendering from scratch")
	}
	root := &FiberRoot{
		ID:        uuid.New(),
		Container: container,
		Async:     isAsync,
	}
	root.current = &Fiber{Tag: TagHostRoot, node: container, Props: element.Props{}}
	r.logger.Debug("container created", "root", root.ID)
	return root
}

// UpdateContainer renders el into root and calls callback after commit.
// parentComponent is accepted for contract compatibility and unused.
//
// For async roots the update is scheduled with the host and UpdateContainer
// returns nil immediately; a pending update that has not run yet is
// replaced. Errors from a deferred update are logged and kept in
// root.LastError.
func (r *Reconciler) UpdateContainer(el any, root *FiberRoot, parentComponent any, callback func()) error {
	if !root.Async {
		return r.performWork(root, el, callback)
	}

	if root.pending != r.host.NoTimeout() {
		r.host.CancelDeferredCallback(root.pending)
	}
	root.pending = r.host.ScheduleDeferredCallback(func() {
		root.pending = r.host.NoTimeout()
		if err := r.performWork(root, el, callback); err != nil {
			root.lastErr = err
			r.logger.Error("deferred update failed", "root", root.ID, "error", err)
		}
	}, 0)
	return nil
}

// GetPublicRootInstance returns the public instance of the first view
// committed under root, or nil.
func (r *Reconciler) GetPublicRootInstance(root *FiberRoot) any {
	nodes := root.HostNodes()
	if len(nodes) == 0 {
		return nil
	}
	return r.host.GetPublicInstance(nodes[0])
}

// renderState is shared by one render pass.
type renderState struct {
	root   *FiberRoot
	mounts []*Fiber
}

func (r *Reconciler) performWork(root *FiberRoot, el any, callback func()) error {
	_, span := r.tracer.Start(context.Background(), "reconciler.UpdateContainer",
		trace.WithAttributes(attribute.String("vnative.root", root.ID.String())))
	defer span.End()

	rs := &renderState{root: root}
	rootFiber := root.current
	rootFiber.work = &work{props: element.Props{element.ChildrenKey: el}}

	ctx := r.host.GetRootHostContext(root.Container)
	if err := r.reconcileChildren(rs, rootFiber, el, ctx); err != nil {
		r.discard(rootFiber)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	r.commitRoot(rs, rootFiber)
	span.SetAttributes(attribute.Int("vnative.mounts", len(rs.mounts)))

	if callback != nil {
		callback()
	}
	return nil
}

// discard drops pending work after a failed render and releases the views
// created for it. A render can stop halfway through a child list, so
// committed children are walked too.
func (r *Reconciler) discard(f *Fiber) {
	if f.work == nil {
		return
	}
	pending := f.work.children
	mounting := f.work.mounting
	f.work = nil
	for _, c := range pending {
		r.discard(c)
	}
	for _, c := range f.Children {
		r.discard(c)
	}
	if mounting && f.node != nil {
		r.host.DetachDeletedInstance(f.node)
		f.node = nil
	}
}

// finalize promotes pending work to the committed tree.
func finalize(f *Fiber) {
	w := f.work
	if w == nil {
		return
	}
	f.work = nil
	f.Props = w.props
	f.Text = w.text
	f.Index = w.index
	f.Children = w.children
	for _, c := range f.Children {
		c.Parent = f
		finalize(c)
	}
}

func describe(f *Fiber) string {
	return fmt.Sprintf("%s(%s)", f.Tag, f.TypeName())
}
