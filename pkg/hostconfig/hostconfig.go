package hostconfig

import (
	"log/slog"
	"time"

	"github.com/vango-dev/vnative/pkg/element"
	"github.com/vango-dev/vnative/pkg/reconciler"
	"github.com/vango-dev/vnative/pkg/widget"
)

// HostConfig drives a widget tree on behalf of the reconciler.
type HostConfig struct {
	registry *Registry
	types    *widget.Registry
	loop     *widget.Loop
	metrics  *Metrics
	logger   *slog.Logger
}

// Option configures a HostConfig.
type Option func(*HostConfig)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(h *HostConfig) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithMetrics records activity into m. Default: no metrics.
func WithMetrics(m *Metrics) Option {
	return func(h *HostConfig) {
		h.metrics = m
	}
}

// WithTypes sets the element type table. Default: widget.DefaultRegistry().
func WithTypes(types *widget.Registry) Option {
	return func(h *HostConfig) {
		if types != nil {
			h.types = types
		}
	}
}

// WithLoop sets the loop deferred callbacks and timeouts run on.
// Default: the loop of widget.DefaultApplication().
func WithLoop(loop *widget.Loop) Option {
	return func(h *HostConfig) {
		if loop != nil {
			h.loop = loop
		}
	}
}

// WithInstanceRegistry shares an instance registry. Default: a new one.
func WithInstanceRegistry(r *Registry) Option {
	return func(h *HostConfig) {
		if r != nil {
			h.registry = r
		}
	}
}

// New creates a host config.
func New(opts ...Option) *HostConfig {
	h := &HostConfig{
		logger: slog.Default(),
		types:  widget.DefaultRegistry(),
		loop:   widget.DefaultApplication().Loop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.registry == nil {
		h.registry = NewRegistry()
	}
	h.logger = h.logger.With("component", "hostconfig")
	return h
}

var _ reconciler.HostConfig = (*HostConfig)(nil)

// Registry returns the instance registry.
func (h *HostConfig) Registry() *Registry { return h.registry }

// Loop returns the loop scheduled work runs on.
func (h *HostConfig) Loop() *widget.Loop { return h.loop }

// Metrics returns the metrics, or nil.
func (h *HostConfig) Metrics() *Metrics { return h.metrics }

// warn reports a recoverable misuse.
func (h *HostConfig) warn(op, msg string, args ...any) {
	h.metrics.diagnostic(op)
	h.logger.Warn(msg, append([]any{"op", op}, args...)...)
}

// GetPublicInstance returns the view itself.
func (h *HostConfig) GetPublicInstance(instance widget.Node) any {
	return instance
}

// PrepareForCommit is a no-op.
func (h *HostConfig) PrepareForCommit(rootContainer widget.Node) {}

// ResetAfterCommit is a no-op.
func (h *HostConfig) ResetAfterCommit(rootContainer widget.Node) {}

// FinalizeInitialChildren requests a CommitMount when autoFocus is set.
func (h *HostConfig) FinalizeInitialChildren(instance widget.Node, typ string, props element.Props, rootContainer widget.Node, ctx reconciler.HostContext) bool {
	return truthy(props[AutoFocusProp])
}

// CommitMount focuses views mounted with autoFocus.
func (h *HostConfig) CommitMount(instance widget.Node, typ string, newProps element.Props, handle reconciler.OpaqueHandle) {
	if !truthy(newProps[AutoFocusProp]) {
		return
	}
	f, ok := instance.(widget.Focusable)
	if !ok {
		h.warn("commitMount", "autoFocus on a view that cannot take focus", "type", typ)
		return
	}
	f.Focus()
}

// PrepareUpdate diffs the props of instance. A nil result means no commit.
// A new handler func is a change, so the commit refreshes the cached props
// that DispatchEvent reads.
func (h *HostConfig) PrepareUpdate(instance widget.Node, typ string, oldProps, newProps element.Props, rootContainer widget.Node, ctx reconciler.HostContext) reconciler.UpdatePayload {
	if payload := Diff(instance, typ, oldProps, newProps, rootContainer); payload != nil {
		return payload
	}
	return nil
}

// ShouldSetTextContent reports whether children is text content.
func (h *HostConfig) ShouldSetTextContent(typ string, props element.Props) bool {
	return isPrimitive(props[ChildrenProp])
}

// ShouldDeprioritizeSubtree reports whether the hidden prop is set.
func (h *HostConfig) ShouldDeprioritizeSubtree(typ string, props element.Props) bool {
	return truthy(props[HiddenProp])
}

// ScheduleDeferredCallback runs callback on a later loop turn, after
// timeout if positive.
func (h *HostConfig) ScheduleDeferredCallback(callback func(), timeout time.Duration) widget.TimerID {
	return h.loop.AfterFunc(timeout, callback)
}

// CancelDeferredCallback cancels a scheduled callback. Cancelling one that
// already ran is a no-op.
func (h *HostConfig) CancelDeferredCallback(id widget.TimerID) {
	h.loop.Cancel(id)
}

// SetTimeout runs handler on the loop after timeout.
func (h *HostConfig) SetTimeout(handler func(), timeout time.Duration) widget.TimerID {
	return h.loop.AfterFunc(timeout, handler)
}

// ClearTimeout cancels a timeout.
func (h *HostConfig) ClearTimeout(id widget.TimerID) {
	h.loop.Cancel(id)
}

// NoTimeout returns the TimerID that identifies no timer.
func (h *HostConfig) NoTimeout() widget.TimerID { return 0 }

// Now returns the current time.
func (h *HostConfig) Now() time.Time { return time.Now() }

// IsPrimaryRenderer reports true.
func (h *HostConfig) IsPrimaryRenderer() bool { return true }

// SupportsMutation reports true.
func (h *HostConfig) SupportsMutation() bool { return true }

// SupportsPersistence reports false.
func (h *HostConfig) SupportsPersistence() bool { return false }

// SupportsHydration reports false.
func (h *HostConfig) SupportsHydration() bool { return false }

func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return b != "" && b != "false"
	case int:
		return b != 0
	case float64:
		return b != 0
	}
	return !isNil(v)
}
