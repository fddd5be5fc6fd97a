package reconciler

import (
	"time"

	"github.com/vango-dev/vnative/pkg/element"
	"github.com/vango-dev/vnative/pkg/widget"
)

// OpaqueHandle is the reconciler's handle for a unit of work. Host configs
// store it and pass it back, and may ask for the node it designates.
type OpaqueHandle interface {
	StateNode() widget.Node
}

// UpdatePayload is whatever PrepareUpdate returns. A nil payload means the
// node needs no commit.
type UpdatePayload any

// HostContext is passed down the tree during the render phase.
type HostContext any

// HostConfig adapts the reconciler to a concrete view tree. The reconciler
// calls it synchronously from one goroutine.
type HostConfig interface {
	// Context and commit hooks.
	GetPublicInstance(instance widget.Node) any
	GetRootHostContext(rootContainer widget.Node) HostContext
	GetChildHostContext(parent HostContext, typ string, rootContainer widget.Node) HostContext
	PrepareForCommit(rootContainer widget.Node)
	ResetAfterCommit(rootContainer widget.Node)

	// Render phase.
	CreateInstance(typ string, props element.Props, rootContainer widget.Node, ctx HostContext, handle OpaqueHandle) (widget.Node, error)
	AppendInitialChild(parent, child widget.Node)
	FinalizeInitialChildren(instance widget.Node, typ string, props element.Props, rootContainer widget.Node, ctx HostContext) bool
	PrepareUpdate(instance widget.Node, typ string, oldProps, newProps element.Props, rootContainer widget.Node, ctx HostContext) UpdatePayload
	ShouldSetTextContent(typ string, props element.Props) bool
	ShouldDeprioritizeSubtree(typ string, props element.Props) bool
	CreateTextInstance(text string, rootContainer widget.Node, ctx HostContext, handle OpaqueHandle) widget.Node

	// Scheduling.
	ScheduleDeferredCallback(callback func(), timeout time.Duration) widget.TimerID
	CancelDeferredCallback(id widget.TimerID)
	SetTimeout(handler func(), timeout time.Duration) widget.TimerID
	ClearTimeout(id widget.TimerID)
	NoTimeout() widget.TimerID
	Now() time.Time

	// Capabilities.
	IsPrimaryRenderer() bool
	SupportsMutation() bool
	SupportsPersistence() bool
	SupportsHydration() bool

	// Mutation.
	AppendChild(parent, child widget.Node)
	AppendChildToContainer(container, child widget.Node)
	CommitTextUpdate(textInstance widget.Node, oldText, newText string)
	CommitMount(instance widget.Node, typ string, newProps element.Props, handle OpaqueHandle)
	CommitUpdate(instance widget.Node, payload UpdatePayload, typ string, oldProps, newProps element.Props, handle OpaqueHandle)
	InsertBefore(parent, child, beforeChild widget.Node)
	InsertInContainerBefore(container, child, beforeChild widget.Node)
	RemoveChild(parent, child widget.Node)
	RemoveChildFromContainer(container, child widget.Node)
	ResetTextContent(instance widget.Node)

	// DetachDeletedInstance releases a view created by a render that was
	// discarded before commit. The view was never attached to the live tree.
	DetachDeletedInstance(instance widget.Node)
}
