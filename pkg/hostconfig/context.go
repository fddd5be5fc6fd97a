package hostconfig

import (
	"strings"

	"github.com/vango-dev/vnative/pkg/reconciler"
	"github.com/vango-dev/vnative/pkg/widget"
)

// Context is the host context passed to the children of a view. The flags
// describe the direct parent.
type Context struct {
	IsInAParentText      bool
	IsInADockLayout      bool
	IsInAGridLayout      bool
	IsInAnAbsoluteLayout bool
	IsInAFlexboxLayout   bool
}

// textTypes are the element types whose instances hold text.
var textTypes = map[string]bool{
	"label":            true,
	"button":           true,
	"textfield":        true,
	"textview":         true,
	"searchbar":        true,
	"textbase":         true,
	"formattedstring":  true,
	"actionitem":       true,
	"navigationbutton": true,
}

// GetRootHostContext returns the empty context.
func (h *HostConfig) GetRootHostContext(rootContainer widget.Node) reconciler.HostContext {
	return Context{}
}

// GetChildHostContext returns the context for the children of a typ view.
func (h *HostConfig) GetChildHostContext(parent reconciler.HostContext, typ string, rootContainer widget.Node) reconciler.HostContext {
	t := strings.ToLower(typ)
	return Context{
		IsInAParentText:      textTypes[t],
		IsInADockLayout:      t == "docklayout",
		IsInAGridLayout:      t == "gridlayout",
		IsInAnAbsoluteLayout: t == "absolutelayout",
		IsInAFlexboxLayout:   t == "flexboxlayout",
	}
}

func contextOf(ctx reconciler.HostContext) Context {
	c, _ := ctx.(Context)
	return c
}
