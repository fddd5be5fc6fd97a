// Package hostconfig adapts the reconciler to the widget tree.
//
// HostConfig implements reconciler.HostConfig. It is split along the lines
// of the work it does:
//
//   - Registry associates reconciler handles and last-committed props with
//     views, in a side table keyed by view identity.
//   - Diff computes the ordered update payload between two prop sets,
//     including per-property style deltas and text content children.
//   - CreateInstance builds a view from the widget type table and applies
//     its initial props.
//   - The mutation methods (AppendChild, InsertBefore, RemoveChild and the
//     container variants) edit child lists, replacing the content of views
//     that hold a single child.
//
// All methods must be called from the goroutine that drives the widget
// Loop. Nothing here blocks.
package hostconfig
