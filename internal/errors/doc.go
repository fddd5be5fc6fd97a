// Package errors provides coded, actionable errors for vnative.
//
// Each error carries a code (e.g. "E001") registered with a category, a
// short message, and a longer detail. Call sites add context with the
// builder methods:
//
//	err := errors.New("E001").
//	    WithDetail(`type "Lable" is not registered`).
//	    WithSuggestion("Register the view with widget.Register or fix the tag").
//	    Wrap(hostconfig.ErrUnknownType)
//
// Errors unwrap to the wrapped cause, so errors.Is and errors.As from the
// standard library work through them.
//
// # Categories
//
//   - runtime: host config and reconciler failures (E001-E009)
//   - config: project configuration problems (E010-E019)
//   - validation: application document problems (E020-E029)
//   - cli: command-line and watcher failures (E030-E039)
package errors
