// Package widget is the native view toolkit that vnative drives.
//
// Views are mutable tree nodes. Each view has a fixed type name, an ordered
// child list, and a key-value property bag read and written through Get and
// Set. Writes to the bag are silent; observers learn about changes only
// through NotifyPropertyChange, which fires the "propertyChange" event.
//
// # View Kinds
//
// Most views keep an ordered list of children. Content holders (Page,
// ContentView, ScrollView, Frame) keep at most one child: adding a child
// replaces the current content. Text views (Label, Button, TextField, ...)
// expose their "text" property through Text and SetText.
//
// # Type Table
//
// Registry maps element type names to constructors:
//
//	ctor, ok := widget.Lookup("StackLayout")
//	view := ctor()
//
// Lookup is case-insensitive, so "button" and "Button" resolve to the same
// constructor.
//
// # Application and Loop
//
// Application models the platform entry point (run, hasLaunched, rootView).
// Loop is the single-threaded event loop on which timers and posted work
// run. Everything in this package assumes it is driven from one goroutine;
// only Loop.Post and timer expiry may be called from elsewhere.
package widget
