// Package element defines the abstract UI tree.
//
// Elements describe what to show, not how: labels, value fields, sliders,
// containers, windows and dynamic subtrees. Value elements read their
// binding on every tick and push changed values to the view; user edits come
// back through [ValueElement.OnViewValueChanged] and are written through the
// binding. A backend realizes elements as native widgets via package builder.
//
// # Ticks
//
// [Tick] walks the tree depth-first, parent before children. A [Dynamic]
// element that rebuilds during a tick does not tick its new contents until
// the next tick; their first values were already read at construction.
// A panic in one element is reported and contained so the rest of the tree
// keeps ticking.
//
// # Threading
//
// Elements are NOT thread-safe. Build, tick and edit the tree from one
// goroutine, usually the host's UI loop.
package element
