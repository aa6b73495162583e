package element

import (
	"github.com/go-drift/rosetta/pkg/errors"
	"github.com/go-drift/rosetta/pkg/reactive"
)

// Row lays out children horizontally.
type Row struct{ base }

// NewRow creates a Row. Nil children are skipped.
func NewRow(children ...Element) *Row {
	e := &Row{}
	e.init(e, nil)
	e.adopt(children...)
	return e
}

// NewLabeledRow creates a Row with a leading label.
func NewLabeledRow(label *Label, children ...Element) *Row {
	e := &Row{}
	e.init(e, label)
	e.adopt(children...)
	return e
}

// Column lays out children vertically.
type Column struct{ base }

// NewColumn creates a Column.
func NewColumn(children ...Element) *Column {
	e := &Column{}
	e.init(e, nil)
	e.adopt(children...)
	return e
}

// Box groups children in a framed area.
type Box struct{ base }

// NewBox creates a Box.
func NewBox(children ...Element) *Box {
	e := &Box{}
	e.init(e, nil)
	e.adopt(children...)
	return e
}

// ScrollView is a scrollable column.
type ScrollView struct{ base }

// NewScrollView creates a ScrollView.
func NewScrollView(children ...Element) *ScrollView {
	e := &ScrollView{}
	e.init(e, nil)
	e.adopt(children...)
	return e
}

// Fold is a collapsible group with a title.
type Fold struct {
	base
	isOpen *reactive.Property[bool]
}

// NewFold creates a closed Fold.
func NewFold(title *Label, children ...Element) *Fold {
	e := &Fold{isOpen: reactive.NewProperty(false)}
	e.init(e, title)
	e.adopt(children...)
	return e
}

// IsOpen is the expanded state.
func (f *Fold) IsOpen() *reactive.Property[bool] { return f.isOpen }

// Window is a top-level container with a title. Its open state is
// independent of Enabled.
type Window struct {
	base
	isOpen *reactive.Property[bool]
}

// NewWindow creates an open Window.
func NewWindow(title *Label, children ...Element) *Window {
	e := &Window{isOpen: reactive.NewProperty(true)}
	e.init(e, title)
	e.adopt(children...)
	return e
}

// IsOpen is the open state.
func (w *Window) IsOpen() *reactive.Property[bool] { return w.isOpen }

// Toggle flips the open state.
func (w *Window) Toggle() { w.isOpen.Set(!w.isOpen.Value()) }

// Close closes the window.
func (w *Window) Close() { w.isOpen.Set(false) }

// Update ticks the window's contents only while it is open.
func (w *Window) Update() {
	if !w.isOpen.Value() {
		return
	}
	w.base.Update()
}

// WindowLauncher is a small always-visible element that opens and closes a
// window. The window can be created lazily on first open.
type WindowLauncher struct {
	base
	window  *Window
	factory func() *Window
	rebuilt listeners[struct{}]
}

// NewWindowLauncher creates a launcher for an existing window. The window
// starts closed.
func NewWindowLauncher(label *Label, window *Window) *WindowLauncher {
	if label == nil && window != nil {
		label = window.Label()
	}
	e := &WindowLauncher{}
	e.init(e, label)
	if window != nil {
		window.Close()
		e.window = window
		e.adopt(window)
	}
	return e
}

// NewLazyWindowLauncher creates a launcher whose window is built by factory
// the first time it is opened.
func NewLazyWindowLauncher(label *Label, factory func() *Window) *WindowLauncher {
	e := &WindowLauncher{factory: factory}
	e.init(e, label)
	return e
}

// Window returns the window, or nil if it has not been created yet.
func (l *WindowLauncher) Window() *Window { return l.window }

// IsOpen reports whether the window exists and is open.
func (l *WindowLauncher) IsOpen() bool {
	return l.window != nil && l.window.IsOpen().Value()
}

// Toggle opens or closes the window, creating it first if needed.
func (l *WindowLauncher) Toggle() {
	if l.window == nil {
		if l.factory == nil {
			return
		}
		var w *Window
		perr := errors.Contain("element.WindowLauncher.factory", func() { w = l.factory() })
		if perr != nil || w == nil {
			return
		}
		l.window = w
		l.adopt(w)
		w.IsOpen().Set(true)
		l.rebuilt.notify(struct{}{})
		return
	}
	l.window.Toggle()
}

// OnRebuild registers fn to run after the launcher's children change.
func (l *WindowLauncher) OnRebuild(fn func()) (cancel func()) {
	return l.rebuilt.add(func(struct{}) { fn() })
}

// Button runs a callback when clicked.
type Button struct {
	base
	onClick func()
}

// NewButton creates a Button.
func NewButton(label *Label, onClick func()) *Button {
	e := &Button{onClick: onClick}
	e.init(e, label)
	return e
}

// Click runs the callback. A panic in the callback is reported and contained.
func (b *Button) Click() {
	if b.onClick == nil || !b.interactable.Value() {
		return
	}
	errors.Contain("element.Button.Click", b.onClick)
}
