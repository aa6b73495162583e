// Package builder realizes element trees as native widgets.
//
// A [Framework] holds one build function per element type. Building an
// element creates its widget, wires the element's Enabled and Interactable
// flags to the [Backend], builds the children and attaches them in order.
// When the element is destroyed its subscriptions are released and its
// widget is disposed before the call returns, so a dynamic element's old
// widgets are always gone before replacements are attached.
package builder

import (
	stderrors "errors"
	"fmt"
	"reflect"

	"github.com/go-drift/rosetta/pkg/element"
	"github.com/go-drift/rosetta/pkg/errors"
)

// Backend applies the framework's structural operations to native widgets.
type Backend[W any] interface {
	// SetVisible shows or hides the widget.
	SetVisible(w W, visible bool)
	// SetInteractable enables or disables input on the widget.
	SetInteractable(w W, interactable bool)
	// AppendChild attaches child as the last child of parent.
	AppendChild(parent, child W)
	// Dispose detaches and frees the widget.
	Dispose(w W)
}

// BuildFunc creates the widget for one element. Value elements are expected
// to wire their push path with SubscribeView and their pull path with
// OnViewValueChanged; subscriptions should be released with OnDestroy.
type BuildFunc[W any] func(e element.Element) (W, error)

// rebuilder is implemented by elements whose children change after
// construction.
type rebuilder interface {
	OnRebuild(fn func()) (cancel func())
}

type mapping[W any] struct {
	build     BuildFunc[W]
	noMapping bool
}

// Framework maps element types to widget constructors and tracks the live
// widget of every built element.
type Framework[W any] struct {
	backend  Backend[W]
	mappings map[reflect.Type]mapping[W]
	widgets  map[element.Element]W
}

// New creates a Framework for backend.
func New[W any](backend Backend[W]) *Framework[W] {
	return &Framework[W]{
		backend:  backend,
		mappings: make(map[reflect.Type]mapping[W]),
		widgets:  make(map[element.Element]W),
	}
}

// Register sets the build function for elements of type E.
func Register[E element.Element, W any](f *Framework[W], build func(E) (W, error)) {
	f.mappings[reflect.TypeFor[E]()] = mapping[W]{
		build: func(e element.Element) (W, error) { return build(e.(E)) },
	}
}

// RegisterNoMapping records that the backend has no widget for E. Building
// such an element reports an UnsupportedError instead of building nothing
// silently.
func RegisterNoMapping[E element.Element, W any](f *Framework[W]) {
	f.mappings[reflect.TypeFor[E]()] = mapping[W]{noMapping: true}
}

// Backend returns the framework's backend.
func (f *Framework[W]) Backend() Backend[W] { return f.backend }

// Widget returns the live widget built for e.
func (f *Framework[W]) Widget(e element.Element) (W, bool) {
	w, ok := f.widgets[e]
	return w, ok
}

// Len returns the number of live widgets.
func (f *Framework[W]) Len() int { return len(f.widgets) }

// Build creates the widget tree for e. Children that cannot be built are
// reported and skipped; the returned error only concerns e itself.
func (f *Framework[W]) Build(e element.Element) (W, error) {
	var zero W
	if e == nil {
		return zero, fmt.Errorf("builder: nil element")
	}
	if e.IsDestroyed() {
		return zero, fmt.Errorf("builder: %T is destroyed", e)
	}
	if w, ok := f.widgets[e]; ok {
		return w, nil
	}

	m, ok := f.mappings[reflect.TypeOf(e)]
	if !ok || m.noMapping {
		return zero, &errors.UnsupportedError{What: fmt.Sprintf("%T", e), By: "builder"}
	}

	var (
		w   W
		err error
	)
	if perr := errors.Contain(fmt.Sprintf("builder.Build(%T)", e), func() { w, err = m.build(e) }); perr != nil {
		return zero, perr
	}
	if err != nil {
		return zero, err
	}

	f.widgets[e] = w
	f.wire(e, w)
	f.attachChildren(e, w)
	return w, nil
}

func (f *Framework[W]) wire(e element.Element, w W) {
	unsubVisible := e.Enabled().Subscribe(func(v bool) { f.backend.SetVisible(w, v) })
	unsubInput := e.Interactable().Subscribe(func(v bool) { f.backend.SetInteractable(w, v) })

	cancelRebuild := func() {}
	if r, ok := e.(rebuilder); ok {
		cancelRebuild = r.OnRebuild(func() { f.attachChildren(e, w) })
	}

	e.OnDestroy(func() {
		unsubVisible()
		unsubInput()
		cancelRebuild()
		delete(f.widgets, e)
		f.backend.Dispose(w)
	})
}

// attachChildren builds and appends every child that has no widget yet.
func (f *Framework[W]) attachChildren(e element.Element, w W) {
	for _, child := range e.Children() {
		if _, built := f.widgets[child]; built {
			continue
		}
		cw, err := f.Build(child)
		if err != nil {
			report(child, err)
			continue
		}
		f.backend.AppendChild(w, cw)
	}
}

func report(e element.Element, err error) {
	kind := errors.KindUnknown
	var unsupported *errors.UnsupportedError
	var perr *errors.PanicError
	switch {
	case stderrors.As(err, &unsupported):
		kind = errors.KindUnsupported
	case stderrors.As(err, &perr):
		// Already reported by Contain.
		return
	}
	errors.Report(&errors.UIError{
		Op:      "builder.Build",
		Kind:    kind,
		Err:     err,
		Element: fmt.Sprintf("%T", e),
	})
}
