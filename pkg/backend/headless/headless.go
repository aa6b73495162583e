// Package headless is an in-memory backend. Widgets are plain structs that
// mirror what a real backend would show, which makes it the backend of
// choice for tests.
package headless

import (
	"fmt"
	"slices"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/go-drift/rosetta/pkg/builder"
	"github.com/go-drift/rosetta/pkg/element"
)

// Widget is the headless rendition of one element.
type Widget struct {
	// Kind names the element variant, e.g. "int-field" or "window".
	Kind string
	// Element is the element the widget was built for.
	Element element.Element
	// Label is the caption or label text.
	Label string
	// LabelWidth is the caption width in pixels of the 7x13 fixed font.
	LabelWidth int
	// Value is the value last pushed by the element.
	Value any
	// Min and Max are the slider bounds.
	Min, Max any
	// Options are the dropdown options.
	Options []string
	// Open is the open state of folds, windows and launchers.
	Open bool

	Visible      bool
	Interactable bool
	Disposed     bool

	Parent   *Widget
	Children []*Widget

	edit  func(any) error
	click func()
}

// Edit simulates a user edit of a value widget.
func (w *Widget) Edit(v any) error {
	if w.edit == nil {
		return fmt.Errorf("headless: %s widget is not editable", w.Kind)
	}
	return w.edit(v)
}

// Click simulates a click: buttons fire, folds, windows and launchers
// toggle, lists append an item and list items remove themselves.
func (w *Widget) Click() {
	if w.click != nil {
		w.click()
	}
}

// Shown reports whether the widget and all its ancestors are visible.
func (w *Widget) Shown() bool {
	for p := w; p != nil; p = p.Parent {
		if !p.Visible {
			return false
		}
	}
	return true
}

func (w *Widget) String() string {
	if w.Value != nil {
		return fmt.Sprintf("%s(%q=%v)", w.Kind, w.Label, w.Value)
	}
	return fmt.Sprintf("%s(%q)", w.Kind, w.Label)
}

// MeasureLabel returns the width of text in the 7x13 fixed font.
func MeasureLabel(text string) int {
	return font.MeasureString(basicfont.Face7x13, text).Ceil()
}

// Backend implements builder.Backend for headless widgets.
type Backend struct{}

func (Backend) SetVisible(w *Widget, visible bool)           { w.Visible = visible }
func (Backend) SetInteractable(w *Widget, interactable bool) { w.Interactable = interactable }

func (Backend) AppendChild(parent, child *Widget) {
	child.Parent = parent
	parent.Children = append(parent.Children, child)
}

func (Backend) Dispose(w *Widget) {
	w.Disposed = true
	if p := w.Parent; p != nil {
		if i := slices.Index(p.Children, w); i >= 0 {
			p.Children = slices.Delete(p.Children, i, i+1)
		}
		w.Parent = nil
	}
}

// New returns a framework with a mapping for every element variant.
func New() *builder.Framework[*Widget] {
	f := builder.New[*Widget](Backend{})

	builder.Register(f, func(e *element.Label) (*Widget, error) {
		w := newWidget("label", e)
		bindValue(w, &e.ValueElement)
		w.setLabel(e.Text())
		e.OnDestroy(e.SubscribeView(w.setLabel))
		return w, nil
	})
	builder.Register(f, func(e *element.BoolField) (*Widget, error) {
		return valueWidget("bool-field", e, &e.ValueElement), nil
	})
	builder.Register(f, func(e *element.IntField) (*Widget, error) {
		return valueWidget("int-field", e, &e.ValueElement), nil
	})
	builder.Register(f, func(e *element.FloatField) (*Widget, error) {
		return valueWidget("float-field", e, &e.ValueElement), nil
	})
	builder.Register(f, func(e *element.StringField) (*Widget, error) {
		return valueWidget("string-field", e, &e.ValueElement), nil
	})
	builder.Register(f, func(e *element.Dropdown) (*Widget, error) {
		w := valueWidget("dropdown", e, &e.ValueElement)
		w.Options = e.Options()
		return w, nil
	})
	builder.Register(f, func(e *element.IntSlider) (*Widget, error) {
		w := valueWidget("int-slider", e, &e.ValueElement)
		bindBounds(w, e, e.Bounds, e.SubscribeBounds)
		return w, nil
	})
	builder.Register(f, func(e *element.FloatSlider) (*Widget, error) {
		w := valueWidget("float-slider", e, &e.ValueElement)
		bindBounds(w, e, e.Bounds, e.SubscribeBounds)
		return w, nil
	})
	builder.Register(f, func(e *element.IntMinMaxSlider) (*Widget, error) {
		w := valueWidget("int-minmax-slider", e, &e.ValueElement)
		bindBounds(w, e, e.Bounds, e.SubscribeBounds)
		return w, nil
	})
	builder.Register(f, func(e *element.FloatMinMaxSlider) (*Widget, error) {
		w := valueWidget("float-minmax-slider", e, &e.ValueElement)
		bindBounds(w, e, e.Bounds, e.SubscribeBounds)
		return w, nil
	})

	builder.Register(f, container[*element.Row]("row"))
	builder.Register(f, container[*element.Column]("column"))
	builder.Register(f, container[*element.Box]("box"))
	builder.Register(f, container[*element.ScrollView]("scroll-view"))
	builder.Register(f, container[*element.Dynamic]("dynamic"))
	builder.Register(f, func(e *element.ListItem) (*Widget, error) {
		w := newWidget("list-item", e)
		w.click = func() { e.Remove() }
		return w, nil
	})

	builder.Register(f, func(e *element.Fold) (*Widget, error) {
		w := captioned("fold", e)
		e.OnDestroy(e.IsOpen().Subscribe(func(open bool) { w.Open = open }))
		w.click = func() { e.IsOpen().Set(!e.IsOpen().Value()) }
		return w, nil
	})
	builder.Register(f, func(e *element.Window) (*Widget, error) {
		w := captioned("window", e)
		e.OnDestroy(e.IsOpen().Subscribe(func(open bool) { w.Open = open }))
		w.click = e.Toggle
		return w, nil
	})
	builder.Register(f, func(e *element.WindowLauncher) (*Widget, error) {
		w := captioned("launcher", e)
		w.Open = e.IsOpen()
		w.click = func() {
			e.Toggle()
			w.Open = e.IsOpen()
		}
		return w, nil
	})
	builder.Register(f, func(e *element.Button) (*Widget, error) {
		w := captioned("button", e)
		w.click = e.Click
		return w, nil
	})
	builder.Register(f, func(e *element.ListView) (*Widget, error) {
		w := newWidget("list", e)
		w.click = func() { e.Append() }
		return w, nil
	})
	return f
}

func newWidget(kind string, e element.Element) *Widget {
	return &Widget{Kind: kind, Element: e}
}

func (w *Widget) setLabel(text string) {
	w.Label = text
	w.LabelWidth = MeasureLabel(text)
}

// captioned creates a widget that follows the element's caption.
func captioned(kind string, e element.Element) *Widget {
	w := newWidget(kind, e)
	if l := e.Label(); l != nil {
		w.setLabel(l.Text())
		e.OnDestroy(l.SubscribeView(w.setLabel))
	}
	return w
}

func container[E element.Element](kind string) func(E) (*Widget, error) {
	return func(e E) (*Widget, error) {
		return captioned(kind, e), nil
	}
}

func valueWidget[T comparable](kind string, e element.Element, v *element.ValueElement[T]) *Widget {
	w := captioned(kind, e)
	bindValue(w, v)
	return w
}

// bindValue wires the push path into w.Value and the pull path into Edit.
func bindValue[T comparable](w *Widget, v *element.ValueElement[T]) {
	w.Value = v.Value()
	v.OnDestroy(v.SubscribeView(func(x T) { w.Value = x }))
	w.edit = func(x any) error {
		t, ok := x.(T)
		if !ok {
			var zero T
			return fmt.Errorf("headless: %s edit wants %T, got %T", w.Kind, zero, x)
		}
		if err := v.OnViewValueChanged(t); err != nil {
			return err
		}
		w.Value = t
		return nil
	}
}

func bindBounds[N int | float64](w *Widget, e element.Element, get func() (N, N), subscribe func(func(N, N)) func()) {
	w.Min, w.Max = get()
	e.OnDestroy(subscribe(func(min, max N) { w.Min, w.Max = min, max }))
}
