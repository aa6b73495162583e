// Package ui is the top-level entry point: stateless constructors that build
// accessors from host state, pick the element variant and assemble trees.
//
//	root := ui.Column(
//	    ui.Field[bool](player, "Alive"),
//	    ui.Slider[float64](player, "Stats.Speed"),
//	    ui.List("Inventory", &player.Inventory),
//	    ui.DynamicElementIf(
//	        func() bool { return player.Alive },
//	        func() element.Element { return ui.Label("alive") },
//	    ),
//	)
//
// Constructors that bind by field path return nil when the path cannot be
// bound or its kind has no element; the failure is reported to the error
// handler. Nil children are skipped by every container.
package ui

import (
	"fmt"

	"github.com/go-drift/rosetta/pkg/binding"
	"github.com/go-drift/rosetta/pkg/element"
	"github.com/go-drift/rosetta/pkg/errors"
)

// Label creates a constant label.
func Label(text string) *element.Label {
	return element.NewLabel(text)
}

// LabelFunc creates a label whose text is read every tick.
func LabelFunc(text func() string) *element.Label {
	return element.NewLabelFunc(text)
}

// Button creates a button.
func Button(label string, onClick func()) *element.Button {
	return element.NewButton(labelOrNil(label), onClick)
}

// Field binds the value at path inside target and creates the element for
// its kind. The label is the last field name of the path. onValueChanged,
// if given, runs after every successful edit.
func Field[T any](target any, path string, onValueChanged ...func(T)) element.Element {
	b, err := binding.Field[T](target, path)
	if err != nil {
		reportBind("ui.Field", err)
		return nil
	}
	return FieldOf("", withHooks[T](b, onValueChanged))
}

// FieldOf creates the element for any accessor. An empty label falls back
// to the accessor's default label.
func FieldOf(label string, acc binding.Accessor) element.Element {
	e := element.CreateFieldElement(labelFor(label, acc), acc)
	if e == nil && acc != nil {
		reportUnsupported("ui.FieldOf", acc)
	}
	return e
}

// Slider binds the numeric value at path with bounds taken from the field's
// range tag. Without a range tag it falls back to a plain field.
func Slider[N binding.Number](target any, path string, onValueChanged ...func(N)) element.Element {
	return slider[N](target, path, nil, nil, onValueChanged)
}

// SliderRange is Slider with explicit bounds, which take precedence over a
// range tag.
func SliderRange[N binding.Number](target any, path string, min, max N, onValueChanged ...func(N)) element.Element {
	return slider(target, path, binding.Const(min), binding.Const(max), onValueChanged)
}

// SliderMax is Slider with an explicit max and a zero min.
func SliderMax[N binding.Number](target any, path string, max N, onValueChanged ...func(N)) element.Element {
	return slider(target, path, nil, binding.Const(max), onValueChanged)
}

// SliderOf creates a slider for any accessor. Nil bounds come from the
// accessor's declared range.
func SliderOf[N binding.Number](label string, acc binding.Getter[N], min, max binding.Getter[N]) element.Element {
	var lo, hi binding.Accessor
	if min != nil {
		lo = min
	}
	if max != nil {
		hi = max
	}
	if e := element.CreateSliderElement(labelFor(label, acc), acc, lo, hi); e != nil {
		return e
	}
	return FieldOf(label, acc)
}

func slider[N binding.Number](target any, path string, min, max binding.Getter[N], hooks []func(N)) element.Element {
	b, err := binding.Field[N](target, path)
	if err != nil {
		reportBind("ui.Slider", err)
		return nil
	}
	return SliderOf("", withHooks[N](b, hooks), min, max)
}

// MinMaxSlider binds a MinMax value at path with bounds from the field's
// range tag, falling back to a pair of fields.
func MinMaxSlider[N binding.Number](target any, path string, onValueChanged ...func(binding.MinMax[N])) element.Element {
	return minMaxSlider[N](target, path, nil, nil, onValueChanged)
}

// MinMaxSliderRange is MinMaxSlider with explicit bounds.
func MinMaxSliderRange[N binding.Number](target any, path string, min, max N, onValueChanged ...func(binding.MinMax[N])) element.Element {
	return minMaxSlider(target, path, binding.Const(min), binding.Const(max), onValueChanged)
}

// MinMaxSliderMax is MinMaxSlider with an explicit max and a zero min.
func MinMaxSliderMax[N binding.Number](target any, path string, max N, onValueChanged ...func(binding.MinMax[N])) element.Element {
	return minMaxSlider(target, path, nil, binding.Const(max), onValueChanged)
}

func minMaxSlider[N binding.Number](target any, path string, min, max binding.Getter[N], hooks []func(binding.MinMax[N])) element.Element {
	b, err := binding.Field[binding.MinMax[N]](target, path)
	if err != nil {
		reportBind("ui.MinMaxSlider", err)
		return nil
	}
	acc := withHooks[binding.MinMax[N]](b, hooks)
	var lo, hi binding.Accessor
	if min != nil {
		lo = min
	}
	if max != nil {
		hi = max
	}
	if e := element.CreateMinMaxSliderElement(labelFor("", acc), acc, lo, hi); e != nil {
		return e
	}
	return FieldOf("", acc)
}

// Dropdown binds an int option index at path.
func Dropdown(target any, path string, options []string, onValueChanged ...func(int)) element.Element {
	b, err := binding.Field[int](target, path)
	if err != nil {
		reportBind("ui.Dropdown", err)
		return nil
	}
	acc := withHooks[int](b, onValueChanged)
	return element.NewDropdown(labelFor("", acc), acc, options)
}

// List shows the slice at values in a fold, one field per item, with
// append and remove affordances.
func List[T any](label string, values *[]T) element.Element {
	return ListOf(label, values, nil)
}

// ListOf is List with a custom item element. createItem receives the item
// accessor, keyed by index, and the index.
func ListOf[T any](label string, values *[]T, createItem func(item *binding.ChildBinder[[]T, T], index int) element.Element) element.Element {
	list := binding.List[T](binding.Ptr(values).WithLabel(label))
	var factory element.ItemFactory
	if createItem != nil {
		typed := list.(interface {
			TypedItem(i int) *binding.ChildBinder[[]T, T]
		})
		factory = func(_ binding.Accessor, index int) element.Element {
			return createItem(typed.TypedItem(index), index)
		}
	}
	return element.CreateListElement(labelOrNil(label), list, factory)
}

// Row lays out children horizontally.
func Row(children ...element.Element) *element.Row {
	return element.NewRow(children...)
}

// Column lays out children vertically.
func Column(children ...element.Element) *element.Column {
	return element.NewColumn(children...)
}

// Box groups children in a frame.
func Box(children ...element.Element) *element.Box {
	return element.NewBox(children...)
}

// ScrollView creates a scrollable column.
func ScrollView(children ...element.Element) *element.ScrollView {
	return element.NewScrollView(children...)
}

// Fold creates a closed collapsible group.
func Fold(title string, children ...element.Element) *element.Fold {
	return element.NewFold(labelOrNil(title), children...)
}

// Window creates an open window.
func Window(title string, children ...element.Element) *element.Window {
	return element.NewWindow(labelOrNil(title), children...)
}

// WindowLauncher creates a launcher for w, titled like w. The window starts
// closed.
func WindowLauncher(w *element.Window) *element.WindowLauncher {
	return element.NewWindowLauncher(nil, w)
}

// LazyWindowLauncher creates a launcher whose window is built on first open.
func LazyWindowLauncher(title string, build func() *element.Window) *element.WindowLauncher {
	return element.NewLazyWindowLauncher(labelOrNil(title), build)
}

func labelOrNil(text string) *element.Label {
	if text == "" {
		return nil
	}
	return element.NewLabel(text)
}

func labelFor(text string, acc binding.Accessor) *element.Label {
	if text == "" {
		if l, ok := acc.(binding.Labeled); ok {
			text = l.DefaultLabel()
		}
	}
	return labelOrNil(text)
}

// withHooks chains onValueChanged callbacks onto b.
func withHooks[T any](b binding.Binder[T], hooks []func(T)) binding.Binder[T] {
	for _, fn := range hooks {
		b = binding.OnChanged(b, fn)
	}
	return b
}

func reportBind(op string, err error) {
	errors.Report(&errors.UIError{Op: op, Kind: errors.KindBinding, Err: err})
}

func reportUnsupported(op string, acc binding.Accessor) {
	errors.Report(&errors.UIError{
		Op:   op,
		Kind: errors.KindUnsupported,
		Err:  &errors.UnsupportedError{What: fmt.Sprintf("%s value", acc.Kind()), By: "factory"},
	})
}
