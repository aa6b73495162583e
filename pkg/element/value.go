package element

import (
	"fmt"
	"math"

	"github.com/go-drift/rosetta/pkg/binding"
	"github.com/go-drift/rosetta/pkg/errors"
)

// ValueElement is a leaf bound to a value. It caches the value last pushed
// to the view and only pushes again when a tick reads something different.
type ValueElement[T comparable] struct {
	base
	getter binding.Getter[T]
	cached T
	view   listeners[T]
}

func (v *ValueElement[T]) initValue(self Element, label *Label, getter binding.Getter[T]) {
	v.init(self, label)
	v.getter = getter
	v.interactable.Set(!getter.IsReadOnly())
	value, err := getter.Get()
	if err != nil {
		v.bindingFailed(fmt.Sprintf("%T.Get", self), err)
		return
	}
	v.cached = value
}

// Binding returns the element's accessor.
func (v *ValueElement[T]) Binding() binding.Getter[T] { return v.getter }

// Value returns the value last pushed to the view.
func (v *ValueElement[T]) Value() T { return v.cached }

// InitialValue returns the value read at construction, or the latest pushed
// value if the element has ticked since.
func (v *ValueElement[T]) InitialValue() T { return v.cached }

// IsConst reports whether the bound value can never change.
func (v *ValueElement[T]) IsConst() bool { return v.getter.IsConst() }

// SubscribeView registers the push path: fn runs whenever a tick observes a
// value different from the last one pushed.
func (v *ValueElement[T]) SubscribeView(fn func(T)) (unsubscribe func()) {
	return v.view.add(fn)
}

// Update reads the binding and pushes a changed value to the view.
func (v *ValueElement[T]) Update() {
	v.updateLabel()
	value, err := v.getter.Get()
	if err != nil {
		v.bindingFailed(fmt.Sprintf("%T.Get", v.self), err)
		return
	}
	v.bindingRestored()
	if !sameValue(value, v.cached) {
		v.cached = value
		v.view.notify(value)
	}
}

// sameValue is == except that NaN equals NaN, so a float stuck at NaN is
// pushed once rather than on every tick.
func sameValue[T comparable](a, b T) bool {
	if a == b {
		return true
	}
	switch x := any(a).(type) {
	case float64:
		return math.IsNaN(x) && math.IsNaN(any(b).(float64))
	case float32:
		return math.IsNaN(float64(x)) && math.IsNaN(float64(any(b).(float32)))
	case binding.MinMax[float64]:
		y := any(b).(binding.MinMax[float64])
		return sameValue(x.Min, y.Min) && sameValue(x.Max, y.Max)
	}
	return false
}

// OnViewValueChanged is the pull path: the view reports a user edit, which
// is written through the binding. The cache is updated so the next tick does
// not echo the value back.
func (v *ValueElement[T]) OnViewValueChanged(value T) error {
	b, ok := v.getter.(binding.Binder[T])
	if !ok || v.getter.IsReadOnly() {
		err := &errors.ReadOnlyError{Path: binding.Describe(v.getter)}
		errors.Report(&errors.UIError{
			Op:      fmt.Sprintf("%T.OnViewValueChanged", v.self),
			Kind:    errors.KindReadOnly,
			Err:     err,
			Element: fmt.Sprintf("%T", v.self),
		})
		if DebugMode {
			panic(err)
		}
		return err
	}
	if err := b.Set(value); err != nil {
		errors.Report(&errors.UIError{
			Op:      fmt.Sprintf("%T.OnViewValueChanged", v.self),
			Kind:    errors.KindBinding,
			Err:     err,
			Element: fmt.Sprintf("%T", v.self),
		})
		return err
	}
	v.cached = value
	return nil
}

// Label is a text element. Labels are also attached to other elements as
// their captions.
type Label struct {
	ValueElement[string]
}

// NewLabel creates a constant label.
func NewLabel(text string) *Label {
	return NewLabelGetter(binding.Const(text))
}

// NewLabelFunc creates a label whose text is recomputed every tick.
func NewLabelFunc(text func() string) *Label {
	return NewLabelGetter(binding.Func(text))
}

// NewLabelGetter creates a label over any string getter.
func NewLabelGetter(g binding.Getter[string]) *Label {
	l := &Label{}
	l.initValue(l, nil, g)
	return l
}

// Text returns the current text.
func (l *Label) Text() string {
	if l == nil {
		return ""
	}
	return l.cached
}

// BoolField is a toggle.
type BoolField struct {
	ValueElement[bool]
}

// NewBoolField creates a BoolField.
func NewBoolField(label *Label, g binding.Getter[bool]) *BoolField {
	e := &BoolField{}
	e.initValue(e, label, g)
	return e
}

// IntField is an integer input.
type IntField struct {
	ValueElement[int]
}

// NewIntField creates an IntField.
func NewIntField(label *Label, g binding.Getter[int]) *IntField {
	e := &IntField{}
	e.initValue(e, label, g)
	return e
}

// FloatField is a floating point input.
type FloatField struct {
	ValueElement[float64]
}

// NewFloatField creates a FloatField.
func NewFloatField(label *Label, g binding.Getter[float64]) *FloatField {
	e := &FloatField{}
	e.initValue(e, label, g)
	return e
}

// StringField is a text input.
type StringField struct {
	ValueElement[string]
}

// NewStringField creates a StringField.
func NewStringField(label *Label, g binding.Getter[string]) *StringField {
	e := &StringField{}
	e.initValue(e, label, g)
	return e
}

// Dropdown selects one of a fixed list of options by index.
type Dropdown struct {
	ValueElement[int]
	options []string
}

// NewDropdown creates a Dropdown.
func NewDropdown(label *Label, g binding.Getter[int], options []string) *Dropdown {
	e := &Dropdown{options: options}
	e.initValue(e, label, g)
	return e
}

// Options returns the option labels.
func (d *Dropdown) Options() []string { return d.options }

// Selected returns the label of the selected option, or "".
func (d *Dropdown) Selected() string {
	if i := d.cached; i >= 0 && i < len(d.options) {
		return d.options[i]
	}
	return ""
}
