package binding

import (
	"fmt"
	"reflect"

	"github.com/go-drift/rosetta/pkg/errors"
)

// Accessor is the kind-level view of a getter or binder, used for dispatch.
type Accessor interface {
	// Kind is the declared value kind. It never changes.
	Kind() Kind
	// IsReadOnly reports whether writes are rejected. It is static.
	IsReadOnly() bool
	// IsConst reports whether the value never changes.
	IsConst() bool
}

// Getter reads a value.
type Getter[T any] interface {
	Accessor
	// Get returns the current value, or a *errors.BindingError when the
	// source storage is unreachable.
	Get() (T, error)
}

// Binder reads and writes a value.
type Binder[T any] interface {
	Getter[T]
	// Set writes v. Read-only binders return *errors.ReadOnlyError and
	// leave storage untouched.
	Set(v T) error
}

// Labeled is implemented by accessors that can suggest a label.
type Labeled interface {
	DefaultLabel() string
}

type constGetter[T any] struct {
	value T
}

// Const returns a getter that always yields value.
func Const[T any](value T) Getter[T] {
	return constGetter[T]{value: value}
}

// ConstSlice returns a getter over a fixed collection. The same slice is
// returned by every read.
func ConstSlice[T any](values ...T) Getter[[]T] {
	return constGetter[[]T]{value: values}
}

func (c constGetter[T]) Get() (T, error)  { return c.value, nil }
func (c constGetter[T]) Kind() Kind       { return KindOf[T]() }
func (c constGetter[T]) IsReadOnly() bool { return true }
func (c constGetter[T]) IsConst() bool    { return true }

type funcGetter[T any] struct {
	get  func() T
	kind Kind
}

// Func returns a read-only getter over a computed value.
func Func[T any](get func() T) Getter[T] {
	return &funcGetter[T]{get: get, kind: KindOf[T]()}
}

func (f *funcGetter[T]) Get() (T, error)  { return f.get(), nil }
func (f *funcGetter[T]) Kind() Kind       { return f.kind }
func (f *funcGetter[T]) IsReadOnly() bool { return true }
func (f *funcGetter[T]) IsConst() bool    { return false }

// FuncBinder is a binder over a getter and setter pair. A nil set makes it
// read-only.
type FuncBinder[T any] struct {
	get   func() T
	set   func(T)
	kind  Kind
	label string
}

// NewFuncBinder creates a FuncBinder.
func NewFuncBinder[T any](get func() T, set func(T)) *FuncBinder[T] {
	return &FuncBinder[T]{get: get, set: set, kind: KindOf[T]()}
}

// Ptr returns a binder over the variable p points to.
func Ptr[T any](p *T) *FuncBinder[T] {
	return NewFuncBinder(func() T { return *p }, func(v T) { *p = v })
}

// WithLabel sets the label returned by DefaultLabel.
func (f *FuncBinder[T]) WithLabel(label string) *FuncBinder[T] {
	f.label = label
	return f
}

func (f *FuncBinder[T]) Get() (T, error) { return f.get(), nil }

func (f *FuncBinder[T]) Set(v T) error {
	if f.set == nil {
		return &errors.ReadOnlyError{Path: f.describe()}
	}
	f.set(v)
	return nil
}

func (f *FuncBinder[T]) Kind() Kind           { return f.kind }
func (f *FuncBinder[T]) IsReadOnly() bool     { return f.set == nil }
func (f *FuncBinder[T]) IsConst() bool        { return false }
func (f *FuncBinder[T]) DefaultLabel() string { return f.label }

func (f *FuncBinder[T]) describe() string {
	if f.label != "" {
		return f.label
	}
	return fmt.Sprintf("func(%s)", reflect.TypeFor[T]())
}

type readOnly[T any] struct {
	Getter[T]
}

// ReadOnly exposes g as a binder whose writes always fail.
func ReadOnly[T any](g Getter[T]) Binder[T] {
	return readOnly[T]{Getter: g}
}

func (r readOnly[T]) IsReadOnly() bool { return true }

func (r readOnly[T]) Set(T) error {
	return &errors.ReadOnlyError{Path: Describe(r.Getter)}
}

func (r readOnly[T]) DeclaredRange() (float64, float64, bool) {
	return declaredRange(r.Getter)
}

// OnChanged wraps b so fn runs after every successful write.
func OnChanged[T any](b Binder[T], fn func(T)) Binder[T] {
	if fn == nil {
		return b
	}
	return &notifying[T]{Binder: b, fn: fn}
}

type notifying[T any] struct {
	Binder[T]
	fn func(T)
}

func (n *notifying[T]) Set(v T) error {
	if err := n.Binder.Set(v); err != nil {
		return err
	}
	n.fn(v)
	return nil
}

func (n *notifying[T]) DefaultLabel() string {
	if l, ok := n.Binder.(Labeled); ok {
		return l.DefaultLabel()
	}
	return ""
}

func (n *notifying[T]) DeclaredRange() (float64, float64, bool) {
	return declaredRange(n.Binder)
}

// Describe returns a short description of acc for error messages.
func Describe(acc Accessor) string {
	if l, ok := acc.(Labeled); ok && l.DefaultLabel() != "" {
		return l.DefaultLabel()
	}
	return fmt.Sprintf("%T", acc)
}
