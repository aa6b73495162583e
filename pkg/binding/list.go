package binding

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/go-drift/rosetta/pkg/errors"
)

// ListAccessor gives index-level access to a list-kinded accessor. Structural
// edits build a new slice and write it through the list's writer.
type ListAccessor interface {
	Accessor
	// Len returns the current length.
	Len() (int, error)
	// Item returns an accessor bound to index i. Its reads fail with a
	// binding error once the list no longer has index i.
	Item(i int) Accessor
	// Append adds a zero element at the end.
	Append() error
	// RemoveAt removes the element at index i.
	RemoveAt(i int) error
}

type typedList[T any] struct {
	Getter[[]T]
}

// List adapts a typed slice accessor. Items are ChildBinders keyed by index.
func List[T any](g Getter[[]T]) ListAccessor {
	return typedList[T]{Getter: g}
}

func (l typedList[T]) Len() (int, error) {
	v, err := l.Get()
	return len(v), err
}

func (l typedList[T]) Item(i int) Accessor {
	return l.TypedItem(i)
}

// TypedItem is Item with its concrete type.
func (l typedList[T]) TypedItem(i int) *ChildBinder[[]T, T] {
	var inject func([]T, T) []T
	if !l.IsReadOnly() {
		inject = func(list []T, v T) []T {
			next := slices.Clone(list)
			if i < len(next) {
				next[i] = v
			}
			return next
		}
	}
	return &ChildBinder[[]T, T]{
		parent: indexGuard[T]{Getter: l.Getter, index: i},
		project: func(list []T) T {
			return list[i]
		},
		inject: inject,
		kind:   KindOf[T](),
		label:  fmt.Sprintf("Element %d", i),
	}
}

func (l typedList[T]) Append() error {
	b, ok := l.Getter.(Binder[[]T])
	if !ok || l.IsReadOnly() {
		return &errors.ReadOnlyError{Path: Describe(l.Getter)}
	}
	cur, err := b.Get()
	if err != nil {
		return err
	}
	var zero T
	return b.Set(append(slices.Clone(cur), zero))
}

func (l typedList[T]) RemoveAt(i int) error {
	b, ok := l.Getter.(Binder[[]T])
	if !ok || l.IsReadOnly() {
		return &errors.ReadOnlyError{Path: Describe(l.Getter)}
	}
	cur, err := b.Get()
	if err != nil {
		return err
	}
	if i < 0 || i >= len(cur) {
		return fmt.Errorf("binding: remove index %d out of range [0,%d)", i, len(cur))
	}
	return b.Set(slices.Delete(slices.Clone(cur), i, i+1))
}

// indexGuard fails reads of a list that has become too short for index.
// It forwards writes to the list binder.
type indexGuard[T any] struct {
	Getter[[]T]
	index int
}

func (g indexGuard[T]) Get() ([]T, error) {
	v, err := g.Getter.Get()
	if err != nil {
		return nil, err
	}
	if g.index >= len(v) {
		return nil, &errors.BindingError{
			Path:   Describe(g.Getter),
			Reason: fmt.Sprintf("index %d out of range [0,%d)", g.index, len(v)),
		}
	}
	return v, nil
}

func (g indexGuard[T]) Set(v []T) error {
	b, ok := g.Getter.(Binder[[]T])
	if !ok {
		return &errors.ReadOnlyError{Path: Describe(g.Getter)}
	}
	return b.Set(v)
}

// AsList adapts any list-kinded accessor. Typed accessors over common slice
// types go through List; other slice types are adapted by reflection, with
// item accessors typed for the primitive element kinds.
func AsList(acc Accessor) (ListAccessor, bool) {
	if l, ok := acc.(ListAccessor); ok {
		return l, true
	}
	if acc == nil || acc.Kind() != KindList {
		return nil, false
	}
	switch g := acc.(type) {
	case Getter[[]bool]:
		return List(g), true
	case Getter[[]int]:
		return List(g), true
	case Getter[[]float64]:
		return List(g), true
	case Getter[[]string]:
		return List(g), true
	}
	rl, err := newReflectList(acc)
	if err != nil {
		return nil, false
	}
	return rl, true
}

// reflectList drives an accessor's Get and Set methods by reflection.
type reflectList struct {
	Accessor
	get  reflect.Value
	set  reflect.Value
	elem reflect.Type
}

func newReflectList(acc Accessor) (*reflectList, error) {
	rv := reflect.ValueOf(acc)
	get := rv.MethodByName("Get")
	if !get.IsValid() || get.Type().NumIn() != 0 || get.Type().NumOut() != 2 {
		return nil, fmt.Errorf("binding: %T has no Get method", acc)
	}
	st := get.Type().Out(0)
	if st.Kind() != reflect.Slice {
		return nil, fmt.Errorf("binding: %T does not read a slice", acc)
	}
	return &reflectList{
		Accessor: acc,
		get:      get,
		set:      rv.MethodByName("Set"),
		elem:     st.Elem(),
	}, nil
}

func (l *reflectList) read() (reflect.Value, error) {
	out := l.get.Call(nil)
	if err, _ := out[1].Interface().(error); err != nil {
		return reflect.Value{}, err
	}
	return out[0], nil
}

func (l *reflectList) write(v reflect.Value) error {
	if !l.set.IsValid() || l.IsReadOnly() {
		return &errors.ReadOnlyError{Path: Describe(l.Accessor)}
	}
	out := l.set.Call([]reflect.Value{v})
	err, _ := out[0].Interface().(error)
	return err
}

func (l *reflectList) Len() (int, error) {
	v, err := l.read()
	if err != nil {
		return 0, err
	}
	return v.Len(), nil
}

func (l *reflectList) clone(v reflect.Value, extra int) reflect.Value {
	next := reflect.MakeSlice(v.Type(), v.Len(), v.Len()+extra)
	reflect.Copy(next, v)
	return next
}

func (l *reflectList) Append() error {
	v, err := l.read()
	if err != nil {
		return err
	}
	next := reflect.Append(l.clone(v, 1), reflect.Zero(l.elem))
	return l.write(next)
}

func (l *reflectList) RemoveAt(i int) error {
	v, err := l.read()
	if err != nil {
		return err
	}
	if i < 0 || i >= v.Len() {
		return fmt.Errorf("binding: remove index %d out of range [0,%d)", i, v.Len())
	}
	next := reflect.AppendSlice(l.clone(v.Slice(0, i), v.Len()-i-1), v.Slice(i+1, v.Len()))
	return l.write(next)
}

func (l *reflectList) Item(i int) Accessor {
	switch l.elem {
	case boolType:
		return &reflectItem[bool]{list: l, index: i}
	case intType:
		return &reflectItem[int]{list: l, index: i}
	case floatType:
		return &reflectItem[float64]{list: l, index: i}
	case stringType:
		return &reflectItem[string]{list: l, index: i}
	case minMaxIntType:
		return &reflectItem[MinMax[int]]{list: l, index: i}
	case minMaxFloatType:
		return &reflectItem[MinMax[float64]]{list: l, index: i}
	}
	return &reflectItem[any]{list: l, index: i, kind: kindOfType(l.elem)}
}

// reflectItem is a Binder[T] over one element of a reflectList. For
// element types without a typed mapping T is any and kind is computed from
// the element type.
type reflectItem[T any] struct {
	list  *reflectList
	index int
	kind  Kind
}

func (it *reflectItem[T]) Get() (T, error) {
	var zero T
	v, err := it.list.read()
	if err != nil {
		return zero, err
	}
	if it.index >= v.Len() {
		return zero, &errors.BindingError{
			Path:   Describe(it.list.Accessor),
			Reason: fmt.Sprintf("index %d out of range [0,%d)", it.index, v.Len()),
		}
	}
	return v.Index(it.index).Interface().(T), nil
}

func (it *reflectItem[T]) Set(x T) error {
	v, err := it.list.read()
	if err != nil {
		return err
	}
	if it.index >= v.Len() {
		return &errors.BindingError{Path: Describe(it.list.Accessor), Reason: "index out of range"}
	}
	val := reflect.ValueOf(&x).Elem()
	if val.Kind() == reflect.Interface {
		val = val.Elem()
	}
	if !val.IsValid() || !val.Type().AssignableTo(it.list.elem) {
		return fmt.Errorf("binding: cannot store %T in list of %s", x, it.list.elem)
	}
	next := it.list.clone(v, 0)
	next.Index(it.index).Set(val)
	return it.list.write(next)
}

func (it *reflectItem[T]) Kind() Kind {
	if it.kind != KindUnsupported {
		return it.kind
	}
	return KindOf[T]()
}

func (it *reflectItem[T]) IsReadOnly() bool     { return it.list.IsReadOnly() }
func (it *reflectItem[T]) IsConst() bool        { return it.list.IsConst() }
func (it *reflectItem[T]) DefaultLabel() string { return fmt.Sprintf("Element %d", it.index) }
