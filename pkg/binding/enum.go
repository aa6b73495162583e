package binding

import (
	"fmt"
	"reflect"

	"github.com/go-drift/rosetta/pkg/errors"
)

// EnumIndex is a Binder[int] over an enum-kinded accessor. The int is the
// option index.
type EnumIndex struct {
	source  Accessor
	get     reflect.Value
	set     reflect.Value
	typ     reflect.Type
	options []string
}

// AsEnum adapts an enum-kinded accessor to an index binder plus its options.
func AsEnum(acc Accessor) (*EnumIndex, bool) {
	if acc == nil || acc.Kind() != KindEnum {
		return nil, false
	}
	rv := reflect.ValueOf(acc)
	get := rv.MethodByName("Get")
	if !get.IsValid() || get.Type().NumIn() != 0 || get.Type().NumOut() != 2 {
		return nil, false
	}
	e := &EnumIndex{source: acc, get: get, set: rv.MethodByName("Set")}

	typ := get.Type().Out(0)
	if typ.Kind() == reflect.Interface {
		// Element of an untyped list: learn the type from the value.
		out := get.Call(nil)
		if !out[0].IsValid() || out[0].IsNil() {
			return nil, false
		}
		typ = out[0].Elem().Type()
	}
	opts, ok := reflect.Zero(typ).Interface().(Enum)
	if !ok {
		return nil, false
	}
	e.typ = typ
	e.options = opts.EnumOptions()
	return e, true
}

// Options returns the option labels.
func (e *EnumIndex) Options() []string { return e.options }

// Get returns the option index of the current value.
func (e *EnumIndex) Get() (int, error) {
	out := e.get.Call(nil)
	if err, _ := out[1].Interface().(error); err != nil {
		return 0, err
	}
	v := out[0]
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if v.CanInt() {
		return int(v.Int()), nil
	}
	return int(v.Uint()), nil
}

// Set stores the enum value with index i.
func (e *EnumIndex) Set(i int) error {
	if !e.set.IsValid() || e.source.IsReadOnly() {
		return &errors.ReadOnlyError{Path: Describe(e.source)}
	}
	if i < 0 || i >= len(e.options) {
		return fmt.Errorf("binding: option %d out of range [0,%d)", i, len(e.options))
	}
	v := reflect.New(e.typ).Elem()
	if v.CanInt() {
		v.SetInt(int64(i))
	} else {
		v.SetUint(uint64(i))
	}
	out := e.set.Call([]reflect.Value{v})
	err, _ := out[0].Interface().(error)
	return err
}

func (e *EnumIndex) Kind() Kind       { return KindInt }
func (e *EnumIndex) IsReadOnly() bool { return e.source.IsReadOnly() || !e.set.IsValid() }
func (e *EnumIndex) IsConst() bool    { return e.source.IsConst() }

func (e *EnumIndex) DefaultLabel() string {
	if l, ok := e.source.(Labeled); ok {
		return l.DefaultLabel()
	}
	return ""
}
