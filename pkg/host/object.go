package host

import (
	"reflect"
	"slices"
)

// Object is a host object with a lifetime the host controls.
type Object interface {
	// Destroyed reports whether the object has been finalized. Accessors
	// bound into a destroyed object fail with a binding error.
	Destroyed() bool
}

// Lookup finds live host objects.
type Lookup interface {
	// FindLiveInstance returns the first live object assignable to typ, or
	// nil. typ may be an interface type.
	FindLiveInstance(typ reflect.Type) any
}

// Registry is an in-memory Lookup. Objects are live from Add until Remove,
// or until they report Destroyed.
type Registry struct {
	objects []any
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a live object.
func (r *Registry) Add(obj any) {
	if obj == nil || slices.Contains(r.objects, obj) {
		return
	}
	r.objects = append(r.objects, obj)
}

// Remove unregisters obj. It returns false if obj was not registered.
func (r *Registry) Remove(obj any) bool {
	i := slices.Index(r.objects, obj)
	if i < 0 {
		return false
	}
	r.objects = slices.Delete(r.objects, i, i+1)
	return true
}

// FindLiveInstance implements Lookup.
func (r *Registry) FindLiveInstance(typ reflect.Type) any {
	for _, obj := range r.objects {
		if typ == nil || !reflect.TypeOf(obj).AssignableTo(typ) {
			continue
		}
		if o, ok := obj.(Object); ok && o.Destroyed() {
			continue
		}
		return obj
	}
	return nil
}

// Find is a typed FindLiveInstance.
func Find[T any](l Lookup) (T, bool) {
	var zero T
	if l == nil {
		return zero, false
	}
	obj := l.FindLiveInstance(reflect.TypeFor[T]())
	if obj == nil {
		return zero, false
	}
	t, ok := obj.(T)
	return t, ok
}

// Lifetime is an embeddable Object implementation.
type Lifetime struct {
	destroyed bool
}

// Destroy marks the object as finalized.
func (l *Lifetime) Destroy() { l.destroyed = true }

// Destroyed implements Object.
func (l *Lifetime) Destroyed() bool { return l.destroyed }
