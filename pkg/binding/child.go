package binding

import "github.com/go-drift/rosetta/pkg/errors"

// ChildBinder exposes a sub-value of a parent accessor as its own accessor.
// The parent is shared, not owned.
type ChildBinder[P, C any] struct {
	parent  Getter[P]
	project func(P) C
	inject  func(P, C) P
	kind    Kind
	label   string
}

// NewChildBinder creates a ChildBinder. inject may be nil for a read-only
// child. inject must return the new parent value rather than mutating its
// argument, since the parent may be a list element or a value type.
func NewChildBinder[P, C any](parent Getter[P], project func(P) C, inject func(P, C) P) *ChildBinder[P, C] {
	return &ChildBinder[P, C]{
		parent:  parent,
		project: project,
		inject:  inject,
		kind:    KindOf[C](),
	}
}

// WithLabel sets the label returned by DefaultLabel.
func (c *ChildBinder[P, C]) WithLabel(label string) *ChildBinder[P, C] {
	c.label = label
	return c
}

// Get projects the parent's current value.
func (c *ChildBinder[P, C]) Get() (C, error) {
	p, err := c.parent.Get()
	if err != nil {
		var zero C
		return zero, err
	}
	return c.project(p), nil
}

// Set injects v into the parent's current value and writes the result
// through the parent.
func (c *ChildBinder[P, C]) Set(v C) error {
	parent, ok := c.parent.(Binder[P])
	if !ok || c.IsReadOnly() {
		return &errors.ReadOnlyError{Path: Describe(c)}
	}
	p, err := parent.Get()
	if err != nil {
		return err
	}
	return parent.Set(c.inject(p, v))
}

func (c *ChildBinder[P, C]) Kind() Kind { return c.kind }

func (c *ChildBinder[P, C]) IsReadOnly() bool {
	if c.inject == nil || c.parent.IsReadOnly() {
		return true
	}
	_, ok := c.parent.(Binder[P])
	return !ok
}

func (c *ChildBinder[P, C]) IsConst() bool { return c.parent.IsConst() }

func (c *ChildBinder[P, C]) DefaultLabel() string { return c.label }

// Parent returns the parent accessor.
func (c *ChildBinder[P, C]) Parent() Getter[P] { return c.parent }

// MinOf and MaxOf expose the halves of a MinMax binder.
func MinOf[T Number](parent Getter[MinMax[T]]) *ChildBinder[MinMax[T], T] {
	return NewChildBinder(parent,
		func(mm MinMax[T]) T { return mm.Min },
		func(mm MinMax[T], v T) MinMax[T] { mm.Min = v; return mm },
	).WithLabel("min")
}

// MaxOf is the Max counterpart of MinOf.
func MaxOf[T Number](parent Getter[MinMax[T]]) *ChildBinder[MinMax[T], T] {
	return NewChildBinder(parent,
		func(mm MinMax[T]) T { return mm.Max },
		func(mm MinMax[T], v T) MinMax[T] { mm.Max = v; return mm },
	).WithLabel("max")
}
