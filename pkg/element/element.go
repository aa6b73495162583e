package element

import (
	"fmt"
	"slices"

	"github.com/go-drift/rosetta/pkg/errors"
	"github.com/go-drift/rosetta/pkg/reactive"
)

// DebugMode makes programmer errors such as writes through read-only
// bindings panic after they are reported.
var DebugMode = false

// SetDebugMode enables or disables debug mode.
func SetDebugMode(debug bool) {
	DebugMode = debug
}

// Element is one unit of the abstract UI tree. The set of element types is
// closed; use the constructors in this package.
type Element interface {
	// Label returns the element's label, or nil.
	Label() *Label
	// Enabled controls visibility. Defaults to true.
	Enabled() *reactive.Property[bool]
	// Interactable controls whether the view accepts input.
	Interactable() *reactive.Property[bool]
	// Parent returns the containing element, or nil for a root.
	Parent() Element
	// Children returns child elements in display order.
	Children() []Element
	// Update runs one tick for the element and its subtree.
	Update()
	// Destroy releases the element, its children and every hook registered
	// with OnDestroy. Destroy is idempotent.
	Destroy()
	// IsDestroyed reports whether Destroy has run.
	IsDestroyed() bool
	// OnDestroy registers fn to run when the element is destroyed. Hooks run
	// in reverse registration order, after the children are destroyed.
	OnDestroy(fn func()) (cancel func())

	core() *base
}

type base struct {
	self         Element
	parent       Element
	label        *Label
	enabled      *reactive.Property[bool]
	interactable *reactive.Property[bool]
	children     []Element
	disposers    []func()
	destroyed    bool

	hiddenByBinding bool
	bindingErr      error
}

func (b *base) init(self Element, label *Label) {
	b.self = self
	b.enabled = reactive.NewProperty(true)
	b.interactable = reactive.NewProperty(true)
	if label != nil {
		b.label = label
		if label.parent == nil {
			label.parent = self
		}
	}
}

func (b *base) core() *base                            { return b }
func (b *base) Label() *Label                          { return b.label }
func (b *base) Enabled() *reactive.Property[bool]      { return b.enabled }
func (b *base) Interactable() *reactive.Property[bool] { return b.interactable }
func (b *base) Parent() Element                        { return b.parent }
func (b *base) Children() []Element                    { return b.children }
func (b *base) IsDestroyed() bool                      { return b.destroyed }

// Update ticks the label and the children.
func (b *base) Update() {
	b.updateLabel()
	b.updateChildren()
}

func (b *base) updateLabel() {
	if b.label != nil && !b.label.IsConst() {
		b.label.Update()
	}
}

func (b *base) updateChildren() {
	for _, child := range slices.Clone(b.children) {
		if child.IsDestroyed() {
			continue
		}
		errors.Contain(updateOp(child), child.Update)
	}
}

// adopt appends children, skipping nils. An element can only have one parent.
func (b *base) adopt(children ...Element) {
	for _, child := range children {
		if child == nil {
			continue
		}
		c := child.core()
		if c.parent != nil && c.parent != b.self {
			panic(fmt.Sprintf("element: %T already has a parent", child))
		}
		c.parent = b.self
		b.children = append(b.children, child)
	}
}

// discardChildren destroys all children. Their widgets are disposed before
// this returns.
func (b *base) discardChildren() {
	old := b.children
	b.children = nil
	for _, child := range old {
		child.Destroy()
	}
}

func (b *base) OnDestroy(fn func()) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	if b.destroyed {
		fn()
		return func() {}
	}
	index := len(b.disposers)
	b.disposers = append(b.disposers, fn)
	return func() {
		if index < len(b.disposers) {
			b.disposers[index] = nil
		}
	}
}

func (b *base) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.discardChildren()
	if b.label != nil && b.label.parent == b.self {
		b.label.Destroy()
	}
	for i := len(b.disposers) - 1; i >= 0; i-- {
		if b.disposers[i] != nil {
			b.disposers[i]()
		}
	}
	b.disposers = nil
}

// bindingFailed hides the element until reads succeed again. The error is
// reported once per failure streak.
func (b *base) bindingFailed(op string, err error) {
	b.bindingErr = err
	if b.hiddenByBinding {
		return
	}
	b.hiddenByBinding = true
	b.enabled.Set(false)
	errors.Report(&errors.UIError{
		Op:      op,
		Kind:    errors.KindBinding,
		Err:     err,
		Element: fmt.Sprintf("%T", b.self),
	})
}

func (b *base) bindingRestored() {
	b.bindingErr = nil
	if !b.hiddenByBinding {
		return
	}
	b.hiddenByBinding = false
	b.enabled.Set(true)
}

// BindingErr returns the error from the last failed read, or nil.
func (b *base) BindingErr() error { return b.bindingErr }

// Tick runs one tick over the tree rooted at root.
func Tick(root Element) {
	if root == nil || root.IsDestroyed() {
		return
	}
	errors.Contain(updateOp(root), root.Update)
}

// Walk visits root and its descendants depth-first, parent before children.
// Returning false from visit skips the element's subtree.
func Walk(root Element, visit func(Element) bool) {
	if root == nil || !visit(root) {
		return
	}
	for _, child := range root.Children() {
		Walk(child, visit)
	}
}

func updateOp(e Element) string {
	return fmt.Sprintf("%T.Update", e)
}

// listeners is a single-threaded callback list.
type listeners[T any] struct {
	fns []*func(T)
}

func (l *listeners[T]) add(fn func(T)) func() {
	p := &fn
	l.fns = append(l.fns, p)
	return func() {
		if i := slices.Index(l.fns, p); i >= 0 {
			l.fns = slices.Delete(l.fns, i, i+1)
		}
	}
}

func (l *listeners[T]) notify(v T) {
	for _, fn := range slices.Clone(l.fns) {
		(*fn)(v)
	}
}

func (l *listeners[T]) len() int { return len(l.fns) }
