package element

import (
	"fmt"
	"time"

	"github.com/go-drift/rosetta/pkg/errors"
)

// DynamicState describes whether a Dynamic element currently holds contents.
type DynamicState int

const (
	// Empty means no contents: not built yet, built nothing, or failed.
	Empty DynamicState = iota
	// Populated means the last rebuild produced an element.
	Populated
)

func (s DynamicState) String() string {
	if s == Populated {
		return "populated"
	}
	return "empty"
}

// Dynamic is a container whose contents are produced by a build function and
// replaced wholesale when its trigger fires. Contents are never reused
// across rebuilds.
type Dynamic struct {
	base
	build     func() Element
	rebuildIf func(*Dynamic) bool
	rebuilds  int
	err       *errors.RebuildError
	rebuilt   listeners[struct{}]
}

// NewDynamic creates a Dynamic with an explicit trigger: rebuildIf is asked
// every tick, with the element itself, whether to rebuild. The first build
// runs immediately.
func NewDynamic(build func() Element, rebuildIf func(*Dynamic) bool) *Dynamic {
	d := &Dynamic{build: build, rebuildIf: rebuildIf}
	d.init(d, nil)
	d.populate()
	return d
}

// NewDynamicOnStatusChanged rebuilds whenever readStatus returns a value not
// equal to the one read on the previous evaluation. The status is recorded
// on every evaluation, so repeated equal reads never rebuild.
func NewDynamicOnStatusChanged[S comparable](readStatus func() S, build func(S) Element) *Dynamic {
	status := readStatus()
	return NewDynamic(
		func() Element { return build(status) },
		func(*Dynamic) bool {
			next := readStatus()
			changed := next != status
			status = next
			return changed
		},
	)
}

// NewDynamicIf shows build's element while condition holds. Each flip of the
// condition rebuilds exactly once.
func NewDynamicIf(condition func() bool, build func() Element) *Dynamic {
	return NewDynamicOnStatusChanged(condition, func(show bool) Element {
		if !show {
			return nil
		}
		return build()
	})
}

// Contents returns the current contents, if any.
func (d *Dynamic) Contents() []Element { return d.children }

// State reports Empty or Populated.
func (d *Dynamic) State() DynamicState {
	if len(d.children) > 0 {
		return Populated
	}
	return Empty
}

// RebuildCount returns how many times the trigger caused a rebuild. The
// initial build is not counted.
func (d *Dynamic) RebuildCount() int { return d.rebuilds }

// Err returns the error from the last build, or nil if it succeeded.
func (d *Dynamic) Err() error {
	if d.err == nil {
		return nil
	}
	return d.err
}

// OnRebuild registers fn to run after the contents were replaced. The old
// contents are already destroyed when fn runs.
func (d *Dynamic) OnRebuild(fn func()) (cancel func()) {
	return d.rebuilt.add(func(struct{}) { fn() })
}

// Update evaluates the trigger. On rebuild the new contents are left for the
// next tick; otherwise the current contents are ticked.
func (d *Dynamic) Update() {
	if d.shouldRebuild() {
		d.Rebuild()
		return
	}
	d.updateChildren()
}

// Rebuild discards the contents and runs the build function now.
func (d *Dynamic) Rebuild() {
	d.rebuilds++
	d.populate()
	d.rebuilt.notify(struct{}{})
}

func (d *Dynamic) shouldRebuild() bool {
	if d.rebuildIf == nil {
		return false
	}
	var fire bool
	perr := errors.Contain("element.Dynamic.rebuildIf", func() { fire = d.rebuildIf(d) })
	return perr == nil && fire
}

func (d *Dynamic) populate() {
	d.discardChildren()
	d.err = nil
	if d.build == nil {
		return
	}

	var built Element
	func() {
		defer func() {
			if r := recover(); r != nil {
				d.err = &errors.RebuildError{
					Element:    fmt.Sprintf("%T", d),
					Recovered:  r,
					StackTrace: errors.CaptureStack(),
					Timestamp:  time.Now(),
				}
			}
		}()
		built = d.build()
	}()

	if d.err != nil {
		if built != nil {
			built.Destroy()
		}
		errors.ReportRebuildError(d.err)
		return
	}
	d.adopt(built)
}
