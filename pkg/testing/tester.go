package testing

import (
	"fmt"
	"sync"
	"testing"

	"github.com/go-drift/rosetta/pkg/backend/headless"
	"github.com/go-drift/rosetta/pkg/builder"
	"github.com/go-drift/rosetta/pkg/element"
	"github.com/go-drift/rosetta/pkg/errors"
)

// UITester mounts an element tree on a headless framework and drives its
// ticks. It installs a fake host clock and records reported errors until
// Cleanup runs.
type UITester struct {
	fw          *builder.Framework[*headless.Widget]
	root        element.Element
	rootWidget  *headless.Widget
	clock       *FakeClock
	restore     func()
	prevHandler errors.ErrorHandler
	errs        *Errors
}

// NewUITester creates a tester with a fresh headless framework.
// Call Cleanup() when done, or use NewUITesterWithT() instead.
func NewUITester() *UITester {
	clk := NewFakeClock()
	t := &UITester{
		fw:          headless.New(),
		clock:       clk,
		restore:     clk.Install(),
		prevHandler: errors.DefaultHandler,
		errs:        &Errors{},
	}
	errors.SetHandler(t.errs)
	return t
}

// NewUITesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewUITesterWithT(t testing.TB) *UITester {
	tester := NewUITester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup destroys the mounted tree and restores the host clock and the
// error handler.
func (t *UITester) Cleanup() {
	t.unmount()
	t.restore()
	errors.SetHandler(t.prevHandler)
}

func (t *UITester) unmount() {
	if t.root != nil {
		t.root.Destroy()
		t.root = nil
		t.rootWidget = nil
	}
}

// Framework returns the headless framework views are built with.
func (t *UITester) Framework() *builder.Framework[*headless.Widget] {
	return t.fw
}

// Clock returns the fake clock for advancing time in tests.
func (t *UITester) Clock() *FakeClock {
	return t.clock
}

// Errors returns the errors reported since the tester was created.
func (t *UITester) Errors() *Errors {
	return t.errs
}

// Mount destroys any previously mounted tree, builds views for root and
// runs one tick.
func (t *UITester) Mount(root element.Element) error {
	t.unmount()
	w, err := t.fw.Build(root)
	if err != nil {
		return err
	}
	t.root, t.rootWidget = root, w
	t.Pump()
	return nil
}

// Pump runs one tick over the mounted tree.
func (t *UITester) Pump() {
	element.Tick(t.root)
}

// PumpN runs n ticks.
func (t *UITester) PumpN(n int) {
	for range n {
		t.Pump()
	}
}

// Root returns the mounted root element.
func (t *UITester) Root() element.Element {
	return t.root
}

// RootWidget returns the view built for the root element.
func (t *UITester) RootWidget() *headless.Widget {
	return t.rootWidget
}

// Find evaluates a finder against the mounted tree.
func (t *UITester) Find(finder Finder) FinderResult {
	if t.root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		elements: finder.Evaluate(t.root),
		finder:   finder,
	}
}

// Widget returns the view of the first element matched by finder. It
// panics when nothing matches or the element has no view.
func (t *UITester) Widget(finder Finder) *headless.Widget {
	e := t.Find(finder).First()
	w, ok := t.fw.Widget(e)
	if !ok {
		panic(fmt.Sprintf("no view built for %T matched by %s", e, finder.Description()))
	}
	return w
}

// Errors records errors reported through the global handler.
type Errors struct {
	mu       sync.Mutex
	errs     []*errors.UIError
	panics   []*errors.PanicError
	rebuilds []*errors.RebuildError
}

func (r *Errors) HandleError(err *errors.UIError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *Errors) HandlePanic(err *errors.PanicError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panics = append(r.panics, err)
}

func (r *Errors) HandleRebuildError(err *errors.RebuildError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rebuilds = append(r.rebuilds, err)
}

// Reported returns the recorded errors.
func (r *Errors) Reported() []*errors.UIError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*errors.UIError(nil), r.errs...)
}

// Panics returns the recorded panics.
func (r *Errors) Panics() []*errors.PanicError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*errors.PanicError(nil), r.panics...)
}

// Rebuilds returns the recorded rebuild errors.
func (r *Errors) Rebuilds() []*errors.RebuildError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*errors.RebuildError(nil), r.rebuilds...)
}

// Count returns the number of recorded errors of any type.
func (r *Errors) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errs) + len(r.panics) + len(r.rebuilds)
}

// Reset drops the recorded errors.
func (r *Errors) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs, r.panics, r.rebuilds = nil, nil, nil
}
