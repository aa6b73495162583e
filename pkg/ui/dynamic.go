package ui

import (
	"fmt"
	"math/rand/v2"
	"reflect"
	"strings"
	"time"

	"github.com/go-drift/rosetta/pkg/element"
	"github.com/go-drift/rosetta/pkg/errors"
	"github.com/go-drift/rosetta/pkg/host"
)

var (
	findMinInterval = time.Second
	findMaxInterval = 1500 * time.Millisecond
)

// SetFindInterval sets the range the polling interval of find-object
// elements is drawn from. Each element draws its own interval once, so
// elements created together do not poll together. min must be positive and
// max at least min.
func SetFindInterval(min, max time.Duration) {
	if min <= 0 || max < min {
		return
	}
	findMinInterval, findMaxInterval = min, max
}

// FindInterval returns the configured polling range.
func FindInterval() (min, max time.Duration) {
	return findMinInterval, findMaxInterval
}

// DynamicElementIf shows build's element while condition holds.
func DynamicElementIf(condition func() bool, build func() element.Element) *element.Dynamic {
	return element.NewDynamicIf(condition, build)
}

// DynamicElementOnStatusChanged rebuilds whenever readStatus changes.
func DynamicElementOnStatusChanged[S comparable](readStatus func() S, build func(S) element.Element) *element.Dynamic {
	return element.NewDynamicOnStatusChanged(readStatus, build)
}

// DynamicElementOnTrigger rebuilds whenever rebuildIf returns true.
func DynamicElementOnTrigger(rebuildIf func(*element.Dynamic) bool, build func() element.Element) *element.Dynamic {
	return element.NewDynamic(build, rebuildIf)
}

// finder polls a Lookup for a live object of typ no more often than its
// interval. gen changes whenever the target does.
type finder struct {
	lookup    host.Lookup
	typ       reflect.Type
	interval  time.Duration
	lastCheck time.Time
	target    any
	gen       int
}

func newFinder(lookup host.Lookup, typ reflect.Type) *finder {
	interval := findMinInterval
	if span := findMaxInterval - findMinInterval; span > 0 {
		interval += rand.N(span)
	}
	return &finder{lookup: lookup, typ: typ, interval: interval, lastCheck: host.Now()}
}

// poll drops a destroyed target and looks up a new one when due. It returns
// the target generation.
func (f *finder) poll() int {
	if o, ok := f.target.(host.Object); ok && o.Destroyed() {
		f.target = nil
		f.gen++
	}
	if f.target == nil && f.lookup != nil {
		if now := host.Now(); now.Sub(f.lastCheck) >= f.interval {
			f.lastCheck = now
			if obj := f.lookup.FindLiveInstance(f.typ); obj != nil {
				f.target = obj
				f.gen++
			}
		}
	}
	return f.gen
}

// DynamicElementFindObject shows build's element for a live T found through
// lookup. Lookups are throttled to one per polling interval while nothing is
// found; a found object is dropped once it reports Destroyed, and a
// replacement found in the same tick rebuilds the element.
func DynamicElementFindObject[T any](lookup host.Lookup, build func(T) element.Element) *element.Dynamic {
	f := newFinder(lookup, reflect.TypeFor[T]())
	return element.NewDynamicOnStatusChanged(f.poll, func(int) element.Element {
		target, ok := f.target.(T)
		if !ok || build == nil {
			return nil
		}
		return build(target)
	})
}

// ElementCreator is a host object that describes its own UI.
type ElementCreator interface {
	CreateElement(label *element.Label) element.Element
}

var elementCreatorType = reflect.TypeFor[ElementCreator]()

// ElementCreatorInline shows the element of a live T found through lookup.
func ElementCreatorInline[T ElementCreator](lookup host.Lookup) *element.Dynamic {
	return DynamicElementFindObject(lookup, func(c T) element.Element {
		return c.CreateElement(nil)
	})
}

// ElementCreatorWindowLauncher shows a launcher for a window holding the
// element of a live T. An empty title uses T's type name.
func ElementCreatorWindowLauncher[T ElementCreator](lookup host.Lookup, title string) *element.Dynamic {
	return ElementCreatorsWindowLauncher(lookup, title, reflect.TypeFor[T]())
}

// ElementCreatorsWindowLauncher shows a launcher for one window holding a
// section per live object among types, in the order given. The launcher
// exists while at least one of them is live and keeps its window open
// across rebuilds. An empty title joins the type names. Types that do not
// implement ElementCreator are reported and skipped.
func ElementCreatorsWindowLauncher(lookup host.Lookup, title string, types ...reflect.Type) *element.Dynamic {
	var finders []*finder
	var names []string
	for _, typ := range types {
		if typ == nil || !typ.Implements(elementCreatorType) {
			errors.Report(&errors.UIError{
				Op:   "ui.ElementCreatorsWindowLauncher",
				Kind: errors.KindUnsupported,
				Err:  &errors.UnsupportedError{What: fmt.Sprintf("type %v", typ), By: "ElementCreator"},
			})
			continue
		}
		finders = append(finders, newFinder(lookup, typ))
		names = append(names, typeName(typ))
	}
	if title == "" {
		title = strings.Join(names, ", ")
	}

	// Generations only grow, so their sum changes whenever any target does.
	poll := func() int {
		sum := 0
		for _, f := range finders {
			sum += f.poll()
		}
		return sum
	}

	var last *element.WindowLauncher
	return element.NewDynamicOnStatusChanged(poll, func(int) element.Element {
		wasOpen := last != nil && last.IsOpen()
		last = nil
		var sections []element.Element
		for _, f := range finders {
			if c, ok := f.target.(ElementCreator); ok {
				sections = append(sections, c.CreateElement(nil))
			}
		}
		if len(sections) == 0 {
			return nil
		}
		last = element.NewWindowLauncher(nil, element.NewWindow(element.NewLabel(title), sections...))
		if wasOpen {
			last.Toggle()
		}
		return last
	})
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.String()
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
