package testing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-drift/rosetta/pkg/element"
)

// Finder locates elements in the element tree.
type Finder interface {
	// Evaluate returns all matching elements under root (depth-first pre-order).
	Evaluate(root element.Element) []element.Element
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	elements []element.Element
	finder   Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() element.Element {
	if len(r.elements) == 0 {
		panic(fmt.Sprintf("Finder found no elements: %s", r.describe()))
	}
	return r.elements[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() element.Element {
	if len(r.elements) == 0 {
		return nil
	}
	return r.elements[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) element.Element {
	if index < 0 || index >= len(r.elements) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.elements), r.describe()))
	}
	return r.elements[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []element.Element {
	return r.elements
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.elements)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.elements) > 0
}

func (r FinderResult) describe() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

type typeFinder struct {
	typ reflect.Type
}

func (f *typeFinder) Evaluate(root element.Element) []element.Element {
	return collectMatches(root, func(e element.Element) bool {
		return reflect.TypeOf(e) == f.typ
	})
}

func (f *typeFinder) Description() string {
	return fmt.Sprintf("ByType(%s)", f.typ)
}

// ByType returns a finder that matches elements of type T, e.g.
// ByType[*element.IntField]().
func ByType[T element.Element]() Finder {
	return &typeFinder{typ: reflect.TypeFor[T]()}
}

// labelText returns the current label text of e, or "" without a label.
func labelText(e element.Element) string {
	if l := e.Label(); l != nil {
		return l.Text()
	}
	return ""
}

type textFinder struct {
	text string
}

func (f *textFinder) Evaluate(root element.Element) []element.Element {
	return collectMatches(root, func(e element.Element) bool {
		return e.Label() != nil && labelText(e) == f.text
	})
}

func (f *textFinder) Description() string {
	return fmt.Sprintf("ByText(%q)", f.text)
}

// ByText returns a finder that matches elements whose label text equals
// text. Label functions are evaluated at find time.
func ByText(text string) Finder {
	return &textFinder{text: text}
}

type textContainingFinder struct {
	substring string
}

func (f *textContainingFinder) Evaluate(root element.Element) []element.Element {
	return collectMatches(root, func(e element.Element) bool {
		return e.Label() != nil && strings.Contains(labelText(e), f.substring)
	})
}

func (f *textContainingFinder) Description() string {
	return fmt.Sprintf("ByTextContaining(%q)", f.substring)
}

// ByTextContaining returns a finder that matches elements whose label text
// contains substring.
func ByTextContaining(substring string) Finder {
	return &textContainingFinder{substring: substring}
}

type predicateFinder struct {
	fn func(element.Element) bool
}

func (f *predicateFinder) Evaluate(root element.Element) []element.Element {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return "ByPredicate(...)"
}

// ByPredicate returns a finder that matches elements satisfying fn.
func ByPredicate(fn func(element.Element) bool) Finder {
	return &predicateFinder{fn: fn}
}

type enabledFinder struct {
	of Finder
}

func (f *enabledFinder) Evaluate(root element.Element) []element.Element {
	var results []element.Element
	for _, e := range f.of.Evaluate(root) {
		if e.Enabled().Value() {
			results = append(results, e)
		}
	}
	return results
}

func (f *enabledFinder) Description() string {
	return fmt.Sprintf("Enabled(%s)", f.of.Description())
}

// Enabled returns a finder that keeps the matches of f whose Enabled
// property is true.
func Enabled(f Finder) Finder {
	return &enabledFinder{of: f}
}

type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root element.Element) []element.Element {
	var results []element.Element
	seen := make(map[element.Element]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		for _, child := range ancestor.Children() {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches elements satisfying 'matching'
// that are descendants of elements matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

type ancestorFinder struct {
	of       Finder
	matching Finder
}

func (f *ancestorFinder) Evaluate(root element.Element) []element.Element {
	descendants := f.of.Evaluate(root)
	var results []element.Element
	for _, candidate := range f.matching.Evaluate(root) {
		for _, d := range descendants {
			if d != candidate && isAncestorOf(candidate, d) {
				results = append(results, candidate)
				break
			}
		}
	}
	return results
}

func (f *ancestorFinder) Description() string {
	return fmt.Sprintf("Ancestor(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Ancestor returns a finder that matches elements satisfying 'matching'
// that are ancestors of elements matching 'of'.
func Ancestor(of, matching Finder) Finder {
	return &ancestorFinder{of: of, matching: matching}
}

func isAncestorOf(ancestor, descendant element.Element) bool {
	for p := descendant.Parent(); p != nil; p = p.Parent() {
		if p == ancestor {
			return true
		}
	}
	return false
}

// collectMatches performs depth-first pre-order traversal, collecting
// elements that satisfy the predicate.
func collectMatches(root element.Element, predicate func(element.Element) bool) []element.Element {
	var results []element.Element
	element.Walk(root, func(e element.Element) bool {
		if predicate(e) {
			results = append(results, e)
		}
		return true
	})
	return results
}
