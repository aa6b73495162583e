// Package term renders element trees in a terminal. Widgets are [Node]
// values drawn with lipgloss; [Model] is a bubbletea model that ticks the
// tree and routes keys to the focused node.
package term

import (
	"fmt"
	"slices"

	"github.com/go-drift/rosetta/pkg/binding"
	"github.com/go-drift/rosetta/pkg/builder"
	"github.com/go-drift/rosetta/pkg/element"
)

// Node is the terminal widget for one element.
type Node struct {
	kind  string
	elem  element.Element
	label string
	value string
	open  bool
	// collapsible nodes hide their children while closed.
	collapsible bool

	visible      bool
	interactable bool

	parent   *Node
	children []*Node

	// key handles a key press while the node has focus and reports whether
	// it consumed the key.
	key func(k string) bool
}

// Kind names the element variant.
func (n *Node) Kind() string { return n.kind }

// Label returns the caption.
func (n *Node) Label() string { return n.label }

// Value returns the formatted value.
func (n *Node) Value() string { return n.value }

// Children returns the attached child nodes.
func (n *Node) Children() []*Node { return n.children }

func (n *Node) focusable() bool {
	return n.key != nil && n.interactable
}

// backend implements builder.Backend for terminal nodes.
type backend struct{}

func (backend) SetVisible(n *Node, visible bool)           { n.visible = visible }
func (backend) SetInteractable(n *Node, interactable bool) { n.interactable = interactable }

func (backend) AppendChild(parent, child *Node) {
	child.parent = parent
	parent.children = append(parent.children, child)
}

func (backend) Dispose(n *Node) {
	if p := n.parent; p != nil {
		if i := slices.Index(p.children, n); i >= 0 {
			p.children = slices.Delete(p.children, i, i+1)
		}
		n.parent = nil
	}
}

// New returns a framework with a mapping for every element variant.
func New() *builder.Framework[*Node] {
	f := builder.New[*Node](backend{})

	builder.Register(f, func(e *element.Label) (*Node, error) {
		n := &Node{kind: "label", elem: e, label: e.Text()}
		e.OnDestroy(e.SubscribeView(func(s string) { n.label = s }))
		return n, nil
	})
	builder.Register(f, func(e *element.BoolField) (*Node, error) {
		n := captioned("bool", e)
		show(n, &e.ValueElement, formatBool)
		n.key = func(k string) bool {
			if k != " " && k != "enter" {
				return false
			}
			e.OnViewValueChanged(!e.Value())
			n.value = formatBool(e.Value())
			return true
		}
		return n, nil
	})
	builder.Register(f, func(e *element.IntField) (*Node, error) {
		n := captioned("int", e)
		show(n, &e.ValueElement, formatInt)
		n.key = stepper(n, &e.ValueElement, 1, formatInt)
		return n, nil
	})
	builder.Register(f, func(e *element.FloatField) (*Node, error) {
		n := captioned("float", e)
		show(n, &e.ValueElement, formatFloat)
		n.key = stepper(n, &e.ValueElement, 0.1, formatFloat)
		return n, nil
	})
	builder.Register(f, func(e *element.StringField) (*Node, error) {
		n := captioned("string", e)
		show(n, &e.ValueElement, formatString)
		n.key = func(k string) bool {
			s := e.Value()
			switch {
			case k == "backspace":
				if s == "" {
					return true
				}
				r := []rune(s)
				s = string(r[:len(r)-1])
			case len([]rune(k)) == 1:
				s += k
			default:
				return false
			}
			e.OnViewValueChanged(s)
			n.value = formatString(e.Value())
			return true
		}
		return n, nil
	})
	builder.Register(f, func(e *element.Dropdown) (*Node, error) {
		n := captioned("dropdown", e)
		format := func(int) string { return "< " + e.Selected() + " >" }
		show(n, &e.ValueElement, format)
		n.key = func(k string) bool {
			count := len(e.Options())
			if count == 0 {
				return false
			}
			i := e.Value()
			switch k {
			case "+", "right", "l":
				i = (i + 1) % count
			case "-", "left", "h":
				i = (i + count - 1) % count
			default:
				return false
			}
			e.OnViewValueChanged(i)
			n.value = format(i)
			return true
		}
		return n, nil
	})
	builder.Register(f, func(e *element.IntSlider) (*Node, error) {
		n := captioned("int-slider", e)
		format := func(v int) string {
			lo, hi := e.Bounds()
			return formatSlider(float64(v), float64(lo), float64(hi), formatInt(v))
		}
		show(n, &e.ValueElement, format)
		e.OnDestroy(e.SubscribeBounds(func(int, int) { n.value = format(e.Value()) }))
		n.key = sliderStepper(n, &e.ValueElement, e.Bounds, func(lo, hi int) int { return 1 }, format)
		return n, nil
	})
	builder.Register(f, func(e *element.FloatSlider) (*Node, error) {
		n := captioned("float-slider", e)
		format := func(v float64) string {
			lo, hi := e.Bounds()
			return formatSlider(v, lo, hi, formatFloat(v))
		}
		show(n, &e.ValueElement, format)
		e.OnDestroy(e.SubscribeBounds(func(float64, float64) { n.value = format(e.Value()) }))
		n.key = sliderStepper(n, &e.ValueElement, e.Bounds, func(lo, hi float64) float64 { return (hi - lo) / 20 }, format)
		return n, nil
	})
	builder.Register(f, func(e *element.IntMinMaxSlider) (*Node, error) {
		n := captioned("int-minmax", e)
		format := func(v binding.MinMax[int]) string { return fmt.Sprintf("%d .. %d", v.Min, v.Max) }
		show(n, &e.ValueElement, format)
		n.key = rangeStepper(n, &e.ValueElement, e.Bounds, 1, format)
		return n, nil
	})
	builder.Register(f, func(e *element.FloatMinMaxSlider) (*Node, error) {
		n := captioned("float-minmax", e)
		format := func(v binding.MinMax[float64]) string { return fmt.Sprintf("%.2f .. %.2f", v.Min, v.Max) }
		show(n, &e.ValueElement, format)
		lo, hi := e.Bounds()
		n.key = rangeStepper(n, &e.ValueElement, e.Bounds, (hi-lo)/20, format)
		return n, nil
	})

	builder.Register(f, container[*element.Row]("row"))
	builder.Register(f, container[*element.Column]("column"))
	builder.Register(f, container[*element.Box]("box"))
	builder.Register(f, container[*element.ScrollView]("scroll"))
	builder.Register(f, container[*element.Dynamic]("dynamic"))

	builder.Register(f, func(e *element.Fold) (*Node, error) {
		n := captioned("fold", e)
		n.collapsible = true
		e.OnDestroy(e.IsOpen().Subscribe(func(open bool) { n.open = open }))
		n.key = toggleKey(func() { e.IsOpen().Set(!e.IsOpen().Value()) })
		return n, nil
	})
	builder.Register(f, func(e *element.Window) (*Node, error) {
		n := captioned("window", e)
		n.collapsible = true
		e.OnDestroy(e.IsOpen().Subscribe(func(open bool) { n.open = open }))
		n.key = func(k string) bool {
			if k == "esc" {
				e.Close()
				return true
			}
			return false
		}
		return n, nil
	})
	builder.Register(f, func(e *element.WindowLauncher) (*Node, error) {
		n := captioned("launcher", e)
		n.key = toggleKey(e.Toggle)
		return n, nil
	})
	builder.Register(f, func(e *element.Button) (*Node, error) {
		n := captioned("button", e)
		n.key = toggleKey(e.Click)
		return n, nil
	})
	builder.Register(f, func(e *element.ListView) (*Node, error) {
		n := captioned("list", e)
		n.key = func(k string) bool {
			if k != "a" {
				return false
			}
			e.Append()
			return true
		}
		return n, nil
	})
	builder.Register(f, func(e *element.ListItem) (*Node, error) {
		n := &Node{kind: "item", elem: e, label: fmt.Sprintf("#%d", e.Index())}
		n.key = func(k string) bool {
			if k != "x" && k != "delete" {
				return false
			}
			e.Remove()
			return true
		}
		return n, nil
	})
	return f
}

func captioned(kind string, e element.Element) *Node {
	n := &Node{kind: kind, elem: e}
	if l := e.Label(); l != nil {
		n.label = l.Text()
		e.OnDestroy(l.SubscribeView(func(s string) { n.label = s }))
	}
	return n
}

func container[E element.Element](kind string) func(E) (*Node, error) {
	return func(e E) (*Node, error) { return captioned(kind, e), nil }
}

// show keeps n.value formatted from the element's pushed value.
func show[T comparable](n *Node, v *element.ValueElement[T], format func(T) string) {
	n.value = format(v.Value())
	v.OnDestroy(v.SubscribeView(func(x T) { n.value = format(x) }))
}

func toggleKey(fn func()) func(string) bool {
	return func(k string) bool {
		if k != " " && k != "enter" {
			return false
		}
		fn()
		return true
	}
}

func stepper[N binding.Number](n *Node, v *element.ValueElement[N], step N, format func(N) string) func(string) bool {
	return func(k string) bool {
		x := v.Value()
		switch k {
		case "+", "right", "l":
			x += step
		case "-", "left", "h":
			x -= step
		default:
			return false
		}
		v.OnViewValueChanged(x)
		n.value = format(v.Value())
		return true
	}
}

func sliderStepper[N binding.Number](n *Node, v *element.ValueElement[N], bounds func() (N, N), step func(lo, hi N) N, format func(N) string) func(string) bool {
	return func(k string) bool {
		lo, hi := bounds()
		x := v.Value()
		switch k {
		case "+", "right", "l":
			x = min(x+step(lo, hi), hi)
		case "-", "left", "h":
			x = max(x-step(lo, hi), lo)
		default:
			return false
		}
		v.OnViewValueChanged(x)
		n.value = format(v.Value())
		return true
	}
}

// rangeStepper moves the upper end with +/- and the lower end with </>.
func rangeStepper[N binding.Number](n *Node, v *element.ValueElement[binding.MinMax[N]], bounds func() (N, N), step N, format func(binding.MinMax[N]) string) func(string) bool {
	return func(k string) bool {
		lo, hi := bounds()
		r := v.Value()
		switch k {
		case "+", "right":
			r.Max = min(r.Max+step, hi)
		case "-", "left":
			r.Max = max(r.Max-step, r.Min)
		case ">":
			r.Min = min(r.Min+step, r.Max)
		case "<":
			r.Min = max(r.Min-step, lo)
		default:
			return false
		}
		v.OnViewValueChanged(r)
		n.value = format(v.Value())
		return true
	}
}
