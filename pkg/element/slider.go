package element

import "github.com/go-drift/rosetta/pkg/binding"

// bounds tracks slider limits. Limits are getters so they may change; a
// changed limit is pushed like a changed value.
type bounds[N binding.Number] struct {
	minGetter binding.Getter[N]
	maxGetter binding.Getter[N]
	lo, hi    N
	view      listeners[[2]N]
}

func (b *bounds[N]) initBounds(min, max binding.Getter[N]) {
	b.minGetter, b.maxGetter = min, max
	b.lo, b.hi = b.read()
}

func (b *bounds[N]) read() (N, N) {
	lo, errLo := b.minGetter.Get()
	hi, errHi := b.maxGetter.Get()
	if errLo != nil || errHi != nil {
		return b.lo, b.hi
	}
	return lo, hi
}

// Bounds returns the limits last pushed to the view.
func (b *bounds[N]) Bounds() (min, max N) { return b.lo, b.hi }

// SubscribeBounds registers fn for limit changes.
func (b *bounds[N]) SubscribeBounds(fn func(min, max N)) (unsubscribe func()) {
	return b.view.add(func(r [2]N) { fn(r[0], r[1]) })
}

func (b *bounds[N]) updateBounds() {
	lo, hi := b.read()
	if lo != b.lo || hi != b.hi {
		b.lo, b.hi = lo, hi
		b.view.notify([2]N{lo, hi})
	}
}

// IntSlider is a bounded integer input.
type IntSlider struct {
	ValueElement[int]
	bounds[int]
}

// NewIntSlider creates an IntSlider. min and max must not be nil.
func NewIntSlider(label *Label, g binding.Getter[int], min, max binding.Getter[int]) *IntSlider {
	e := &IntSlider{}
	e.initValue(e, label, g)
	e.initBounds(min, max)
	return e
}

func (s *IntSlider) Update() {
	s.ValueElement.Update()
	s.updateBounds()
}

// FloatSlider is a bounded float input.
type FloatSlider struct {
	ValueElement[float64]
	bounds[float64]
}

// NewFloatSlider creates a FloatSlider. min and max must not be nil.
func NewFloatSlider(label *Label, g binding.Getter[float64], min, max binding.Getter[float64]) *FloatSlider {
	e := &FloatSlider{}
	e.initValue(e, label, g)
	e.initBounds(min, max)
	return e
}

func (s *FloatSlider) Update() {
	s.ValueElement.Update()
	s.updateBounds()
}

// IntMinMaxSlider edits a MinMax[int] within limits.
type IntMinMaxSlider struct {
	ValueElement[binding.MinMax[int]]
	bounds[int]
}

// NewIntMinMaxSlider creates an IntMinMaxSlider.
func NewIntMinMaxSlider(label *Label, g binding.Getter[binding.MinMax[int]], min, max binding.Getter[int]) *IntMinMaxSlider {
	e := &IntMinMaxSlider{}
	e.initValue(e, label, g)
	e.initBounds(min, max)
	return e
}

func (s *IntMinMaxSlider) Update() {
	s.ValueElement.Update()
	s.updateBounds()
}

// FloatMinMaxSlider edits a MinMax[float64] within limits.
type FloatMinMaxSlider struct {
	ValueElement[binding.MinMax[float64]]
	bounds[float64]
}

// NewFloatMinMaxSlider creates a FloatMinMaxSlider.
func NewFloatMinMaxSlider(label *Label, g binding.Getter[binding.MinMax[float64]], min, max binding.Getter[float64]) *FloatMinMaxSlider {
	e := &FloatMinMaxSlider{}
	e.initValue(e, label, g)
	e.initBounds(min, max)
	return e
}

func (s *FloatMinMaxSlider) Update() {
	s.ValueElement.Update()
	s.updateBounds()
}
