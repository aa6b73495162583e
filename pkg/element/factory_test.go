package element

import (
	"testing"

	"github.com/go-drift/rosetta/pkg/binding"
)

type shade int

func (shade) EnumOptions() []string { return []string{"Light", "Dark"} }

type settings struct {
	Enabled bool
	Count   int
	Gain    float64 `range:"0,1"`
	Name    string
	Shade   shade
	Spread  binding.MinMax[int]
	Steps   []int
	Limit   int `range:"0,10"`
	Level   int `range:"2,10"`
	Frozen  int `rosetta:"readonly"`
	Origin  struct{ X, Y int }
}

func TestCreateFieldElementDispatch(t *testing.T) {
	s := &settings{Shade: 1, Steps: []int{1, 2}}
	tests := []struct {
		path  string
		check func(Element) bool
	}{
		{"Enabled", is[*BoolField]},
		{"Count", is[*IntField]},
		{"Gain", is[*FloatField]},
		{"Name", is[*StringField]},
		{"Shade", func(e Element) bool {
			d, ok := e.(*Dropdown)
			return ok && d.Selected() == "Dark"
		}},
		{"Spread", func(e Element) bool {
			r, ok := e.(*Row)
			return ok && len(r.Children()) == 2
		}},
		{"Steps", func(e Element) bool {
			f, ok := e.(*Fold)
			if !ok || len(f.Children()) != 1 {
				return false
			}
			_, ok = f.Children()[0].(*ListView)
			return ok
		}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			acc := fieldAccessor(t, s, tt.path)
			e := CreateFieldElement(NewLabel(tt.path), acc)
			if e == nil {
				t.Fatal("CreateFieldElement returned nil")
			}
			if !tt.check(e) {
				t.Errorf("CreateFieldElement(%s) = %T", tt.path, e)
			}
		})
	}
}

func is[T Element](e Element) bool {
	_, ok := e.(T)
	return ok
}

func fieldAccessor(t *testing.T, s *settings, path string) binding.Accessor {
	t.Helper()
	switch path {
	case "Enabled":
		return binding.MustField[bool](s, path)
	case "Gain":
		return binding.MustField[float64](s, path)
	case "Name":
		return binding.MustField[string](s, path)
	case "Shade":
		return binding.MustField[shade](s, path)
	case "Spread":
		return binding.MustField[binding.MinMax[int]](s, path)
	case "Steps":
		return binding.MustField[[]int](s, path)
	default:
		return binding.MustField[int](s, path)
	}
}

func TestCreateFieldElementUnsupported(t *testing.T) {
	s := &settings{}
	acc := binding.MustField[struct{ X, Y int }](s, "Origin")
	if e := CreateFieldElement(NewLabel("Origin"), acc); e != nil {
		t.Errorf("CreateFieldElement = %T, want nil", e)
	}
	if e := CreateFieldElement(nil, nil); e != nil {
		t.Errorf("CreateFieldElement(nil) = %T, want nil", e)
	}
}

func TestCreateFieldElementReadOnly(t *testing.T) {
	s := &settings{Frozen: 4}
	e := CreateFieldElement(nil, binding.MustField[int](s, "Frozen"))
	if e == nil || e.Interactable().Value() {
		t.Errorf("read-only field should not be interactable")
	}
}

func TestMinMaxFieldEditsHalves(t *testing.T) {
	s := &settings{Spread: binding.MinMax[int]{Min: 1, Max: 9}}
	row := CreateFieldElement(nil, binding.MustField[binding.MinMax[int]](s, "Spread")).(*Row)
	max := row.Children()[1].(*IntField)
	if max.Value() != 9 {
		t.Fatalf("max field = %d, want 9", max.Value())
	}
	if err := max.OnViewValueChanged(7); err != nil {
		t.Fatalf("edit max: %v", err)
	}
	if s.Spread != (binding.MinMax[int]{Min: 1, Max: 7}) {
		t.Errorf("Spread = %+v, want {1 7}", s.Spread)
	}
}

func TestCreateSliderElement(t *testing.T) {
	s := &settings{Limit: 3}

	e := CreateSliderElement(NewLabel("Limit"), binding.MustField[int](s, "Limit"), nil, nil)
	slider, ok := e.(*IntSlider)
	if !ok {
		t.Fatalf("CreateSliderElement = %T, want *IntSlider", e)
	}
	if lo, hi := slider.Bounds(); lo != 0 || hi != 10 {
		t.Errorf("bounds = [%d,%d], want [0,10]", lo, hi)
	}

	e = CreateSliderElement(nil, binding.MustField[int](s, "Limit"), nil, binding.Const(5))
	if lo, hi := e.(*IntSlider).Bounds(); lo != 0 || hi != 5 {
		t.Errorf("bounds = [%d,%d], want [0,5]", lo, hi)
	}

	if e := CreateSliderElement(nil, binding.MustField[int](s, "Count"), nil, nil); e != nil {
		t.Errorf("slider without bounds = %T, want nil", e)
	}
}

func TestCreateSliderElementExplicitMaxOnly(t *testing.T) {
	s := &settings{Level: 3, Count: 2}

	e := CreateSliderElement(nil, binding.MustField[int](s, "Level"), nil, binding.Const(5))
	slider, ok := e.(*IntSlider)
	if !ok {
		t.Fatalf("declared range, max only = %T, want *IntSlider", e)
	}
	if lo, hi := slider.Bounds(); lo != 0 || hi != 5 {
		t.Errorf("bounds = [%d,%d], want [0,5]", lo, hi)
	}

	e = CreateSliderElement(nil, binding.MustField[int](s, "Count"), nil, binding.Const(5))
	slider, ok = e.(*IntSlider)
	if !ok {
		t.Fatalf("no range tag, max only = %T, want *IntSlider", e)
	}
	if lo, hi := slider.Bounds(); lo != 0 || hi != 5 {
		t.Errorf("bounds = [%d,%d], want [0,5]", lo, hi)
	}

	r := binding.MinMax[float64]{Min: 0.5, Max: 1.5}
	e = CreateMinMaxSliderElement(nil, binding.Ptr(&r), nil, binding.Const(2.0))
	mm, ok := e.(*FloatMinMaxSlider)
	if !ok {
		t.Fatalf("minmax, max only = %T, want *FloatMinMaxSlider", e)
	}
	if lo, hi := mm.Bounds(); lo != 0 || hi != 2 {
		t.Errorf("bounds = [%v,%v], want [0,2]", lo, hi)
	}
}

func TestSliderPushesBoundChanges(t *testing.T) {
	v, hi := 1, 10
	slider := NewIntSlider(nil, binding.Ptr(&v), binding.Const(0), binding.Func(func() int { return hi }))
	var pushed [][2]int
	slider.SubscribeBounds(func(min, max int) { pushed = append(pushed, [2]int{min, max}) })

	Tick(slider)
	hi = 20
	Tick(slider)
	if len(pushed) != 1 || pushed[0] != [2]int{0, 20} {
		t.Errorf("pushed bounds = %v, want [[0 20]]", pushed)
	}
}

func TestCreateMinMaxSliderElement(t *testing.T) {
	r := binding.MinMax[float64]{Min: 0.2, Max: 0.8}
	e := CreateMinMaxSliderElement(nil, binding.Ptr(&r), binding.Const(0.0), binding.Const(1.0))
	s, ok := e.(*FloatMinMaxSlider)
	if !ok {
		t.Fatalf("CreateMinMaxSliderElement = %T, want *FloatMinMaxSlider", e)
	}
	if s.Value() != r {
		t.Errorf("Value = %+v, want %+v", s.Value(), r)
	}
}
