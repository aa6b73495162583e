package element

import (
	"github.com/go-drift/rosetta/pkg/binding"
)

// CreateFieldElement returns the element for acc's kind, or nil when the kind
// has no element. The element's interactable flag is set once from
// acc.IsReadOnly and does not follow later changes.
func CreateFieldElement(label *Label, acc binding.Accessor) Element {
	if acc == nil {
		return nil
	}
	e := createField(label, acc)
	if e == nil {
		return nil
	}
	e.Interactable().Set(!acc.IsReadOnly())
	return e
}

func createField(label *Label, acc binding.Accessor) Element {
	switch acc.Kind() {
	case binding.KindBool:
		if g, ok := acc.(binding.Getter[bool]); ok {
			return NewBoolField(label, g)
		}
	case binding.KindInt:
		if g, ok := acc.(binding.Getter[int]); ok {
			return NewIntField(label, g)
		}
	case binding.KindFloat:
		if g, ok := acc.(binding.Getter[float64]); ok {
			return NewFloatField(label, g)
		}
	case binding.KindString:
		if g, ok := acc.(binding.Getter[string]); ok {
			return NewStringField(label, g)
		}
	case binding.KindEnum:
		if idx, ok := binding.AsEnum(acc); ok {
			return NewDropdown(label, idx, idx.Options())
		}
	case binding.KindMinMax:
		switch g := acc.(type) {
		case binding.Getter[binding.MinMax[int]]:
			return NewLabeledRow(label,
				NewIntField(NewLabel("min"), binding.MinOf(g)),
				NewIntField(NewLabel("max"), binding.MaxOf(g)),
			)
		case binding.Getter[binding.MinMax[float64]]:
			return NewLabeledRow(label,
				NewFloatField(NewLabel("min"), binding.MinOf(g)),
				NewFloatField(NewLabel("max"), binding.MaxOf(g)),
			)
		}
	case binding.KindList:
		if list, ok := binding.AsList(acc); ok {
			return CreateListElement(label, list, nil)
		}
	}
	return nil
}

// CreateListElement returns a Fold holding a ListView over list.
func CreateListElement(label *Label, list binding.ListAccessor, createItem ItemFactory) Element {
	if list == nil {
		return nil
	}
	return NewFold(label, NewListView(list, createItem))
}

// CreateSliderElement returns a slider for an int or float accessor. Missing
// bounds come from the accessor's declared range; without either it returns
// nil and the caller should fall back to a plain field.
func CreateSliderElement(label *Label, acc binding.Accessor, min, max binding.Accessor) Element {
	if acc == nil {
		return nil
	}
	var e Element
	switch g := acc.(type) {
	case binding.Getter[int]:
		lo, hi := binding.RangeGetters(acc, asGetter[int](min), asGetter[int](max))
		if lo != nil && hi != nil {
			e = NewIntSlider(label, g, lo, hi)
		}
	case binding.Getter[float64]:
		lo, hi := binding.RangeGetters(acc, asGetter[float64](min), asGetter[float64](max))
		if lo != nil && hi != nil {
			e = NewFloatSlider(label, g, lo, hi)
		}
	}
	if e == nil {
		return nil
	}
	e.Interactable().Set(!acc.IsReadOnly())
	return e
}

// CreateMinMaxSliderElement returns a min-max slider for a MinMax[int] or
// MinMax[float64] accessor, with the same bounds rules as
// CreateSliderElement.
func CreateMinMaxSliderElement(label *Label, acc binding.Accessor, min, max binding.Accessor) Element {
	if acc == nil {
		return nil
	}
	var e Element
	switch g := acc.(type) {
	case binding.Getter[binding.MinMax[int]]:
		lo, hi := binding.RangeGetters(acc, asGetter[int](min), asGetter[int](max))
		if lo != nil && hi != nil {
			e = NewIntMinMaxSlider(label, g, lo, hi)
		}
	case binding.Getter[binding.MinMax[float64]]:
		lo, hi := binding.RangeGetters(acc, asGetter[float64](min), asGetter[float64](max))
		if lo != nil && hi != nil {
			e = NewFloatMinMaxSlider(label, g, lo, hi)
		}
	}
	if e == nil {
		return nil
	}
	e.Interactable().Set(!acc.IsReadOnly())
	return e
}

func asGetter[N binding.Number](acc binding.Accessor) binding.Getter[N] {
	g, _ := acc.(binding.Getter[N])
	return g
}
