package binding

// Ranged is implemented by accessors whose source declares a numeric range,
// such as a struct field tagged `range:"0,10"`.
type Ranged interface {
	DeclaredRange() (min, max float64, ok bool)
}

func declaredRange(acc any) (float64, float64, bool) {
	if r, ok := acc.(Ranged); ok {
		return r.DeclaredRange()
	}
	return 0, 0, false
}

// RangeGetters completes slider bounds for acc. Explicit bounds are kept.
// An explicit max without a min gets a zero min. Otherwise missing bounds
// come from acc's declared range; when acc declares none they stay nil and
// the caller should fall back to a plain field.
func RangeGetters[T Number](acc Accessor, min, max Getter[T]) (Getter[T], Getter[T]) {
	if max != nil && min == nil {
		min = Const(T(0))
	}
	if min != nil && max != nil {
		return min, max
	}
	lo, hi, ok := declaredRange(acc)
	if !ok {
		return min, max
	}
	if min == nil {
		min = Const(T(lo))
	}
	if max == nil {
		max = Const(T(hi))
	}
	return min, max
}
