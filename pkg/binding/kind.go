package binding

import "reflect"

// Kind is the declared value kind of an accessor.
type Kind int

const (
	// KindUnsupported has no element mapping.
	KindUnsupported Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	// KindEnum is an integer type implementing Enum.
	KindEnum
	// KindList is any slice type.
	KindList
	// KindMinMax is MinMax[int] or MinMax[float64].
	KindMinMax
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindEnum:
		return "enum"
	case KindList:
		return "list"
	case KindMinMax:
		return "minmax"
	default:
		return "unsupported"
	}
}

// Enum is implemented by enum-like integer types. The value's integer is the
// index into the returned options.
type Enum interface {
	EnumOptions() []string
}

// MinMax is a structured pair used by min-max sliders.
type MinMax[T any] struct {
	Min T
	Max T
}

// Number is the set of numeric value types with field and slider elements.
type Number interface {
	int | float64
}

// KindOf returns the declared kind of values of type T.
func KindOf[T any]() Kind {
	return kindOfType(reflect.TypeFor[T]())
}

var (
	boolType        = reflect.TypeFor[bool]()
	intType         = reflect.TypeFor[int]()
	floatType       = reflect.TypeFor[float64]()
	stringType      = reflect.TypeFor[string]()
	minMaxIntType   = reflect.TypeFor[MinMax[int]]()
	minMaxFloatType = reflect.TypeFor[MinMax[float64]]()
	enumType        = reflect.TypeFor[Enum]()
)

func kindOfType(t reflect.Type) Kind {
	switch t {
	case boolType:
		return KindBool
	case intType:
		return KindInt
	case floatType:
		return KindFloat
	case stringType:
		return KindString
	case minMaxIntType, minMaxFloatType:
		return KindMinMax
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		if t.Implements(enumType) {
			return KindEnum
		}
	case reflect.Slice:
		return KindList
	}
	return KindUnsupported
}
