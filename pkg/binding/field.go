package binding

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-drift/rosetta/pkg/errors"
	"github.com/go-drift/rosetta/pkg/host"
)

// Struct tags understood by Field.
const (
	// TagRange declares a numeric range: `range:"0,10"`.
	TagRange = "range"
	// TagRosetta holds options; "readonly" marks the field read-only.
	TagRosetta = "rosetta"
)

type segment struct {
	name  string
	index int // valid when name is empty
}

// FieldBinder binds a value reached from a struct pointer by a path such as
// "Stats.Speed" or "Items[2].Name". The path is resolved on every access so
// reallocated slices and replaced pointers are followed.
type FieldBinder[T any] struct {
	target   any
	path     []segment
	raw      string
	readOnly bool
	hasRange bool
	min, max float64
}

// Field compiles path against target, which must be a non-nil pointer to a
// struct. The value at the end of the path must have type T.
func Field[T any](target any, path string) (*FieldBinder[T], error) {
	segs, err := parsePath(path)
	if err != nil {
		return nil, err
	}
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, fmt.Errorf("binding: target must be a non-nil pointer, got %T", target)
	}

	b := &FieldBinder[T]{target: target, path: segs, raw: path}
	t := rv.Type()
	var last reflect.StructField
	for _, seg := range segs {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if seg.name == "" {
			if t.Kind() != reflect.Slice && t.Kind() != reflect.Array {
				return nil, fmt.Errorf("binding: %s: cannot index %s", path, t)
			}
			t = t.Elem()
			continue
		}
		if t.Kind() != reflect.Struct {
			return nil, fmt.Errorf("binding: %s: %s is not a struct", path, t)
		}
		f, ok := t.FieldByName(seg.name)
		if !ok {
			return nil, fmt.Errorf("binding: %s: no field %q in %s", path, seg.name, t)
		}
		if !f.IsExported() {
			return nil, fmt.Errorf("binding: %s: field %q is unexported", path, seg.name)
		}
		last = f
		t = f.Type
	}
	if want := reflect.TypeFor[T](); t != want {
		return nil, fmt.Errorf("binding: %s has type %s, want %s", path, t, want)
	}

	if segs[len(segs)-1].name != "" {
		b.readOnly = hasOption(last.Tag.Get(TagRosetta), "readonly")
		if tag, ok := last.Tag.Lookup(TagRange); ok {
			min, max, err := parseRange(tag)
			if err != nil {
				return nil, fmt.Errorf("binding: %s: %w", path, err)
			}
			b.hasRange, b.min, b.max = true, min, max
		}
	}
	return b, nil
}

// MustField is like Field but panics on error.
func MustField[T any](target any, path string) *FieldBinder[T] {
	b, err := Field[T](target, path)
	if err != nil {
		panic(err)
	}
	return b
}

// Get resolves the path and returns the value.
func (b *FieldBinder[T]) Get() (T, error) {
	var zero T
	v, err := b.resolve()
	if err != nil {
		return zero, err
	}
	return v.Interface().(T), nil
}

// Set resolves the path and stores v.
func (b *FieldBinder[T]) Set(v T) error {
	if b.readOnly {
		return &errors.ReadOnlyError{Path: b.describe()}
	}
	dst, err := b.resolve()
	if err != nil {
		return err
	}
	if !dst.CanSet() {
		return &errors.ReadOnlyError{Path: b.describe()}
	}
	dst.Set(reflect.ValueOf(&v).Elem())
	return nil
}

func (b *FieldBinder[T]) resolve() (reflect.Value, error) {
	v := reflect.ValueOf(b.target)
	for i, seg := range b.path {
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, b.unreachable(i, "nil pointer")
			}
			if obj, ok := v.Interface().(host.Object); ok && obj.Destroyed() {
				return reflect.Value{}, b.unreachable(i, "object destroyed")
			}
			v = v.Elem()
		}
		if seg.name == "" {
			if seg.index < 0 || seg.index >= v.Len() {
				return reflect.Value{}, b.unreachable(i, fmt.Sprintf("index %d out of range [0,%d)", seg.index, v.Len()))
			}
			v = v.Index(seg.index)
			continue
		}
		v = v.FieldByName(seg.name)
	}
	return v, nil
}

func (b *FieldBinder[T]) unreachable(at int, reason string) error {
	return &errors.BindingError{
		Path:   b.describe(),
		Reason: fmt.Sprintf("%s at %s", reason, formatPath(b.path[:at])),
	}
}

func (b *FieldBinder[T]) describe() string {
	return fmt.Sprintf("%T.%s", b.target, b.raw)
}

func (b *FieldBinder[T]) Kind() Kind       { return KindOf[T]() }
func (b *FieldBinder[T]) IsReadOnly() bool { return b.readOnly }
func (b *FieldBinder[T]) IsConst() bool    { return false }

// DefaultLabel returns the last field name on the path, with any trailing
// index, e.g. "Speed" or "Items[2]".
func (b *FieldBinder[T]) DefaultLabel() string {
	label := ""
	for i := len(b.path) - 1; i >= 0; i-- {
		if b.path[i].name != "" {
			label = formatPath(b.path[i:])
			break
		}
	}
	return label
}

// DeclaredRange returns the range from the field's range tag.
func (b *FieldBinder[T]) DeclaredRange() (min, max float64, ok bool) {
	return b.min, b.max, b.hasRange
}

func parsePath(path string) ([]segment, error) {
	if path == "" {
		return nil, fmt.Errorf("binding: empty path")
	}
	var segs []segment
	for _, part := range strings.Split(path, ".") {
		name, rest, _ := strings.Cut(part, "[")
		if name == "" && len(segs) == 0 {
			return nil, fmt.Errorf("binding: %s: path must start with a field name", path)
		}
		if name != "" {
			segs = append(segs, segment{name: name})
		}
		for rest != "" {
			idx, after, ok := strings.Cut(rest, "]")
			if !ok {
				return nil, fmt.Errorf("binding: %s: unterminated index", path)
			}
			n, err := strconv.Atoi(idx)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("binding: %s: bad index %q", path, idx)
			}
			segs = append(segs, segment{index: n})
			rest = strings.TrimPrefix(after, "[")
			if after != "" && !strings.HasPrefix(after, "[") {
				return nil, fmt.Errorf("binding: %s: unexpected %q", path, after)
			}
		}
	}
	return segs, nil
}

func formatPath(segs []segment) string {
	var sb strings.Builder
	for _, s := range segs {
		if s.name == "" {
			sb.WriteString("[" + strconv.Itoa(s.index) + "]")
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(s.name)
	}
	return sb.String()
}

func parseRange(tag string) (float64, float64, error) {
	lo, hi, ok := strings.Cut(tag, ",")
	if !ok {
		return 0, 0, fmt.Errorf("range tag %q: want \"min,max\"", tag)
	}
	min, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("range tag %q: %w", tag, err)
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("range tag %q: %w", tag, err)
	}
	return min, max, nil
}

func hasOption(tag, option string) bool {
	for _, o := range strings.Split(tag, ",") {
		if strings.TrimSpace(o) == option {
			return true
		}
	}
	return false
}
