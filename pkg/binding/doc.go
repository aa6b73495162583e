// Package binding provides uniform read and write access to values that live
// anywhere in host state.
//
// An accessor is a capability set over a value of a declared [Kind]:
// [Getter] can read, [Binder] can also write. The kind is fixed when the
// accessor is constructed. Read-only binders reject writes with
// [errors.ReadOnlyError]; plain getters have no write method at all.
//
// Accessors come from several sources:
//
//	binding.Const(3)                       // fixed value
//	binding.Ptr(&cfg.Volume)               // a plain variable
//	binding.Func(func() int { return n })  // computed, read-only
//	binding.Field[float64](player, "Stats.Speed")  // reflection over a path
//
// [ChildBinder] composes a parent accessor with a projection and an
// injection to expose a sub-value, for example one element of a list:
//
//	item := binding.NewChildBinder(list,
//	    func(l []int) int { return l[1] },
//	    func(l []int, v int) []int { n := slices.Clone(l); n[1] = v; return n },
//	)
//
// Injection never mutates the parent value in place: it returns the new
// parent value, which is written back through the parent.
package binding
