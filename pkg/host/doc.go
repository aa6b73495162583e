// Package host describes the boundary between rosetta and the application
// that owns the state being displayed.
//
// The host owns every object an accessor points into. rosetta only reads
// those objects, and writes them through writable accessors. Objects that can
// be destroyed implement [Object] so accessors can report a binding error
// instead of reading stale storage. [Lookup] finds live objects by type for
// dynamic elements that wait for an object to appear.
package host
