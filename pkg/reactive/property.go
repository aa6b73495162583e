// Package reactive provides the observer-list primitive used for element
// flags such as enabled and interactable.
//
// Property is NOT thread-safe. It must only be touched from the UI thread
// that ticks the element tree.
package reactive

// Property holds a value and notifies subscribers on every write.
// Writes of an equal value still notify.
type Property[T any] struct {
	value       T
	subscribers []*subscription[T]
}

type subscription[T any] struct {
	fn func(T)
}

// NewProperty creates a property holding initial.
func NewProperty[T any](initial T) *Property[T] {
	return &Property[T]{value: initial}
}

// Value returns the current value.
func (p *Property[T]) Value() T {
	return p.value
}

// Set stores value and notifies all subscribers.
func (p *Property[T]) Set(value T) {
	p.value = value
	// Snapshot so subscribers may unsubscribe while being notified.
	subs := append([]*subscription[T](nil), p.subscribers...)
	for _, s := range subs {
		if s.fn != nil {
			s.fn(value)
		}
	}
}

// Update applies a transformation to the current value and stores the result.
func (p *Property[T]) Update(transform func(T) T) {
	p.Set(transform(p.value))
}

// Subscribe calls fn with the current value and then with every future write.
// The returned function removes the subscription; calling it twice is safe.
func (p *Property[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s := &subscription[T]{fn: fn}
	p.subscribers = append(p.subscribers, s)
	fn(p.value)
	return func() {
		for i, existing := range p.subscribers {
			if existing == s {
				p.subscribers = append(p.subscribers[:i], p.subscribers[i+1:]...)
				break
			}
		}
		s.fn = nil
	}
}

// SubscriberCount returns the number of active subscriptions.
func (p *Property[T]) SubscriberCount() int {
	return len(p.subscribers)
}
