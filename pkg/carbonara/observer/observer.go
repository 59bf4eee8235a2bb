// Package observer provides a single-threaded publish/subscribe registry.
//
// Subscribers receive a Handle on Attach and use it to Detach. Handles are
// never reused, so a stale handle can only ever detach nothing.
package observer

// Handle identifies one subscription.
type Handle uint64

type subscription[T any] struct {
	handle Handle
	fn     func(T)
}

// Registry holds the subscribers of one event type. It is not synchronized;
// all calls happen on the frame loop.
type Registry[T any] struct {
	next Handle
	subs []subscription[T]
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{}
}

// Attach subscribes fn and returns its handle.
func (r *Registry[T]) Attach(fn func(T)) Handle {
	r.next++
	r.subs = append(r.subs, subscription[T]{handle: r.next, fn: fn})
	return r.next
}

// Detach removes the subscription. Unknown or already detached handles are ignored.
func (r *Registry[T]) Detach(h Handle) {
	for i, s := range r.subs {
		if s.handle == h {
			r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
			return
		}
	}
}

// Notify delivers ev to every subscriber in attach order. Subscribers may
// attach or detach while being notified; changes apply from the next Notify.
func (r *Registry[T]) Notify(ev T) {
	if r == nil {
		return
	}
	snapshot := r.subs
	for _, s := range snapshot {
		s.fn(ev)
	}
}

func (r *Registry[T]) Len() int {
	return len(r.subs)
}
