package cart

import "sync"

// Listener receives the cart after every mutation.
type Listener func(Cart)

// Unsubscribe removes the listener it was returned for. Calling it more than
// once is a no-op.
type Unsubscribe func()

type subscription struct {
	id uint64
	fn Listener
}

type registry struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription
}

func (r *registry) add(fn Listener) (uint64, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.subs = append(r.subs, subscription{id: r.nextID, fn: fn})
	return r.nextID, len(r.subs)
}

func (r *registry) remove(id uint64) (bool, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.subs {
		if s.id == id {
			r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
			return true, len(r.subs)
		}
	}
	return false, len(r.subs)
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

// listeners returns the current listeners in registration order.
func (r *registry) listeners() []Listener {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Listener, len(r.subs))
	for i, s := range r.subs {
		out[i] = s.fn
	}
	return out
}
