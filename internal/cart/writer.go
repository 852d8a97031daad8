package cart

import (
	"context"
	"sync"
)

// writer persists payloads one at a time, keeping only the most recent
// payload that has not been picked up yet. Writes never overlap and are
// never reordered, so the last scheduled payload is always the last written.
type writer struct {
	write func(ctx context.Context, payload []byte) error

	mu      sync.Mutex
	pending []byte
	dirty   bool
	writing bool
	stopped bool
	idle    chan struct{}

	wake chan struct{}
}

func newWriter(write func(ctx context.Context, payload []byte) error) *writer {
	idle := make(chan struct{})
	close(idle)
	return &writer{
		write: write,
		idle:  idle,
		wake:  make(chan struct{}, 1),
	}
}

// schedule replaces any payload still waiting to be written.
func (w *writer) schedule(payload []byte) {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	if !w.dirty && !w.writing {
		w.idle = make(chan struct{})
	}
	w.pending = payload
	w.dirty = true
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// run drains scheduled payloads until ctx is cancelled.
func (w *writer) run(ctx context.Context) {
	defer w.stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.wake:
		}

		for {
			w.mu.Lock()
			if !w.dirty {
				if w.writing {
					w.writing = false
					close(w.idle)
				}
				w.mu.Unlock()
				break
			}
			payload := w.pending
			w.pending = nil
			w.dirty = false
			w.writing = true
			w.mu.Unlock()

			_ = w.write(ctx, payload)

			if ctx.Err() != nil {
				return
			}
		}
	}
}

func (w *writer) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.stopped = true
	w.pending = nil
	if w.dirty || w.writing {
		w.dirty = false
		w.writing = false
		close(w.idle)
	}
}

// flush blocks until nothing is pending or in flight, or ctx ends.
func (w *writer) flush(ctx context.Context) error {
	w.mu.Lock()
	idle := w.idle
	w.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
