package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/electroquick/pkg/kvstore"
	"github.com/angelmondragon/electroquick/pkg/logger"
	"github.com/angelmondragon/electroquick/pkg/metrics"
	"github.com/angelmondragon/electroquick/pkg/types"
)

const (
	DefaultStorageKey   = "electro_quick_cart"
	defaultReadTimeout  = 5 * time.Second
	defaultWriteTimeout = 5 * time.Second
)

// ErrNotStarted is returned by Flush when Start was never called.
var ErrNotStarted = errors.New("cart store not started")

// StoreParams wires a Store.
type StoreParams struct {
	Backend      kvstore.Backend
	Logger       *logger.Logger
	Metrics      *metrics.CartMetrics
	StorageKey   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Store owns the canonical cart. It is safe for concurrent use.
//
// Mutations are applied atomically and persisted through a background writer.
// Snapshots are delivered to listeners in mutation order by a single goroutine
// at a time. With no delivery in progress the mutating call delivers its own
// snapshot before returning. A mutation made while another call is delivering,
// including one made from inside a listener, is queued and delivered by that
// call once the current snapshot has reached every listener.
type Store struct {
	backend      kvstore.Backend
	logg         *logger.Logger
	metrics      *metrics.CartMetrics
	key          string
	readTimeout  time.Duration
	writeTimeout time.Duration

	mu       sync.RWMutex
	items    []Item
	hydrated bool
	journal  []mutation

	// outbox is appended under mu and drained outside it.
	deliverMu  sync.Mutex
	outbox     []Cart
	delivering bool
	subs       registry

	writer    *writer
	startOnce sync.Once
	started   bool
	ready     chan struct{}
	stopOnce  sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewStore builds an unstarted store holding an empty cart.
func NewStore(params StoreParams) (*Store, error) {
	if params.Backend == nil {
		return nil, fmt.Errorf("persistence backend required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	key := strings.TrimSpace(params.StorageKey)
	if key == "" {
		key = DefaultStorageKey
	}
	s := &Store{
		backend:      params.Backend,
		logg:         logg,
		metrics:      params.Metrics,
		key:          key,
		readTimeout:  params.ReadTimeout,
		writeTimeout: params.WriteTimeout,
		ready:        make(chan struct{}),
		done:         make(chan struct{}),
	}
	if s.readTimeout <= 0 {
		s.readTimeout = defaultReadTimeout
	}
	if s.writeTimeout <= 0 {
		s.writeTimeout = defaultWriteTimeout
	}
	s.writer = newWriter(s.persist)
	return s, nil
}

// Start launches the background writer and rehydrates the cart from the
// backend without blocking. Mutations made before rehydration finishes are
// kept and replayed on top of the restored cart. Subsequent calls are no-ops.
func (s *Store) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		s.mu.Lock()
		s.started = true
		s.mu.Unlock()

		runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		s.cancel = cancel
		go func() {
			defer close(s.done)
			s.writer.run(runCtx)
		}()
		go s.hydrate(ctx)
	})
}

// Ready is closed once rehydration has finished, successfully or not.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Flush waits for rehydration and for every scheduled write to complete.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return ErrNotStarted
	}
	select {
	case <-s.ready:
	case <-ctx.Done():
		return ctx.Err()
	}
	return s.writer.flush(ctx)
}

// Close flushes pending writes and stops the writer. The in-memory cart stays
// readable and mutable afterwards but is no longer persisted.
func (s *Store) Close(ctx context.Context) error {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return nil
	}

	flushErr := s.Flush(ctx)
	s.stopOnce.Do(func() { s.cancel() })

	select {
	case <-s.done:
	case <-ctx.Done():
		if flushErr == nil {
			flushErr = ctx.Err()
		}
	}
	return flushErr
}

// AddItem adds quantity units of product, merging into an existing line with
// the same id. A quantity below 1 adds a single unit. Products without an id
// or with a negative or non-finite price are ignored.
func (s *Store) AddItem(ctx context.Context, product types.Product, quantity int) {
	if !product.HasIdentity() || !product.HasValidPrice() {
		s.logg.Warn(s.logg.WithProductID(ctx, product.ID), "ignoring invalid product")
		return
	}
	if quantity < 1 {
		quantity = 1
	}
	s.apply(ctx, "add", addMutation(product, quantity))
}

// RemoveItem drops the line for productID if present.
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	s.apply(ctx, "remove", removeMutation(productID))
}

// UpdateItemQuantity sets the quantity of an existing line. A quantity of 0
// or less removes the line; an unknown id leaves the items unchanged.
func (s *Store) UpdateItemQuantity(ctx context.Context, productID string, quantity int) {
	s.apply(ctx, "update", updateMutation(productID, quantity))
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.apply(ctx, "clear", clearMutation())
}

// Cart returns a deep copy of the current cart.
func (s *Store) Cart() Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newCart(s.items)
}

// ItemCount returns the total number of units in the cart.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Contains reports whether productID has a line in the cart.
func (s *Store) Contains(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.items, productID) >= 0
}

// Quantity returns the units held for productID, 0 when absent.
func (s *Store) Quantity(productID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.items, productID); i >= 0 {
		return s.items[i].Quantity
	}
	return 0
}

// Subscribe registers listener for every future mutation. Listeners are
// called in registration order.
func (s *Store) Subscribe(listener Listener) Unsubscribe {
	if listener == nil {
		return func() {}
	}
	id, n := s.subs.add(listener)
	s.metrics.SetSubscribers(n)

	var once sync.Once
	return func() {
		once.Do(func() {
			if removed, n := s.subs.remove(id); removed {
				s.metrics.SetSubscribers(n)
			}
		})
	}
}

func (s *Store) apply(ctx context.Context, op string, fn mutation) {
	s.mu.Lock()
	func() {
		defer s.mu.Unlock()
		s.items = fn(s.items)
		snapshot := newCart(s.items)
		if s.hydrated {
			s.schedule(ctx, snapshot)
		} else {
			s.journal = append(s.journal, fn)
		}
		s.enqueue(snapshot)
	}()

	s.metrics.IncMutation(op)
	s.drain()
}

// schedule must be called with s.mu held so payloads queue in mutation order.
func (s *Store) schedule(ctx context.Context, snapshot Cart) {
	payload, err := encode(snapshot)
	if err != nil {
		s.logg.Error(s.logg.WithStorageKey(ctx, s.key), "failed to encode cart", err)
		return
	}
	s.writer.schedule(payload)
}

// enqueue must be called with s.mu held so deliveries queue in mutation order.
func (s *Store) enqueue(snapshot Cart) {
	s.deliverMu.Lock()
	s.outbox = append(s.outbox, snapshot)
	s.deliverMu.Unlock()
}

// drain delivers queued snapshots until the outbox is empty. It returns
// immediately when another call is already draining.
func (s *Store) drain() {
	s.deliverMu.Lock()
	if s.delivering {
		s.deliverMu.Unlock()
		return
	}
	s.delivering = true
	s.deliverMu.Unlock()

	defer func() {
		if rec := recover(); rec != nil {
			s.deliverMu.Lock()
			s.delivering = false
			s.deliverMu.Unlock()
			panic(rec)
		}
	}()

	for {
		s.deliverMu.Lock()
		if len(s.outbox) == 0 {
			s.delivering = false
			s.deliverMu.Unlock()
			return
		}
		next := s.outbox[0]
		s.outbox[0] = Cart{}
		s.outbox = s.outbox[1:]
		s.deliverMu.Unlock()

		s.notify(next)
	}
}

// notify hands every listener its own copy of snapshot.
func (s *Store) notify(snapshot Cart) {
	for _, fn := range s.subs.listeners() {
		fn(snapshot.clone())
	}
}

func (s *Store) persist(ctx context.Context, payload []byte) error {
	writeCtx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	start := time.Now()
	err := s.backend.Set(writeCtx, s.key, payload)
	s.metrics.ObservePersist(time.Since(start), err)
	if err != nil {
		s.logg.Error(s.logg.WithStorageKey(ctx, s.key), "failed to persist cart", err)
		return err
	}
	return nil
}

func (s *Store) hydrate(ctx context.Context) {
	defer close(s.ready)
	logCtx := s.logg.WithStorageKey(ctx, s.key)

	restored, found := s.load(logCtx)

	s.mu.Lock()
	items := restored
	for _, fn := range s.journal {
		items = fn(items)
	}
	replayed := len(s.journal)
	s.items = items
	s.journal = nil
	s.hydrated = true

	snapshot := newCart(s.items)
	if replayed > 0 {
		s.schedule(logCtx, snapshot)
	}
	notify := found || replayed > 0
	if notify {
		s.enqueue(snapshot)
	}
	s.mu.Unlock()

	if replayed > 0 {
		s.logg.Info(s.logg.WithField(logCtx, "replayed_mutations", replayed), "replayed mutations made before rehydration")
	}
	if notify {
		s.drain()
	}
}

// load reads and validates the stored cart. Any failure yields an empty cart.
func (s *Store) load(ctx context.Context) ([]Item, bool) {
	readCtx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	data, err := s.backend.Get(readCtx, s.key)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			s.metrics.IncHydration(metrics.OutcomeEmpty)
			s.logg.Debug(ctx, "no stored cart")
			return nil, false
		}
		s.metrics.IncHydration(metrics.OutcomeFailure)
		s.logg.Error(ctx, "failed to load cart", err)
		return nil, false
	}

	items, err := decode(data)
	if err != nil {
		s.metrics.IncHydration(metrics.OutcomeCorrupt)
		s.logg.Error(ctx, "discarding corrupt stored cart", err)
		return nil, false
	}

	s.metrics.IncHydration(metrics.OutcomeSuccess)
	s.logg.Info(s.logg.WithField(ctx, "items", len(items)), "cart restored")
	return items, true
}
