package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// StorageKey is where the item list is persisted, as a JSON array.
const StorageKey = "storefront_cart_v1"

var errCorrupt = errors.New("corrupt cart data")

// Snapshot is the cart state after a transition.
type Snapshot struct {
	Items []Item
	Count int
	Total float64
}

func snapshotOf(items []Item) Snapshot {
	return Snapshot{Items: cloneItems(items), Count: Count(items), Total: Total(items)}
}

// Store owns the cart. Transitions are applied one at a time in call order,
// and each resulting list is written to storage before the next starts.
// Storage failures are logged and do not undo a transition.
type Store struct {
	mu     sync.Mutex
	items  []Item
	repo   storage.Repository
	logger logging.Logger

	subs    map[int]func(Snapshot)
	nextSub int
}

// Load rehydrates the cart from repo. Absent, unreadable or corrupt data
// yields an empty cart.
func Load(ctx context.Context, repo storage.Repository, logger logging.Logger) *Store {
	s := &Store{
		items:  []Item{},
		repo:   repo,
		logger: logger.With("component", "cart"),
		subs:   map[int]func(Snapshot){},
	}

	raw, err := repo.Get(ctx, StorageKey)
	if err != nil {
		s.logger.Warn(ctx, "failed to read cart, starting empty", "error", err)
		return s
	}
	if raw == nil {
		return s
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Warn(ctx, "corrupt cart data, starting empty", "error", err)
		return s
	}
	s.items = normalize(items)
	return s
}

// Dispatch applies a, persists the result and notifies subscribers.
func (s *Store) Dispatch(ctx context.Context, a Action) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = Reduce(s.items, a)
	s.persist(ctx)

	snap := snapshotOf(s.items)
	for _, fn := range s.subs {
		fn(snap)
	}
	return snap
}

func (s *Store) persist(ctx context.Context) {
	b, err := json.Marshal(s.items)
	if err != nil {
		s.logger.Error(ctx, "failed to encode cart", "error", err)
		return
	}
	if err := s.repo.Set(ctx, StorageKey, b); err != nil {
		s.logger.Warn(ctx, "failed to persist cart", "error", err)
	}
}

// Subscribe registers fn to receive the snapshot after every transition.
// fn runs while the store is locked and must not call back into it.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotOf(s.items)
}

func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Count(s.items)
}

func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Total(s.items)
}

func (s *Store) Add(ctx context.Context, a Add) Snapshot {
	return s.Dispatch(ctx, a)
}

func (s *Store) Remove(ctx context.Context, productID string, size int) Snapshot {
	return s.Dispatch(ctx, Remove{ProductID: productID, Size: size})
}

func (s *Store) SetQuantity(ctx context.Context, productID string, size, qty int) Snapshot {
	return s.Dispatch(ctx, SetQuantity{ProductID: productID, Size: size, Qty: qty})
}

func (s *Store) ChangeSize(ctx context.Context, productID string, from, to int) Snapshot {
	return s.Dispatch(ctx, ChangeSize{ProductID: productID, From: from, To: to})
}

func (s *Store) Clear(ctx context.Context) Snapshot {
	return s.Dispatch(ctx, Clear{})
}
