package cart

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestStore_PersistsEveryTransition(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewMemoryRepository()
	s := Load(ctx, repo, logging.Nop())

	s.Add(ctx, add("p1", 41))
	raw, err := repo.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"productId":"p1","title":"T p1","price":10,"image":"","size":41,"qty":1}]`, string(raw))

	s.Clear(ctx)
	raw, err = repo.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestStore_RoundTripThroughSQLite(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "cart.db")

	db, err := storage.Open(ctx, dsn)
	require.NoError(t, err)

	s := Load(ctx, storage.NewSQLiteRepository(db), logging.Nop())
	s.Add(ctx, add("p2", 40))
	s.Add(ctx, add("p1", 41))
	s.Add(ctx, add("p1", 41))
	s.Add(ctx, add("p1", 43))
	s.SetQuantity(ctx, "p2", 40, 4)
	want := s.Items()
	require.NoError(t, db.Close())

	db, err = storage.Open(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	got := Load(ctx, storage.NewSQLiteRepository(db), logging.Nop()).Items()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rehydrated cart mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_AbsentOrCorrupt(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"absent", nil},
		{"not json", []byte("{oops")},
		{"object", []byte(`{"productId":"p1"}`)},
		{"null", []byte("null")},
		{"array of scalars", []byte(`[1,"two"]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := storage.NewMemoryRepository()
			if tt.raw != nil {
				require.NoError(t, repo.Set(ctx, StorageKey, tt.raw))
			}

			s := Load(ctx, repo, logging.Nop())
			assert.Empty(t, s.Items())
			assert.Equal(t, 0, s.Count())
			assert.Zero(t, s.Total())
		})
	}
}

func TestLoad_NormalizesDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewMemoryRepository()
	require.NoError(t, repo.Set(ctx, StorageKey, []byte(`[
		{"productId":"p1","price":2,"size":41,"qty":1},
		{"productId":"p1","price":2,"size":"41","qty":2},
		{"productId":"p1","price":2,"qty":1}
	]`)))

	s := Load(ctx, repo, logging.Nop())
	assert.Equal(t, []Item{
		{ProductID: "p1", Price: 2, Size: 41, Qty: 3},
		{ProductID: "p1", Price: 2, Size: DefaultSize, Qty: 1},
	}, s.Items())
	assert.Equal(t, 4, s.Count())
	assert.InDelta(t, 8.0, s.Total(), 1e-9)
}

type failingRepo struct {
	storage.Repository
}

func (failingRepo) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk gone")
}

func (failingRepo) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestStore_StorageFailuresDoNotUndoTransitions(t *testing.T) {
	ctx := context.Background()
	s := Load(ctx, failingRepo{}, logging.Nop())

	snap := s.Add(ctx, add("p1", 41))
	assert.Equal(t, 1, snap.Count)
	assert.Equal(t, []Item{line("p1", 41, 1)}, s.Items())
}

func TestStore_SubscribersSeeEverySnapshot(t *testing.T) {
	ctx := context.Background()
	s := Load(ctx, storage.NewMemoryRepository(), logging.Nop())

	var counts []int
	unsubscribe := s.Subscribe(func(snap Snapshot) {
		counts = append(counts, snap.Count)
	})

	s.Add(ctx, add("p1", 41))
	s.Add(ctx, add("p1", 41))
	s.ChangeSize(ctx, "p1", 41, 42)
	s.Remove(ctx, "p1", 42)
	unsubscribe()
	s.Add(ctx, add("p1", 41))

	assert.Equal(t, []int{1, 2, 2, 0}, counts)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	s := Load(ctx, storage.NewMemoryRepository(), logging.Nop())

	snap := s.Add(ctx, add("p1", 41))
	snap.Items[0].Qty = 99

	assert.Equal(t, 1, s.Items()[0].Qty)
	assert.Equal(t, 1, s.Snapshot().Count)
}

func TestStore_ConcurrentDispatchIsSerialized(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewMemoryRepository()
	s := Load(ctx, repo, logging.Nop())

	var mu sync.Mutex
	seen := 0
	s.Subscribe(func(Snapshot) {
		mu.Lock()
		seen++
		mu.Unlock()
	})

	var g errgroup.Group
	for range 50 {
		g.Go(func() error {
			s.Add(ctx, add("p1", 41))
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, []Item{line("p1", 41, 50)}, s.Items())
	assert.Equal(t, 50, seen)

	persisted := Load(ctx, repo, logging.Nop()).Items()
	assert.Equal(t, s.Items(), persisted)
}
