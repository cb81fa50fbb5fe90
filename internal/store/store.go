package store

import (
	"context"
	"sync"
	"time"

	"go-smartshop/internal/model"
	"go-smartshop/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type snapshotCh chan []model.ProductEntity

// Store is the in-memory product table. Every mutation publishes a fresh
// snapshot to all watchers before it returns.
type Store struct {
	mu          sync.RWMutex
	products    []model.ProductEntity
	subscribers map[snapshotCh]struct{}
}

func New() *Store {
	return &Store{
		products:    []model.ProductEntity{},
		subscribers: make(map[snapshotCh]struct{}),
	}
}

// Insert appends the record and returns its id. A record without an id gets a
// fresh one; a record whose id is already stored replaces the old copy.
func (s *Store) Insert(product model.ProductEntity) string {
	if product.Id == "" {
		product.Id = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.copyProducts()
	if i := indexOf(next, product.Id); i >= 0 {
		next[i] = product
	} else {
		next = append(next, product)
	}
	s.commit(next)

	return product.Id
}

func (s *Store) GetById(id string) (model.ProductEntity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := indexOf(s.products, id); i >= 0 {
		return s.products[i], true
	}
	return model.ProductEntity{}, false
}

// Update replaces the record with the same id. It reports false and publishes
// nothing when the id is unknown.
func (s *Store) Update(product model.ProductEntity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.products, product.Id)
	if i < 0 {
		return false
	}

	next := s.copyProducts()
	next[i] = product
	s.commit(next)
	return true
}

// MarkSynced flags the record as mirrored if it is still at the given version.
func (s *Store) MarkSynced(id string, version time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.products, id)
	if i < 0 || !s.products[i].UpdatedAt.Equal(version) {
		return false
	}
	if s.products[i].SyncedWithCloud {
		return true
	}

	next := s.copyProducts()
	next[i].SyncedWithCloud = true
	s.commit(next)
	return true
}

func (s *Store) DeleteById(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.products, id)
	if i < 0 {
		return false
	}

	next := make([]model.ProductEntity, 0, len(s.products)-1)
	next = append(next, s.products[:i]...)
	next = append(next, s.products[i+1:]...)
	s.commit(next)
	return true
}

// GetAll returns a copy of the current snapshot.
func (s *Store) GetAll() []model.ProductEntity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]model.ProductEntity, len(s.products))
	copy(all, s.products)
	return all
}

func (s *Store) GetUnsynced() []model.ProductEntity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	unsynced := []model.ProductEntity{}
	for _, p := range s.products {
		if !p.SyncedWithCloud {
			unsynced = append(unsynced, p)
		}
	}
	return unsynced
}

// Watch emits the current snapshot followed by every later one until ctx is
// done. Snapshots a slow reader has not picked up yet are replaced by newer
// ones, so the last value received is always the current state.
// Snapshots are shared by every subscriber and must be treated as read-only.
func (s *Store) Watch(ctx context.Context) <-chan []model.ProductEntity {
	ch := make(snapshotCh, 1)

	s.mu.Lock()
	ch <- s.products
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()

		// publishing happens under mu, so closing here cannot race a send
		s.mu.Lock()
		delete(s.subscribers, ch)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

func (s *Store) Count(ctx context.Context) <-chan int {
	return utils.MapLatest(s.Watch(ctx), func(products []model.ProductEntity) int {
		return len(products)
	})
}

// TotalValue emits the sum of price*quantity; an empty store is worth zero.
func (s *Store) TotalValue(ctx context.Context) <-chan decimal.Decimal {
	return utils.MapLatest(s.Watch(ctx), SumValue)
}

func SumValue(products []model.ProductEntity) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.TotalValue())
	}
	return total
}

func (s *Store) commit(next []model.ProductEntity) {
	s.products = next
	for ch := range s.subscribers {
		utils.ReplaceLatest(ch, next)
	}
}

func (s *Store) copyProducts() []model.ProductEntity {
	next := make([]model.ProductEntity, len(s.products), len(s.products)+1)
	copy(next, s.products)
	return next
}

func indexOf(products []model.ProductEntity, id string) int {
	for i, p := range products {
		if p.Id == id {
			return i
		}
	}
	return -1
}
