package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/cvshop/internal/domain"
	"github.com/nikolayk812/cvshop/internal/port"
	"go.uber.org/zap"
)

// Service runs every cart operation as rehydrate, transform, persist while holding a
// per-owner lock, so requests of one browser never interleave.
type Service struct {
	repo    port.CartRepository
	catalog port.Catalog
	logger  *zap.Logger
	metrics *Metrics

	locks *ownerLocks
}

func NewService(repo port.CartRepository, catalog port.Catalog, logger *zap.Logger, metrics *Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		repo:    repo,
		catalog: catalog,
		logger:  logger,
		metrics: metrics,
		locks:   newOwnerLocks(),
	}
}

func (s *Service) Cart(ctx context.Context, ownerID string) (domain.Cart, error) {
	unlock := s.locks.lock(ownerID)
	defer unlock()

	store, err := Rehydrate(ctx, s.repo, ownerID, s.logger, s.metrics)
	if err != nil {
		return domain.Cart{}, err
	}

	return store.Cart(), nil
}

// Add looks the item up in the catalog; an unknown id is domain.ErrItemNotFound.
func (s *Service) Add(ctx context.Context, ownerID string, itemID int64) (domain.Cart, error) {
	item, err := s.catalog.Get(itemID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("catalog.Get: %w", err)
	}

	return s.withStore(ctx, ownerID, func(store *Store) domain.Cart {
		return store.Add(ctx, item)
	})
}

func (s *Service) UpdateQuantity(ctx context.Context, ownerID string, itemID int64, delta int) (domain.Cart, error) {
	return s.withStore(ctx, ownerID, func(store *Store) domain.Cart {
		return store.UpdateQuantity(ctx, itemID, delta)
	})
}

func (s *Service) Remove(ctx context.Context, ownerID string, itemID int64) (domain.Cart, error) {
	return s.withStore(ctx, ownerID, func(store *Store) domain.Cart {
		return store.Remove(ctx, itemID)
	})
}

// Clear drops the stored cart entirely, the equivalent of wiping browser storage.
func (s *Service) Clear(ctx context.Context, ownerID string) (bool, error) {
	unlock := s.locks.lock(ownerID)
	defer unlock()

	deleted, err := s.repo.DeleteCart(ctx, ownerID)
	if err != nil {
		return false, fmt.Errorf("repo.DeleteCart: %w", err)
	}

	return deleted, nil
}

func (s *Service) withStore(ctx context.Context, ownerID string, fn func(store *Store) domain.Cart) (domain.Cart, error) {
	unlock := s.locks.lock(ownerID)
	defer unlock()

	store, err := Rehydrate(ctx, s.repo, ownerID, s.logger, s.metrics)
	if err != nil {
		return domain.Cart{}, err
	}

	return fn(store), nil
}

type ownerLocks struct {
	mu    sync.Mutex
	locks map[string]*ownerLock
}

type ownerLock struct {
	mu   sync.Mutex
	refs int
}

func newOwnerLocks() *ownerLocks {
	return &ownerLocks{locks: make(map[string]*ownerLock)}
}

// lock returns the matching unlock; entries are dropped once nobody holds or waits on them.
func (l *ownerLocks) lock(ownerID string) func() {
	l.mu.Lock()
	ol, ok := l.locks[ownerID]
	if !ok {
		ol = &ownerLock{}
		l.locks[ownerID] = ol
	}
	ol.refs++
	l.mu.Unlock()

	ol.mu.Lock()

	return func() {
		ol.mu.Unlock()

		l.mu.Lock()
		ol.refs--
		if ol.refs == 0 {
			delete(l.locks, ownerID)
		}
		l.mu.Unlock()
	}
}
