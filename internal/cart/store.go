// Package cart holds the cart store: the in-memory cart of one owner that is written
// back to a port.CartRepository after every mutation.
package cart

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/nikolayk812/cvshop/internal/domain"
	"github.com/nikolayk812/cvshop/internal/port"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Store is not safe for concurrent use; Service serializes access per owner.
type Store struct {
	repo    port.CartRepository
	logger  *zap.Logger
	metrics *Metrics

	cart domain.Cart
}

// Rehydrate loads the owner's cart. A missing or corrupt stored cart yields an empty
// cart; only storage failures are returned.
func Rehydrate(ctx context.Context, repo port.CartRepository, ownerID string, logger *zap.Logger, metrics *Metrics) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	c, err := repo.GetCart(ctx, ownerID)
	switch {
	case errors.Is(err, port.ErrCorruptCart):
		logger.Warn("stored cart is unusable, starting empty", zap.String("owner_id", ownerID), zap.Error(err))
		metrics.rehydrateFallback()
		c = domain.Cart{OwnerID: ownerID}
	case err != nil:
		return nil, fmt.Errorf("repo.GetCart: %w", err)
	}

	return &Store{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		cart:    c,
	}, nil
}

func (s *Store) Add(ctx context.Context, item domain.Item) domain.Cart {
	return s.apply(ctx, opAdd, s.cart.Add(item))
}

// UpdateQuantity clamps the resulting quantity at 1; removing a line needs Remove.
func (s *Store) UpdateQuantity(ctx context.Context, id int64, delta int) domain.Cart {
	return s.apply(ctx, opUpdate, s.cart.UpdateQuantity(id, delta))
}

func (s *Store) Remove(ctx context.Context, id int64) domain.Cart {
	return s.apply(ctx, opRemove, s.cart.Remove(id))
}

func (s *Store) Cart() domain.Cart {
	return domain.Cart{OwnerID: s.cart.OwnerID, Items: s.Items()}
}

func (s *Store) Items() []domain.LineItem {
	return slices.Clone(s.cart.Items)
}

func (s *Store) Count() int {
	return s.cart.Count()
}

func (s *Store) Total() decimal.Decimal {
	return s.cart.Total()
}

func (s *Store) apply(ctx context.Context, op string, next domain.Cart) domain.Cart {
	s.cart = next
	s.metrics.operation(op)
	s.persist(ctx)

	return s.Cart()
}

// persist is fire-and-forget: a failed write is logged and counted, the in-memory
// cart stays authoritative.
func (s *Store) persist(ctx context.Context) {
	if err := s.repo.SaveCart(ctx, s.cart); err != nil {
		s.metrics.persistFailure()
		s.logger.Warn("failed to persist cart",
			zap.String("owner_id", s.cart.OwnerID),
			zap.Int("lines", len(s.cart.Items)),
			zap.Error(err))
	}
}
