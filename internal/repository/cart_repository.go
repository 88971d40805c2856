package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/cvshop/internal/domain"
	"github.com/nikolayk812/cvshop/internal/port"
)

// DefaultKeyPrefix matches the browser storage key of the storefront.
const DefaultKeyPrefix = "cv_cart"

var ErrEmptyOwnerID = errors.New("ownerID is empty")

type cartRepository struct {
	kv     port.KeyValueStore
	prefix string
}

func NewCart(kv port.KeyValueStore, keyPrefix string) port.CartRepository {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}

	return &cartRepository{
		kv:     kv,
		prefix: keyPrefix,
	}
}

// GetCart returns port.ErrCorruptCart (wrapped) when the stored value cannot be decoded or
// breaks a cart invariant; any other error comes from the underlying store.
func (r *cartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, ErrEmptyOwnerID
	}

	data, err := r.kv.Get(ctx, r.key(ownerID))
	if errors.Is(err, port.ErrKeyNotFound) {
		return domain.Cart{OwnerID: ownerID}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("kv.Get: %w", err)
	}

	items, err := unmarshalLineItems(data)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%w: %w", port.ErrCorruptCart, err)
	}

	cart := domain.Cart{
		OwnerID: ownerID,
		Items:   items,
	}

	if err := cart.Validate(); err != nil {
		return domain.Cart{}, fmt.Errorf("%w: %w", port.ErrCorruptCart, err)
	}

	return cart, nil
}

func (r *cartRepository) SaveCart(ctx context.Context, cart domain.Cart) error {
	if cart.OwnerID == "" {
		return ErrEmptyOwnerID
	}

	if err := cart.Validate(); err != nil {
		return fmt.Errorf("cart.Validate: %w", err)
	}

	data, err := marshalLineItems(cart.Items)
	if err != nil {
		return fmt.Errorf("marshalLineItems: %w", err)
	}

	if err := r.kv.Set(ctx, r.key(cart.OwnerID), data); err != nil {
		return fmt.Errorf("kv.Set: %w", err)
	}

	return nil
}

func (r *cartRepository) DeleteCart(ctx context.Context, ownerID string) (bool, error) {
	if ownerID == "" {
		return false, ErrEmptyOwnerID
	}

	deleted, err := r.kv.Delete(ctx, r.key(ownerID))
	if err != nil {
		return false, fmt.Errorf("kv.Delete: %w", err)
	}

	return deleted, nil
}

func (r *cartRepository) key(ownerID string) string {
	return r.prefix + ":" + ownerID
}
