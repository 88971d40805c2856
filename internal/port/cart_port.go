package port

import (
	"context"
	"errors"

	"github.com/nikolayk812/cvshop/internal/domain"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrCorruptCart = errors.New("stored cart is corrupt")
)

// CartRepository persists one cart per owner. GetCart returns an empty cart for an owner
// that has never saved one and ErrCorruptCart when the stored value is unusable.
type CartRepository interface {
	GetCart(ctx context.Context, ownerID string) (domain.Cart, error)
	SaveCart(ctx context.Context, cart domain.Cart) error
	DeleteCart(ctx context.Context, ownerID string) (bool, error)
}

// KeyValueStore is the flat storage a cart repository writes through.
// Get returns ErrKeyNotFound for a missing key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) (bool, error)
}
