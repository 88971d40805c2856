package cart_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/cvshop/internal/cart"
	"github.com/nikolayk812/cvshop/internal/domain"
	"github.com/nikolayk812/cvshop/internal/port"
	"github.com/nikolayk812/cvshop/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStore_persistsEveryMutation(t *testing.T) {
	ctx := t.Context()
	ownerID := gofakeit.UUID()
	repo := repository.NewCart(repository.NewMemoryKV(), "")

	itemA := item(1, 2500)
	itemB := item(2, 1200)

	store, err := cart.Rehydrate(ctx, repo, ownerID, zap.NewNop(), nil)
	require.NoError(t, err)
	assert.Empty(t, store.Items())

	store.Add(ctx, itemA)
	store.Add(ctx, itemA)
	got := store.Add(ctx, itemB)

	require.Len(t, got.Items, 2)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.True(t, decimal.NewFromInt(6200).Equal(store.Total()))
	assert.Equal(t, 3, store.Count())

	store.UpdateQuantity(ctx, itemA.ID, -5)
	store.Remove(ctx, itemB.ID)

	reloaded, err := cart.Rehydrate(ctx, repo, ownerID, zap.NewNop(), nil)
	require.NoError(t, err)

	items := reloaded.Items()
	require.Len(t, items, 1)
	assert.Equal(t, itemA.ID, items[0].ID)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestStore_ItemsReturnsCopy(t *testing.T) {
	ctx := t.Context()
	repo := repository.NewCart(repository.NewMemoryKV(), "")

	store, err := cart.Rehydrate(ctx, repo, gofakeit.UUID(), nil, nil)
	require.NoError(t, err)
	store.Add(ctx, item(1, 10))

	items := store.Items()
	items[0].Quantity = -3

	assert.Equal(t, 1, store.Items()[0].Quantity)
}

func TestRehydrate_corruptStateStartsEmpty(t *testing.T) {
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	kv := repository.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, repository.DefaultKeyPrefix+":"+ownerID, []byte("definitely not json")))
	repo := repository.NewCart(kv, "")

	core, logs := observer.New(zap.WarnLevel)
	reg := prometheus.NewRegistry()
	metrics := cart.NewMetrics(reg)

	store, err := cart.Rehydrate(ctx, repo, ownerID, zap.New(core), metrics)
	require.NoError(t, err)
	assert.Empty(t, store.Items())
	assert.Equal(t, 1, logs.FilterMessage("stored cart is unusable, starting empty").Len())

	// the next mutation overwrites the corrupt value
	store.Add(ctx, item(7, 100))

	reloaded, err := cart.Rehydrate(ctx, repo, ownerID, nil, nil)
	require.NoError(t, err)
	require.Len(t, reloaded.Items(), 1)
}

func TestRehydrate_storageErrorIsReturned(t *testing.T) {
	boom := errors.New("dial tcp: connection refused")

	_, err := cart.Rehydrate(t.Context(), stubRepo{getErr: boom}, gofakeit.UUID(), nil, nil)
	require.ErrorIs(t, err, boom)
}

func TestStore_persistFailureIsNotFatal(t *testing.T) {
	ctx := t.Context()

	core, logs := observer.New(zap.WarnLevel)
	reg := prometheus.NewRegistry()
	metrics := cart.NewMetrics(reg)

	store, err := cart.Rehydrate(ctx, stubRepo{saveErr: errors.New("disk full")}, gofakeit.UUID(), zap.New(core), metrics)
	require.NoError(t, err)

	got := store.Add(ctx, item(1, 10))

	require.Len(t, got.Items, 1)
	assert.Equal(t, 1, logs.FilterMessage("failed to persist cart").Len())

	expected := `
# HELP cvshop_cart_persist_failures_total Cart writes that failed after a mutation.
# TYPE cvshop_cart_persist_failures_total counter
cvshop_cart_persist_failures_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "cvshop_cart_persist_failures_total"))
}

type stubRepo struct {
	getErr  error
	saveErr error
}

func (s stubRepo) GetCart(_ context.Context, ownerID string) (domain.Cart, error) {
	if s.getErr != nil {
		return domain.Cart{}, s.getErr
	}
	return domain.Cart{OwnerID: ownerID}, nil
}

func (s stubRepo) SaveCart(context.Context, domain.Cart) error {
	return s.saveErr
}

func (s stubRepo) DeleteCart(context.Context, string) (bool, error) {
	return false, nil
}

var _ port.CartRepository = stubRepo{}

func item(id int64, price int64) domain.Item {
	return domain.Item{
		ID:          id,
		Name:        gofakeit.ProductName(),
		Category:    domain.CategoryHebillas,
		Description: gofakeit.ProductDescription(),
		Price:       decimal.NewFromInt(price),
		Stock:       gofakeit.IntRange(0, 20),
		Image:       gofakeit.URL(),
	}
}
