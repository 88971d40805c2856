package cart_test

import (
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/nikolayk812/cvshop/internal/cart"
	"github.com/nikolayk812/cvshop/internal/catalog"
	"github.com/nikolayk812/cvshop/internal/domain"
	"github.com/nikolayk812/cvshop/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type serviceSuite struct {
	suite.Suite

	svc *cart.Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(serviceSuite))
}

func (suite *serviceSuite) SetupTest() {
	c, err := catalog.Default()
	suite.Require().NoError(err)

	repo := repository.NewCart(repository.NewMemoryKV(), "")
	suite.svc = cart.NewService(repo, c, nil, nil)
}

func (suite *serviceSuite) TestAdd() {
	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	_, err := suite.svc.Add(ctx, ownerID, 1)
	require.NoError(t, err)
	_, err = suite.svc.Add(ctx, ownerID, 1)
	require.NoError(t, err)
	got, err := suite.svc.Add(ctx, ownerID, 5)
	require.NoError(t, err)

	require.Len(t, got.Items, 2)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, "5000", got.Items[0].Subtotal().String())
	assert.Equal(t, "6200", got.Total().String())
}

func (suite *serviceSuite) TestAdd_unknownItem() {
	t := suite.T()

	_, err := suite.svc.Add(t.Context(), gofakeit.UUID(), 999)
	require.ErrorIs(t, err, domain.ErrItemNotFound)
}

func (suite *serviceSuite) TestUpdateQuantity() {
	tests := []struct {
		name    string
		id      int64
		delta   int
		wantQty int
	}{
		{
			name:    "clamp at one",
			id:      1,
			delta:   -5,
			wantQty: 1,
		},
		{
			name:    "increment",
			id:      1,
			delta:   3,
			wantQty: 5,
		},
		{
			name:    "unknown id: no-op",
			id:      42,
			delta:   3,
			wantQty: 2,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()
			ownerID := gofakeit.UUID()

			_, err := suite.svc.Add(ctx, ownerID, 1)
			require.NoError(t, err)
			_, err = suite.svc.Add(ctx, ownerID, 1)
			require.NoError(t, err)

			got, err := suite.svc.UpdateQuantity(ctx, ownerID, tt.id, tt.delta)
			require.NoError(t, err)

			require.Len(t, got.Items, 1)
			assert.Equal(t, tt.wantQty, got.Items[0].Quantity)
		})
	}
}

func (suite *serviceSuite) TestRemoveThenAdd() {
	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	for range 3 {
		_, err := suite.svc.Add(ctx, ownerID, 3)
		require.NoError(t, err)
	}

	got, err := suite.svc.Remove(ctx, ownerID, 3)
	require.NoError(t, err)
	assert.Empty(t, got.Items)

	got, err = suite.svc.Add(ctx, ownerID, 3)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 1, got.Items[0].Quantity)
}

func (suite *serviceSuite) TestOwnersAreIsolated() {
	t := suite.T()
	ctx := t.Context()

	alice, bob := gofakeit.UUID(), gofakeit.UUID()

	_, err := suite.svc.Add(ctx, alice, 1)
	require.NoError(t, err)

	got, err := suite.svc.Cart(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func (suite *serviceSuite) TestClear() {
	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	_, err := suite.svc.Add(ctx, ownerID, 2)
	require.NoError(t, err)

	deleted, err := suite.svc.Clear(ctx, ownerID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := suite.svc.Cart(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func (suite *serviceSuite) TestConcurrentAddsForOneOwner() {
	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	const n = 50

	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.svc.Add(ctx, ownerID, 4)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := suite.svc.Cart(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, n, got.Items[0].Quantity)
}
