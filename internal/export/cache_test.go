package export

import (
	"context"
	"errors"
	"testing"

	"wc-order-export/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCachingResolver_FetchesOncePerProduct(t *testing.T) {
	inner := new(MockCostResolver)
	inner.On("ProductCost", mock.Anything, int64(100)).Return(dec(t, "5.00"), true, nil).Once()
	inner.On("ProductCost", mock.Anything, int64(200)).Return(decimal.Zero, false, nil).Once()

	resolver := NewCachingResolver(inner)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		cost, ok, err := resolver.ProductCost(ctx, 100)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, cost.Equal(dec(t, "5.00")))
	}

	// The unresolved result is cached as well.
	for i := 0; i < 3; i++ {
		cost, ok, err := resolver.ProductCost(ctx, 200)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.True(t, cost.IsZero())
	}

	inner.AssertExpectations(t)
}

func TestCachingResolver_ErrorsAreNotCached(t *testing.T) {
	inner := new(MockCostResolver)
	inner.On("ProductCost", mock.Anything, int64(100)).
		Return(decimal.Zero, false, errors.New("store unreachable")).Once()
	inner.On("ProductCost", mock.Anything, int64(100)).
		Return(dec(t, "5.00"), true, nil).Once()

	resolver := NewCachingResolver(inner)
	ctx := context.Background()

	_, _, err := resolver.ProductCost(ctx, 100)
	require.Error(t, err)

	cost, ok, err := resolver.ProductCost(ctx, 100)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, cost.Equal(dec(t, "5.00")))

	inner.AssertExpectations(t)
}

func TestCachingResolver_OutputMatchesPlainResolver(t *testing.T) {
	orders := []model.Order{
		{ID: 1, LineItems: []model.LineItem{
			{SKU: "A", Quantity: 2, Total: dec(t, "10.00"), ProductID: 100},
			{SKU: "B", Quantity: 1, Total: dec(t, "20.00"), ProductID: 100},
			{SKU: "C", Quantity: 4, Total: dec(t, "30.00"), ProductID: 200},
		}},
	}

	plain := new(MockCostResolver)
	plain.On("ProductCost", mock.Anything, int64(100)).Return(dec(t, "5.00"), true, nil)
	plain.On("ProductCost", mock.Anything, int64(200)).Return(dec(t, "1.25"), true, nil)

	cached := new(MockCostResolver)
	cached.On("ProductCost", mock.Anything, int64(100)).Return(dec(t, "5.00"), true, nil).Once()
	cached.On("ProductCost", mock.Anything, int64(200)).Return(dec(t, "1.25"), true, nil).Once()

	ctx := context.Background()

	plainRows, err := NewPipeline(new(MockOrderSource), plain, zerolog.Nop()).Flatten(ctx, orders)
	require.NoError(t, err)

	cachedRows, err := NewPipeline(new(MockOrderSource), NewCachingResolver(cached), zerolog.Nop()).Flatten(ctx, orders)
	require.NoError(t, err)

	require.Len(t, cachedRows, len(plainRows))
	for i := range plainRows {
		assert.Equal(t, plainRows[i].Record(), cachedRows[i].Record())
	}

	cached.AssertExpectations(t)
}
