package export

import (
	"context"

	"github.com/shopspring/decimal"
)

// cachedCost remembers a resolver result, including the unresolved case, so
// a product without cost metadata is not re-fetched either.
type cachedCost struct {
	cost decimal.Decimal
	ok   bool
}

// CachingResolver memoises cost lookups by product ID for the duration of
// one pipeline run. This only preserves output if product costs are stable
// within the run; build a fresh resolver per run.
type CachingResolver struct {
	inner CostResolver
	seen  map[int64]cachedCost
}

// NewCachingResolver wraps a resolver with per-run memoisation.
func NewCachingResolver(inner CostResolver) *CachingResolver {
	return &CachingResolver{
		inner: inner,
		seen:  make(map[int64]cachedCost),
	}
}

// ProductCost returns the cached result for a product ID, consulting the
// wrapped resolver once per distinct ID. Errors are not cached.
func (r *CachingResolver) ProductCost(ctx context.Context, productID int64) (decimal.Decimal, bool, error) {
	if hit, found := r.seen[productID]; found {
		return hit.cost, hit.ok, nil
	}

	cost, ok, err := r.inner.ProductCost(ctx, productID)
	if err != nil {
		return decimal.Zero, false, err
	}

	r.seen[productID] = cachedCost{cost: cost, ok: ok}
	return cost, ok, nil
}
