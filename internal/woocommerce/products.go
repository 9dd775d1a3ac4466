package woocommerce

import (
	"context"
	"encoding/json"
	"fmt"

	"wc-order-export/internal/model"

	"github.com/shopspring/decimal"
)

// costMetaKey is the product metadata key the Cost of Goods plugin stores the
// per-unit cost under.
const costMetaKey = "_wc_cog_cost"

// ProductCost fetches a product and extracts its per-unit cost from the
// metadata collection. The boolean reports whether a cost was resolved: a
// missing key or a value that does not parse as a decimal is not an error,
// the cost is simply unresolved. HTTP failures from the underlying fetch
// propagate unmodified.
func (c *Client) ProductCost(ctx context.Context, productID int64) (decimal.Decimal, bool, error) {
	body, err := c.Get(ctx, fmt.Sprintf("/products/%d", productID), nil)
	if err != nil {
		return decimal.Zero, false, err
	}

	var product model.Product
	if err := json.Unmarshal(body, &product); err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to decode product %d: %w", productID, err)
	}

	for _, meta := range product.MetaData {
		if meta.Key != costMetaKey {
			continue
		}
		cost, ok := parseCostValue(meta.Value)
		if !ok {
			c.logger.Warn().
				Int64("product_id", productID).
				Str("value", string(meta.Value)).
				Msg("cost metadata present but not numeric, treating as unresolved")
		}
		return cost, ok, nil
	}

	c.logger.Debug().
		Int64("product_id", productID).
		Msg("product has no cost metadata")

	return decimal.Zero, false, nil
}

// parseCostValue interprets a raw metadata value as a decimal. The store
// serialises costs as strings, but bare JSON numbers are accepted too.
func parseCostValue(raw json.RawMessage) (decimal.Decimal, bool) {
	if len(raw) == 0 {
		return decimal.Zero, false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		cost, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false
		}
		return cost, true
	}

	cost, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Zero, false
	}
	return cost, true
}
