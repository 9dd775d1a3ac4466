package woocommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"wc-order-export/internal/model"
)

// perPage is the fixed page size used for order pagination.
const perPage = 100

// ListOrders retrieves every order created strictly after the given ISO-8601
// timestamp, walking /orders one page at a time until a short or empty page
// signals exhaustion. Server-side ordering is preserved; the result is
// materialised fully in memory.
//
// The store signals exhaustion only through an empty page, so the walk is
// bounded by the configured page ceiling to turn a misbehaving server into a
// reported error rather than an endless loop.
func (c *Client) ListOrders(ctx context.Context, after string) ([]model.Order, error) {
	var orders []model.Order

	for page := 1; ; page++ {
		if page > c.maxPages {
			return nil, fmt.Errorf("order pagination exceeded %d pages without an empty page; aborting", c.maxPages)
		}

		params := url.Values{}
		params.Set("per_page", strconv.Itoa(perPage))
		params.Set("page", strconv.Itoa(page))
		params.Set("after", after)

		body, err := c.Get(ctx, "/orders", params)
		if err != nil {
			return nil, err
		}

		var batch []model.Order
		if err := json.Unmarshal(body, &batch); err != nil {
			return nil, fmt.Errorf("failed to decode orders page %d: %w", page, err)
		}

		if len(batch) == 0 {
			break
		}

		c.logger.Debug().
			Int("page", page).
			Int("count", len(batch)).
			Msg("fetched orders page")

		orders = append(orders, batch...)

		// A short page already proves exhaustion; only a full last page
		// needs one extra fetch to observe the empty-page signal.
		if len(batch) < perPage {
			break
		}
	}

	c.logger.Info().
		Int("order_count", len(orders)).
		Str("after", after).
		Msg("order fetch complete")

	return orders, nil
}
