package export

import (
	"context"

	"wc-order-export/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// OrderSource retrieves the full set of orders created after a cutoff
// timestamp, in server order.
type OrderSource interface {
	ListOrders(ctx context.Context, after string) ([]model.Order, error)
}

// CostResolver looks up the per-unit cost of a product. The boolean reports
// whether a cost was actually resolved; an unresolved cost is substituted
// with zero at aggregation time, not inside the resolver.
type CostResolver interface {
	ProductCost(ctx context.Context, productID int64) (decimal.Decimal, bool, error)
}

// Pipeline turns the store's nested order hierarchy into a flat row set:
// one OutputRow per line item, enriched with the product's unit cost and the
// order-level shipping and tax aggregates.
type Pipeline struct {
	orders OrderSource
	costs  CostResolver
	logger zerolog.Logger
}

// NewPipeline creates a new flattening pipeline.
func NewPipeline(orders OrderSource, costs CostResolver, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		orders: orders,
		costs:  costs,
		logger: logger.With().Str("component", "pipeline").Logger(),
	}
}

// Run fetches all orders created after the cutoff and flattens them. All
// fetching happens before any sink sees a row, so a failure here never
// produces truncated output.
func (p *Pipeline) Run(ctx context.Context, after string) ([]model.OutputRow, error) {
	orders, err := p.orders.ListOrders(ctx, after)
	if err != nil {
		return nil, err
	}

	return p.Flatten(ctx, orders)
}

// Flatten emits one row per line item, grouped by order in input order and in
// line-item order within each order. Orders with no line items contribute no
// rows. Shipping and tax totals are computed once per order and repeated
// identically on every row of that order.
func (p *Pipeline) Flatten(ctx context.Context, orders []model.Order) ([]model.OutputRow, error) {
	var rows []model.OutputRow

	for _, order := range orders {
		shipping := order.ShippingTotal()
		taxes := order.TaxTotal()

		for _, item := range order.LineItems {
			cost, err := p.resolveCost(ctx, item.ProductID)
			if err != nil {
				return nil, err
			}

			rows = append(rows, model.OutputRow{
				OrderID:      order.ID,
				OrderDate:    order.DateCreated,
				CustomerID:   order.CustomerID,
				SKU:          item.SKU,
				Quantity:     item.Quantity,
				LineTotal:    item.Total,
				ProductCost:  cost,
				LineCOGS:     cost.Mul(decimal.NewFromInt(int64(item.Quantity))),
				OrderStatus:  order.Status,
				ShippingPaid: shipping,
				TaxesPaid:    taxes,
			})
		}
	}

	p.logger.Info().
		Int("order_count", len(orders)).
		Int("row_count", len(rows)).
		Msg("flattened orders")

	return rows, nil
}

// resolveCost looks up a product's unit cost, substituting zero when the
// line item has no product reference or the cost is unresolved.
func (p *Pipeline) resolveCost(ctx context.Context, productID int64) (decimal.Decimal, error) {
	if productID == 0 {
		return decimal.Zero, nil
	}

	cost, ok, err := p.costs.ProductCost(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return decimal.Zero, nil
	}
	return cost, nil
}
