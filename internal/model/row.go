package model

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// OutputRow is the flattened unit of the result dataset: one row per line
// item, carrying the order-level aggregates denormalised across every row of
// the same order.
type OutputRow struct {
	OrderID      int64
	OrderDate    string
	CustomerID   *int64
	SKU          string
	Quantity     int
	LineTotal    decimal.Decimal
	ProductCost  decimal.Decimal
	LineCOGS     decimal.Decimal
	OrderStatus  string
	ShippingPaid decimal.Decimal
	TaxesPaid    decimal.Decimal
}

// RowHeader returns the column names in the fixed output order.
func RowHeader() []string {
	return []string{
		"order_id",
		"order_date",
		"customer_id",
		"line_item_sku",
		"line_item_quantity",
		"line_item_total",
		"product_cost",
		"line_COGS",
		"order_status",
		"shipping_paid",
		"taxes_paid",
	}
}

// Record renders the row as strings in the header's column order.
func (r OutputRow) Record() []string {
	customer := ""
	if r.CustomerID != nil {
		customer = strconv.FormatInt(*r.CustomerID, 10)
	}
	return []string{
		strconv.FormatInt(r.OrderID, 10),
		r.OrderDate,
		customer,
		r.SKU,
		strconv.Itoa(r.Quantity),
		r.LineTotal.String(),
		r.ProductCost.String(),
		r.LineCOGS.String(),
		r.OrderStatus,
		r.ShippingPaid.String(),
		r.TaxesPaid.String(),
	}
}
