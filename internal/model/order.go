package model

import "github.com/shopspring/decimal"

// Order represents one purchase transaction as returned by the store API.
// Status is an open-ended, store-defined vocabulary and is passed through
// untouched.
type Order struct {
	ID            int64          `json:"id"`
	DateCreated   string         `json:"date_created"`
	CustomerID    *int64         `json:"customer_id,omitempty"`
	Status        string         `json:"status"`
	ShippingLines []ShippingLine `json:"shipping_lines"`
	TaxLines      []TaxLine      `json:"tax_lines"`
	LineItems     []LineItem     `json:"line_items"`
}

// LineItem represents one product-quantity entry within an order. Total is
// the charged amount for the line, taken as-is from the store (it already
// reflects quantity, unit price and any line-level discount).
type LineItem struct {
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
	ProductID int64           `json:"product_id"`
}

// ShippingLine is one shipping charge entry on an order.
type ShippingLine struct {
	Total decimal.Decimal `json:"total"`
}

// TaxLine is one tax charge entry on an order.
type TaxLine struct {
	Total decimal.Decimal `json:"total"`
}

// ShippingTotal sums the totals of all shipping lines. A missing total
// decodes to zero and contributes nothing.
func (o *Order) ShippingTotal() decimal.Decimal {
	total := decimal.Zero
	for _, sh := range o.ShippingLines {
		total = total.Add(sh.Total)
	}
	return total
}

// TaxTotal sums the totals of all tax lines.
func (o *Order) TaxTotal() decimal.Decimal {
	total := decimal.Zero
	for _, t := range o.TaxLines {
		total = total.Add(t.Total)
	}
	return total
}
