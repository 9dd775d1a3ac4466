package sink

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"wc-order-export/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func sampleRows(t *testing.T) []model.OutputRow {
	t.Helper()

	customerID := int64(7)
	return []model.OutputRow{
		{
			OrderID:      42,
			OrderDate:    "2025-03-01T10:00:00",
			CustomerID:   &customerID,
			SKU:          "SKU-A",
			Quantity:     2,
			LineTotal:    dec(t, "40.00"),
			ProductCost:  dec(t, "5.00"),
			LineCOGS:     dec(t, "10.00"),
			OrderStatus:  "completed",
			ShippingPaid: dec(t, "12.50"),
			TaxesPaid:    dec(t, "3.00"),
		},
		{
			OrderID:      42,
			OrderDate:    "2025-03-01T10:00:00",
			CustomerID:   &customerID,
			SKU:          "SKU-B",
			Quantity:     1,
			LineTotal:    dec(t, "15.00"),
			ProductCost:  decimal.Zero,
			LineCOGS:     decimal.Zero,
			OrderStatus:  "completed",
			ShippingPaid: dec(t, "12.50"),
			TaxesPaid:    dec(t, "3.00"),
		},
	}
}

func TestFileSink_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	s := NewFileSink(path, zerolog.Nop())

	require.NoError(t, s.Write(context.Background(), sampleRows(t)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
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
	}, records[0])

	assert.Equal(t, []string{
		"42", "2025-03-01T10:00:00", "7", "SKU-A", "2",
		"40", "5", "10", "completed", "12.5", "3",
	}, records[1])

	assert.Equal(t, []string{
		"42", "2025-03-01T10:00:00", "7", "SKU-B", "1",
		"15", "0", "0", "completed", "12.5", "3",
	}, records[2])
}

func TestFileSink_Write_GuestOrderHasEmptyCustomer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	s := NewFileSink(path, zerolog.Nop())

	rows := sampleRows(t)[:1]
	rows[0].CustomerID = nil

	require.NoError(t, s.Write(context.Background(), rows))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "", records[1][2])
}

func TestFileSink_Write_ZeroRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	s := NewFileSink(path, zerolog.Nop())

	require.NoError(t, s.Write(context.Background(), nil))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "zero rows must not produce a file")
}
