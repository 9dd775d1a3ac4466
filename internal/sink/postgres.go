package sink

import (
	"context"
	"fmt"

	"wc-order-export/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// createReportTable creates the reporting table on first use. Monetary
// columns are NUMERIC so decimal values round-trip without drift.
const createReportTable = `
	CREATE TABLE IF NOT EXISTS order_report (
		run_id             UUID NOT NULL,
		order_id           BIGINT NOT NULL,
		order_date         TEXT NOT NULL,
		customer_id        BIGINT,
		line_item_sku      TEXT,
		line_item_quantity INT NOT NULL,
		line_item_total    NUMERIC NOT NULL,
		product_cost       NUMERIC NOT NULL,
		line_cogs          NUMERIC NOT NULL,
		order_status       TEXT NOT NULL,
		shipping_paid      NUMERIC NOT NULL,
		taxes_paid         NUMERIC NOT NULL,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

const insertReportRow = `
	INSERT INTO order_report (
		run_id, order_id, order_date, customer_id, line_item_sku,
		line_item_quantity, line_item_total, product_cost, line_cogs,
		order_status, shipping_paid, taxes_paid
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

// postgresSink persists the row set into Postgres, tagged with the run ID so
// successive runs remain distinguishable.
type postgresSink struct {
	pool   *pgxpool.Pool
	runID  uuid.UUID
	logger zerolog.Logger
}

// NewPostgresSink creates a Postgres-backed sink writing to order_report.
func NewPostgresSink(pool *pgxpool.Pool, runID uuid.UUID, logger zerolog.Logger) Sink {
	return &postgresSink{
		pool:   pool,
		runID:  runID,
		logger: logger.With().Str("sink", "postgres").Logger(),
	}
}

// Write inserts all rows within a single transaction. Zero rows skip the
// write entirely.
func (s *postgresSink) Write(ctx context.Context, rows []model.OutputRow) error {
	if len(rows) == 0 {
		s.logger.Info().Msg("no orders found, skipping database write")
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, createReportTable); err != nil {
		return fmt.Errorf("failed to ensure order_report table: %w", err)
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(insertReportRow,
			s.runID,
			row.OrderID,
			row.OrderDate,
			row.CustomerID,
			row.SKU,
			row.Quantity,
			row.LineTotal.String(),
			row.ProductCost.String(),
			row.LineCOGS.String(),
			row.OrderStatus,
			row.ShippingPaid.String(),
			row.TaxesPaid.String(),
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range rows {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to insert report row: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit report rows: %w", err)
	}

	s.logger.Info().
		Int("row_count", len(rows)).
		Str("run_id", s.runID.String()).
		Msg("persisted rows to database")

	return nil
}
