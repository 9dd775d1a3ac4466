package sink

import (
	"context"
	"fmt"
	"os"

	"wc-order-export/internal/model"

	"github.com/rs/zerolog"
)

// fileSink writes the row set to a CSV file on the local file system.
type fileSink struct {
	path   string
	logger zerolog.Logger
}

// NewFileSink creates a sink that writes CSV output to the given path.
func NewFileSink(path string, logger zerolog.Logger) Sink {
	return &fileSink{
		path:   path,
		logger: logger.With().Str("sink", "csv").Logger(),
	}
}

// Write serialises the rows to the configured path. Zero rows produce no
// file at all; that is a valid outcome, not an error.
func (s *fileSink) Write(ctx context.Context, rows []model.OutputRow) error {
	if len(rows) == 0 {
		s.logger.Info().Msg("no orders found, skipping CSV export")
		return nil
	}

	data, err := renderCSV(rows)
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write CSV file %s: %w", s.path, err)
	}

	s.logger.Info().
		Int("row_count", len(rows)).
		Str("path", s.path).
		Msg("wrote CSV export")

	return nil
}
