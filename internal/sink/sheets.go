package sink

import (
	"context"
	"fmt"

	"wc-order-export/internal/model"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// sheetsSink replaces the contents of one worksheet in a Google spreadsheet
// with the row set.
type sheetsSink struct {
	service       *sheets.Service
	spreadsheetID string
	worksheet     string
	logger        zerolog.Logger
}

// NewSheetsSink creates a Google Sheets sink authenticated with a service
// account credentials file.
func NewSheetsSink(ctx context.Context, credentialsFile, spreadsheetID, worksheet string, logger zerolog.Logger) (Sink, error) {
	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &sheetsSink{
		service:       service,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
		logger:        logger.With().Str("sink", "sheets").Logger(),
	}, nil
}

// Write clears the target worksheet (creating it if missing) and uploads the
// header plus all rows starting at A1.
func (s *sheetsSink) Write(ctx context.Context, rows []model.OutputRow) error {
	if len(rows) == 0 {
		s.logger.Info().Msg("no orders found, skipping spreadsheet upload")
		return nil
	}

	if err := s.prepareWorksheet(ctx); err != nil {
		return err
	}

	recs := records(rows)
	values := make([][]interface{}, len(recs))
	for i, rec := range recs {
		cells := make([]interface{}, len(rec))
		for j, field := range rec {
			cells[j] = field
		}
		values[i] = cells
	}

	_, err := s.service.Spreadsheets.Values.
		Update(s.spreadsheetID, s.worksheet+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update worksheet %s: %w", s.worksheet, err)
	}

	s.logger.Info().
		Int("row_count", len(rows)).
		Str("spreadsheet_id", s.spreadsheetID).
		Str("worksheet", s.worksheet).
		Msg("uploaded rows to spreadsheet")

	return nil
}

// prepareWorksheet clears the target worksheet if it exists, or adds it to
// the spreadsheet if it does not.
func (s *sheetsSink) prepareWorksheet(ctx context.Context) error {
	spreadsheet, err := s.service.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to open spreadsheet %s: %w", s.spreadsheetID, err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == s.worksheet {
			_, err := s.service.Spreadsheets.Values.
				Clear(s.spreadsheetID, s.worksheet, &sheets.ClearValuesRequest{}).
				Context(ctx).
				Do()
			if err != nil {
				return fmt.Errorf("failed to clear worksheet %s: %w", s.worksheet, err)
			}
			return nil
		}
	}

	s.logger.Info().Str("worksheet", s.worksheet).Msg("worksheet not found, creating it")

	_, err = s.service.Spreadsheets.
		BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: s.worksheet},
				},
			}},
		}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to add worksheet %s: %w", s.worksheet, err)
	}

	return nil
}
