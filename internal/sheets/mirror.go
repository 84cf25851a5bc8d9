// Package sheets mirrors the contest ranking to a Google Sheet so admins can
// follow the contest from a spreadsheet. The mirror is write-only and
// best-effort: the snapshot store remains the single source of truth.
package sheets

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

const rankingSheet = "Ranking"

type Mirror struct {
	srv           *sheetsv4.Service
	spreadsheetID string
}

func New(serviceAccountJSONPath, spreadsheetID string) (*Mirror, error) {
	if _, err := os.Stat(serviceAccountJSONPath); err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}
	ctx := context.Background()
	srv, err := sheetsv4.NewService(ctx,
		option.WithCredentialsFile(serviceAccountJSONPath),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
	if err != nil {
		return nil, err
	}
	return &Mirror{srv: srv, spreadsheetID: spreadsheetID}, nil
}

// Publish rewrites the Ranking sheet with the given header and rows.
func (m *Mirror) Publish(header []string, rows [][]string) error {
	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, toCells(header))
	for _, row := range rows {
		values = append(values, toCells(row))
	}

	if _, err := m.srv.Spreadsheets.Values.
		Clear(m.spreadsheetID, rankingSheet+"!A:Z", &sheetsv4.ClearValuesRequest{}).
		Do(); err != nil {
		return fmt.Errorf("clear ranking sheet: %w", err)
	}

	vr := &sheetsv4.ValueRange{Values: values}
	if _, err := m.srv.Spreadsheets.Values.
		Update(m.spreadsheetID, rankingSheet+"!A1", vr).
		ValueInputOption("RAW").
		Do(); err != nil {
		return fmt.Errorf("update ranking sheet: %w", err)
	}
	return nil
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}
