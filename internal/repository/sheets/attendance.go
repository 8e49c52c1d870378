package sheets

import (
	"context"
	"fmt"
	"os"

	"github.com/asadbek002/checkin-bot/internal/domain/attendance"
	"github.com/google/uuid"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

type attendanceStore struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	readRange     string
}

// NewAttendanceStore returns a RecordStore backed by a Google Sheets
// spreadsheet, authenticated with a service-account credentials file.
func NewAttendanceStore(ctx context.Context, credentialsFile, spreadsheetID, readRange string) (attendance.RecordStore, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheets credentials file: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheets credentials: %w", err)
	}

	svc, err := sheetsapi.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &attendanceStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
	}, nil
}

// Append implements attendance.RecordStore.
func (s *attendanceStore) Append(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	// Sheets has no server-side ID column; assign one here so the
	// round-trip through Query preserves every field.
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	values := &sheetsapi.ValueRange{
		Values: [][]interface{}{rowFromEvent(event)},
	}

	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, s.readRange, values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to append attendance row: %w", err)
	}

	return event, nil
}

// Query implements attendance.RecordStore. The whole range is read and
// filtered in memory; the sheet is small enough that this matches how the
// backend is actually used.
func (s *attendanceStore) Query(ctx context.Context, filter attendance.EventFilter) ([]attendance.Event, error) {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, s.readRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read attendance rows: %w", err)
	}

	events := make([]attendance.Event, 0)
	for _, row := range resp.Values {
		ev, ok := eventFromRow(row)
		if !ok {
			continue
		}
		if matchesFilter(ev, filter) {
			events = append(events, ev)
		}
	}

	// Rows append chronologically; newest first for callers.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}

	if filter.Limit > 0 && len(events) > filter.Limit {
		events = events[:filter.Limit]
	}

	return events, nil
}
