package postgresql

import (
	"context"
	"fmt"

	"github.com/asadbek002/checkin-bot/internal/domain/attendance"
	"github.com/asadbek002/checkin-bot/internal/pkg/database"
)

type attendanceStore struct {
	db *database.DB
}

// NewAttendanceStore returns a RecordStore backed by the attendance_events
// table (see schema.sql).
func NewAttendanceStore(db *database.DB) attendance.RecordStore {
	return &attendanceStore{db: db}
}

// Append implements attendance.RecordStore.
func (s *attendanceStore) Append(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	query := `
		INSERT INTO attendance_events (
			user_id, user_name, date, time, status, location, reason
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at
	`

	err := s.db.QueryRow(ctx, query,
		event.UserID,
		event.UserName,
		event.Date,
		event.Time,
		string(event.Status),
		event.Location,
		event.Reason,
	).Scan(&event.ID, &event.CreatedAt)

	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to append attendance event: %w", err)
	}

	return event, nil
}

// Query implements attendance.RecordStore.
func (s *attendanceStore) Query(ctx context.Context, filter attendance.EventFilter) ([]attendance.Event, error) {
	query := `
		SELECT id, user_id, user_name, date, time, status, location, reason, created_at
		FROM attendance_events
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, string(*filter.Status))
		argIdx++
	}

	if filter.ReasonNonEmpty {
		query += " AND reason <> ''"
	}

	if filter.DateOnOrAfter != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *filter.DateOnOrAfter)
		argIdx++
	}

	if filter.DateExact != nil {
		query += fmt.Sprintf(" AND date = $%d", argIdx)
		args = append(args, *filter.DateExact)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filter.Limit)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance events: %w", err)
	}
	defer rows.Close()

	events := make([]attendance.Event, 0)
	for rows.Next() {
		var ev attendance.Event
		var status string
		if err := rows.Scan(
			&ev.ID, &ev.UserID, &ev.UserName, &ev.Date, &ev.Time,
			&status, &ev.Location, &ev.Reason, &ev.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		ev.Status = attendance.Status(status)
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance events: %w", err)
	}

	return events, nil
}
