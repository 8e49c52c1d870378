package sheets

import (
	"strconv"
	"time"

	"github.com/asadbek002/checkin-bot/internal/domain/attendance"
)

// Sheet column layout, one event per row:
// A id | B user_id | C user_name | D date | E time | F status | G location | H reason | I created_at
const numColumns = 9

func rowFromEvent(event attendance.Event) []interface{} {
	return []interface{}{
		event.ID,
		strconv.FormatInt(event.UserID, 10),
		event.UserName,
		event.Date.Format("2006-01-02"),
		event.Time,
		string(event.Status),
		event.Location,
		event.Reason,
		event.CreatedAt.Format(time.RFC3339),
	}
}

// eventFromRow decodes one sheet row. Rows that are short, garbled or
// hand-edited beyond recognition are skipped rather than failing the query.
func eventFromRow(row []interface{}) (attendance.Event, bool) {
	if len(row) < numColumns {
		return attendance.Event{}, false
	}

	cells := make([]string, numColumns)
	for i := 0; i < numColumns; i++ {
		s, ok := row[i].(string)
		if !ok {
			return attendance.Event{}, false
		}
		cells[i] = s
	}

	userID, err := strconv.ParseInt(cells[1], 10, 64)
	if err != nil {
		return attendance.Event{}, false
	}

	date, err := time.Parse("2006-01-02", cells[3])
	if err != nil {
		return attendance.Event{}, false
	}

	createdAt, err := time.Parse(time.RFC3339, cells[8])
	if err != nil {
		return attendance.Event{}, false
	}

	return attendance.Event{
		ID:        cells[0],
		UserID:    userID,
		UserName:  cells[2],
		Date:      date,
		Time:      cells[4],
		Status:    attendance.Status(cells[5]),
		Location:  cells[6],
		Reason:    cells[7],
		CreatedAt: createdAt,
	}, true
}

func matchesFilter(event attendance.Event, filter attendance.EventFilter) bool {
	if filter.UserID != nil && event.UserID != *filter.UserID {
		return false
	}
	if filter.Status != nil && event.Status != *filter.Status {
		return false
	}
	if filter.ReasonNonEmpty && event.Reason == "" {
		return false
	}
	if filter.DateOnOrAfter != nil && event.Date.Before(dateOnly(*filter.DateOnOrAfter)) {
		return false
	}
	if filter.DateExact != nil && !event.Date.Equal(dateOnly(*filter.DateExact)) {
		return false
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
