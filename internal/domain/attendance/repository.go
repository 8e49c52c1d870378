package attendance

import (
	"context"
	"time"
)

// EventFilter narrows a RecordStore query. Zero-value fields are ignored.
type EventFilter struct {
	UserID         *int64
	Status         *Status
	ReasonNonEmpty bool
	DateOnOrAfter  *time.Time
	DateExact      *time.Time

	// Limit caps the number of returned events, newest first. 0 means no cap.
	Limit int
}

// RecordStore is the append-only log of attendance events. Implementations
// must support concurrent appends; each event is an independent insert.
// Immediate read-after-write visibility is not guaranteed by every backend.
type RecordStore interface {
	// Append persists one event and returns it with its backend-assigned ID.
	Append(ctx context.Context, event Event) (Event, error)

	// Query returns events matching the filter, newest first.
	// An empty store yields an empty slice, not an error.
	Query(ctx context.Context, filter EventFilter) ([]Event, error)
}
