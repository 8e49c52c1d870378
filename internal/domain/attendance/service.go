package attendance

import (
	"context"
	"time"
)

// Service defines business logic for the check-in workflow.
type Service interface {
	// CheckIn validates a location against the office geofence, classifies
	// lateness and either records the arrival, blocks it, or parks a pending
	// reason request.
	CheckIn(ctx context.Context, req CheckInRequest) (CheckInResult, error)

	// SubmitReason finalizes a pending late arrival with the supplied text.
	// Returns (nil, nil) when the user has nothing pending.
	SubmitReason(ctx context.Context, userID int64, reason string) (*Event, error)

	// CheckOut records a departure regardless of session state.
	CheckOut(ctx context.Context, req CheckOutRequest) (Event, error)

	// History returns the user's events for the given date, or the most
	// recent ones when date is nil.
	History(ctx context.Context, userID int64, date *time.Time) ([]Event, error)
}
