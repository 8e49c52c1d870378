package notification

import "context"

// Notifier delivers out-of-band alerts to the configured administrator.
type Notifier interface {
	// NotifyLateArrival tells the administrator that a user checked in late
	// and a reason is pending.
	NotifyLateArrival(ctx context.Context, userID int64, userName string) error
}
