package attendance

import (
	"time"
)

// Status is the recorded presence state of an event.
type Status string

const (
	StatusArrived  Status = "Kelgan"
	StatusDeparted Status = "Ketgan"
)

const (
	// LocationOffice labels arrivals validated inside the office geofence.
	LocationOffice = "Ofisda"
	// LocationUnknown labels departures, which carry no coordinate.
	LocationUnknown = "Noma'lum"

	// BlockedReason is written when a late arrival has exhausted the
	// monthly quota and no reason is solicited.
	BlockedReason = "Sababsiz kech qoldi (blok)"
)

// Event is one append-only attendance record.
type Event struct {
	ID       string
	UserID   int64
	UserName string
	Date     time.Time // local calendar date, truncated to day
	Time     string    // local clock time, "15:04"
	Status   Status
	Location string
	Reason   string

	CreatedAt time.Time
}

// PendingReason is the ephemeral per-user tuple held between a
// late-but-within-quota check-in and the reason reply that finalizes it.
type PendingReason struct {
	UserID    int64
	UserName  string
	Status    Status
	CreatedAt time.Time
}
