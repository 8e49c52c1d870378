package attendance

// ========================================
// CHECK-IN DTOs
// ========================================

type CheckInRequest struct {
	UserID    int64
	UserName  string
	Latitude  float64
	Longitude float64
}

// Outcome classifies how a check-in attempt resolved.
type Outcome string

const (
	// OutcomeOnTime means the arrival was recorded immediately.
	OutcomeOnTime Outcome = "on_time"
	// OutcomeAwaitingReason means the user is late within quota; nothing is
	// persisted until the reason reply arrives.
	OutcomeAwaitingReason Outcome = "awaiting_reason"
	// OutcomeBlocked means the monthly late quota is exhausted; the arrival
	// was recorded with the fixed blocked reason.
	OutcomeBlocked Outcome = "blocked"
)

type CheckInResult struct {
	Outcome Outcome
	// Event is set for OutcomeOnTime and OutcomeBlocked; nil while a reason
	// is still pending.
	Event *Event
}

type CheckOutRequest struct {
	UserID   int64
	UserName string
}
