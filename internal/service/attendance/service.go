package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/asadbek002/checkin-bot/internal/domain/attendance"
	"github.com/asadbek002/checkin-bot/internal/domain/notification"
	"github.com/asadbek002/checkin-bot/internal/pkg/geo"
	"github.com/asadbek002/checkin-bot/internal/pkg/workday"
)

// CheckInService implements attendance.Service: the sequence from location
// receipt through geofence validation, lateness classification, reason
// collection, quota enforcement and persistence.
type CheckInService struct {
	store    attendance.RecordStore
	notifier notification.Notifier
	fence    geo.Geofence
	clock    workday.Clock
	quota    int
	sessions *sessionStore

	// now is swapped out in tests
	now func() time.Time
}

func NewCheckInService(
	store attendance.RecordStore,
	notifier notification.Notifier,
	fence geo.Geofence,
	clock workday.Clock,
	quota int,
) *CheckInService {
	return &CheckInService{
		store:    store,
		notifier: notifier,
		fence:    fence,
		clock:    clock,
		quota:    quota,
		sessions: newSessionStore(),
		now:      clock.Now,
	}
}

// CheckIn implements attendance.Service.
func (s *CheckInService) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResult, error) {
	if !s.fence.Contains(req.Latitude, req.Longitude) {
		return attendance.CheckInResult{}, attendance.ErrOutsideGeofence
	}

	nowLocal := s.now()

	if !s.clock.IsLate(nowLocal) {
		event, err := s.append(ctx, req.UserID, req.UserName, attendance.StatusArrived, attendance.LocationOffice, "", nowLocal)
		if err != nil {
			return attendance.CheckInResult{}, err
		}
		return attendance.CheckInResult{Outcome: attendance.OutcomeOnTime, Event: &event}, nil
	}

	lateCount, err := s.lateCountThisMonth(ctx, req.UserID, nowLocal)
	if err != nil {
		return attendance.CheckInResult{}, fmt.Errorf("failed to count late arrivals: %w", err)
	}

	if lateCount >= s.quota {
		event, err := s.append(ctx, req.UserID, req.UserName, attendance.StatusArrived, attendance.LocationOffice, attendance.BlockedReason, nowLocal)
		if err != nil {
			return attendance.CheckInResult{}, err
		}
		return attendance.CheckInResult{Outcome: attendance.OutcomeBlocked, Event: &event}, nil
	}

	s.sessions.Put(attendance.PendingReason{
		UserID:    req.UserID,
		UserName:  req.UserName,
		Status:    attendance.StatusArrived,
		CreatedAt: nowLocal,
	})

	if err := s.notifier.NotifyLateArrival(ctx, req.UserID, req.UserName); err != nil {
		// The pending request stands either way; the admin ping is
		// best-effort.
		slog.Error("failed to notify admin about late arrival", "user_id", req.UserID, "error", err)
	}

	return attendance.CheckInResult{Outcome: attendance.OutcomeAwaitingReason}, nil
}

// SubmitReason implements attendance.Service.
func (s *CheckInService) SubmitReason(ctx context.Context, userID int64, reason string) (*attendance.Event, error) {
	pending, ok := s.sessions.Get(userID)
	if !ok {
		return nil, nil
	}

	nowLocal := s.now()
	event, err := s.append(ctx, pending.UserID, pending.UserName, pending.Status, attendance.LocationOffice, reason, nowLocal)
	if err != nil {
		// Keep the pending request so a retry can still finalize it.
		return nil, err
	}

	s.sessions.Take(userID)
	return &event, nil
}

// CheckOut implements attendance.Service. A departure is recorded no matter
// what session state the user is in; an active pending reason request is
// left untouched.
func (s *CheckInService) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.Event, error) {
	return s.append(ctx, req.UserID, req.UserName, attendance.StatusDeparted, attendance.LocationUnknown, "", s.now())
}

// History implements attendance.Service.
func (s *CheckInService) History(ctx context.Context, userID int64, date *time.Time) ([]attendance.Event, error) {
	filter := attendance.EventFilter{UserID: &userID}
	if date != nil {
		d := workday.DateOf(*date)
		filter.DateExact = &d
	} else {
		filter.Limit = 5
	}

	events, err := s.store.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance history: %w", err)
	}
	return events, nil
}

// SweepPending drops pending reason requests older than maxAge. Wired as a
// cron job when a TTL is configured; the default keeps them forever.
func (s *CheckInService) SweepPending(maxAge time.Duration) int {
	removed := s.sessions.Sweep(s.now(), maxAge)
	if removed > 0 {
		slog.Info("swept stale pending reason requests", "removed", removed)
	}
	return removed
}

func (s *CheckInService) append(ctx context.Context, userID int64, userName string, status attendance.Status, location, reason string, nowLocal time.Time) (attendance.Event, error) {
	event := attendance.Event{
		UserID:   userID,
		UserName: userName,
		Date:     workday.DateOf(nowLocal),
		Time:     nowLocal.Format("15:04"),
		Status:   status,
		Location: location,
		Reason:   reason,
	}

	persisted, err := s.store.Append(ctx, event)
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to persist attendance event: %w", err)
	}
	return persisted, nil
}

// lateCountThisMonth counts the user's ARRIVED events with a non-empty
// reason in asOf's calendar month. An event appended in the same turn may
// not be visible yet on every backend; that slack is accepted.
func (s *CheckInService) lateCountThisMonth(ctx context.Context, userID int64, asOf time.Time) (int, error) {
	status := attendance.StatusArrived
	monthStart := workday.MonthStart(asOf)

	events, err := s.store.Query(ctx, attendance.EventFilter{
		UserID:         &userID,
		Status:         &status,
		ReasonNonEmpty: true,
		DateOnOrAfter:  &monthStart,
	})
	if err != nil {
		return 0, err
	}
	return len(events), nil
}
