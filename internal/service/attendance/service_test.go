package attendance

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asadbek002/checkin-bot/internal/domain/attendance"
	"github.com/asadbek002/checkin-bot/internal/pkg/geo"
	"github.com/asadbek002/checkin-bot/internal/pkg/workday"
)

const (
	officeLat = 41.0057953
	officeLon = 71.6804896
)

// fakeStore is an in-memory RecordStore with failure injection.
type fakeStore struct {
	events    []attendance.Event
	appendErr error
	queryErr  error
}

func (f *fakeStore) Append(_ context.Context, event attendance.Event) (attendance.Event, error) {
	if f.appendErr != nil {
		return attendance.Event{}, f.appendErr
	}
	event.ID = fmt.Sprintf("ev-%d", len(f.events)+1)
	event.CreatedAt = time.Now()
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeStore) Query(_ context.Context, filter attendance.EventFilter) ([]attendance.Event, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	matched := make([]attendance.Event, 0)
	// newest first
	for i := len(f.events) - 1; i >= 0; i-- {
		ev := f.events[i]
		if filter.UserID != nil && ev.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && ev.Status != *filter.Status {
			continue
		}
		if filter.ReasonNonEmpty && ev.Reason == "" {
			continue
		}
		if filter.DateOnOrAfter != nil && ev.Date.Before(*filter.DateOnOrAfter) {
			continue
		}
		if filter.DateExact != nil && !ev.Date.Equal(*filter.DateExact) {
			continue
		}
		matched = append(matched, ev)
		if filter.Limit > 0 && len(matched) == filter.Limit {
			break
		}
	}
	return matched, nil
}

type fakeNotifier struct {
	calls []int64
	err   error
}

func (f *fakeNotifier) NotifyLateArrival(_ context.Context, userID int64, _ string) error {
	f.calls = append(f.calls, userID)
	return f.err
}

func newTestService(store *fakeStore, notifier *fakeNotifier, at time.Time) *CheckInService {
	fence := geo.Geofence{Lat: officeLat, Lon: officeLon, RadiusMeters: 100}
	clock := workday.NewClock(5, 9, 0)
	svc := NewCheckInService(store, notifier, fence, clock, 3)
	svc.now = func() time.Time { return at }
	return svc
}

func at(hour, minute int) time.Time {
	return time.Date(2025, time.August, 29, hour, minute, 0, 0, time.UTC)
}

func checkInReq() attendance.CheckInRequest {
	return attendance.CheckInRequest{
		UserID:    101,
		UserName:  "Aziz",
		Latitude:  officeLat,
		Longitude: officeLon,
	}
}

// ===== CHECK-IN =====

func TestCheckIn_OnTime(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	svc := newTestService(store, notifier, at(8, 30))

	result, err := svc.CheckIn(context.Background(), checkInReq())

	require.NoError(t, err)
	assert.Equal(t, attendance.OutcomeOnTime, result.Outcome)
	require.NotNil(t, result.Event)
	require.Len(t, store.events, 1)
	assert.Equal(t, attendance.StatusArrived, store.events[0].Status)
	assert.Equal(t, attendance.LocationOffice, store.events[0].Location)
	assert.Empty(t, store.events[0].Reason)
	assert.Equal(t, "08:30", store.events[0].Time)
	assert.Empty(t, notifier.calls)
}

func TestCheckIn_ExactlyAtCutoff_OnTime(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	svc := newTestService(store, &fakeNotifier{}, at(9, 0))

	result, err := svc.CheckIn(context.Background(), checkInReq())

	require.NoError(t, err)
	assert.Equal(t, attendance.OutcomeOnTime, result.Outcome)
}

func TestCheckIn_OutsideGeofence(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	svc := newTestService(store, &fakeNotifier{}, at(8, 30))

	req := checkInReq()
	req.Latitude = officeLat + 0.01 // ~1.1 km away

	_, err := svc.CheckIn(context.Background(), req)

	assert.ErrorIs(t, err, attendance.ErrOutsideGeofence)
	assert.Empty(t, store.events)
}

func TestCheckIn_LateWithinQuota_AwaitsReason(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	svc := newTestService(store, notifier, at(9, 5))

	result, err := svc.CheckIn(context.Background(), checkInReq())

	require.NoError(t, err)
	assert.Equal(t, attendance.OutcomeAwaitingReason, result.Outcome)
	assert.Nil(t, result.Event)
	// Nothing persisted until the reason arrives.
	assert.Empty(t, store.events)
	assert.Equal(t, []int64{101}, notifier.calls)
}

func TestCheckIn_LateQuotaExhausted_Blocked(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	for i := 0; i < 3; i++ {
		store.events = append(store.events, attendance.Event{
			UserID: 101,
			Status: attendance.StatusArrived,
			Reason: "traffic",
			Date:   time.Date(2025, time.August, 10+i, 0, 0, 0, 0, time.UTC),
		})
	}
	svc := newTestService(store, notifier, at(9, 5))

	result, err := svc.CheckIn(context.Background(), checkInReq())

	require.NoError(t, err)
	assert.Equal(t, attendance.OutcomeBlocked, result.Outcome)
	require.NotNil(t, result.Event)
	assert.Equal(t, attendance.BlockedReason, result.Event.Reason)
	require.Len(t, store.events, 4)
	// No reason solicited, no admin ping.
	assert.Empty(t, notifier.calls)
	_, pending := svc.sessions.Get(101)
	assert.False(t, pending)
}

func TestCheckIn_LateCountIgnoresOtherMonths(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	for i := 0; i < 3; i++ {
		store.events = append(store.events, attendance.Event{
			UserID: 101,
			Status: attendance.StatusArrived,
			Reason: "traffic",
			Date:   time.Date(2025, time.July, 10+i, 0, 0, 0, 0, time.UTC),
		})
	}
	svc := newTestService(store, &fakeNotifier{}, at(9, 5))

	result, err := svc.CheckIn(context.Background(), checkInReq())

	require.NoError(t, err)
	assert.Equal(t, attendance.OutcomeAwaitingReason, result.Outcome)
}

func TestCheckIn_LateCountIgnoresOtherUsersAndDepartures(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	store.events = append(store.events,
		attendance.Event{UserID: 202, Status: attendance.StatusArrived, Reason: "traffic", Date: at(0, 0)},
		attendance.Event{UserID: 101, Status: attendance.StatusDeparted, Reason: "x", Date: at(0, 0)},
		attendance.Event{UserID: 101, Status: attendance.StatusArrived, Reason: "", Date: at(0, 0)},
	)
	svc := newTestService(store, &fakeNotifier{}, at(9, 5))

	result, err := svc.CheckIn(context.Background(), checkInReq())

	require.NoError(t, err)
	assert.Equal(t, attendance.OutcomeAwaitingReason, result.Outcome)
}

func TestCheckIn_RepeatedAttemptsEachPersist(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	svc := newTestService(store, &fakeNotifier{}, at(8, 30))

	_, err := svc.CheckIn(context.Background(), checkInReq())
	require.NoError(t, err)
	_, err = svc.CheckIn(context.Background(), checkInReq())
	require.NoError(t, err)

	// No deduplication.
	assert.Len(t, store.events, 2)
}

func TestCheckIn_AppendFailurePropagates(t *testing.T) {
	t.Parallel()
	store := &fakeStore{appendErr: errors.New("store down")}
	svc := newTestService(store, &fakeNotifier{}, at(8, 30))

	_, err := svc.CheckIn(context.Background(), checkInReq())

	assert.ErrorContains(t, err, "store down")
}

func TestCheckIn_QuotaQueryFailurePropagates(t *testing.T) {
	t.Parallel()
	store := &fakeStore{queryErr: errors.New("store down")}
	notifier := &fakeNotifier{}
	svc := newTestService(store, notifier, at(9, 5))

	_, err := svc.CheckIn(context.Background(), checkInReq())

	assert.ErrorContains(t, err, "store down")
	assert.Empty(t, store.events)
	assert.Empty(t, notifier.calls)
}

func TestCheckIn_NotifierFailureDoesNotBlockWorkflow(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	notifier := &fakeNotifier{err: errors.New("telegram down")}
	svc := newTestService(store, notifier, at(9, 5))

	result, err := svc.CheckIn(context.Background(), checkInReq())

	require.NoError(t, err)
	assert.Equal(t, attendance.OutcomeAwaitingReason, result.Outcome)
	_, pending := svc.sessions.Get(101)
	assert.True(t, pending)
}

// ===== REASON =====

func TestSubmitReason_FinalizesPendingArrival(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	svc := newTestService(store, &fakeNotifier{}, at(9, 5))

	_, err := svc.CheckIn(context.Background(), checkInReq())
	require.NoError(t, err)

	event, err := svc.SubmitReason(context.Background(), 101, "traffic")

	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, "traffic", event.Reason)
	assert.Equal(t, attendance.StatusArrived, event.Status)
	assert.Equal(t, "Aziz", event.UserName)
	require.Len(t, store.events, 1)

	// Session is back to idle.
	event, err = svc.SubmitReason(context.Background(), 101, "again")
	require.NoError(t, err)
	assert.Nil(t, event)
	assert.Len(t, store.events, 1)
}

func TestSubmitReason_NoPending_SilentNoOp(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	svc := newTestService(store, &fakeNotifier{}, at(9, 5))

	event, err := svc.SubmitReason(context.Background(), 101, "hello")

	assert.NoError(t, err)
	assert.Nil(t, event)
	assert.Empty(t, store.events)
}

func TestSubmitReason_AppendFailureKeepsPending(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	svc := newTestService(store, &fakeNotifier{}, at(9, 5))

	_, err := svc.CheckIn(context.Background(), checkInReq())
	require.NoError(t, err)

	store.appendErr = errors.New("store down")
	_, err = svc.SubmitReason(context.Background(), 101, "traffic")
	assert.ErrorContains(t, err, "store down")

	// A retry after the store recovers still finalizes the arrival.
	store.appendErr = nil
	event, err := svc.SubmitReason(context.Background(), 101, "traffic")
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, "traffic", event.Reason)
}

// ===== CHECK-OUT =====

func TestCheckOut_PersistsDeparture(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	svc := newTestService(store, &fakeNotifier{}, at(18, 0))

	event, err := svc.CheckOut(context.Background(), attendance.CheckOutRequest{UserID: 101, UserName: "Aziz"})

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusDeparted, event.Status)
	assert.Equal(t, attendance.LocationUnknown, event.Location)
	assert.Empty(t, event.Reason)
	assert.Len(t, store.events, 1)
}

func TestCheckOut_LeavesPendingReasonIntact(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	svc := newTestService(store, &fakeNotifier{}, at(9, 5))

	_, err := svc.CheckIn(context.Background(), checkInReq())
	require.NoError(t, err)

	_, err = svc.CheckOut(context.Background(), attendance.CheckOutRequest{UserID: 101, UserName: "Aziz"})
	require.NoError(t, err)

	// The departure is recorded and the reason can still arrive.
	event, err := svc.SubmitReason(context.Background(), 101, "traffic")
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Len(t, store.events, 2)
}

// ===== HISTORY =====

func TestHistory_RoundTrip(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	svc := newTestService(store, &fakeNotifier{}, at(8, 45))

	_, err := svc.CheckIn(context.Background(), checkInReq())
	require.NoError(t, err)

	events, err := svc.History(context.Background(), 101, nil)
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Equal(t, int64(101), events[0].UserID)
	assert.Equal(t, "Aziz", events[0].UserName)
	assert.Equal(t, at(0, 0), events[0].Date)
	assert.Equal(t, "08:45", events[0].Time)
	assert.Equal(t, attendance.StatusArrived, events[0].Status)
	assert.Equal(t, attendance.LocationOffice, events[0].Location)
	assert.Empty(t, events[0].Reason)
}

func TestHistory_NoDateCapsAtFive(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	svc := newTestService(store, &fakeNotifier{}, at(18, 0))

	for i := 0; i < 7; i++ {
		_, err := svc.CheckOut(context.Background(), attendance.CheckOutRequest{UserID: 101, UserName: "Aziz"})
		require.NoError(t, err)
	}

	events, err := svc.History(context.Background(), 101, nil)
	require.NoError(t, err)
	assert.Len(t, events, 5)
}

func TestHistory_WithDateReturnsAllMatches(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	store.events = append(store.events,
		attendance.Event{UserID: 101, Status: attendance.StatusArrived, Date: at(0, 0)},
		attendance.Event{UserID: 101, Status: attendance.StatusDeparted, Date: at(0, 0)},
		attendance.Event{UserID: 101, Status: attendance.StatusArrived, Date: time.Date(2025, time.August, 28, 0, 0, 0, 0, time.UTC)},
	)
	svc := newTestService(store, &fakeNotifier{}, at(18, 0))

	date := at(13, 30) // any clock time on the target date
	events, err := svc.History(context.Background(), 101, &date)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

// ===== SWEEP =====

func TestSweepPending_RemovesStaleOnly(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	svc := newTestService(store, &fakeNotifier{}, at(9, 5))

	_, err := svc.CheckIn(context.Background(), checkInReq())
	require.NoError(t, err)

	// Move the clock forward past the TTL.
	svc.now = func() time.Time { return at(13, 0) }
	removed := svc.SweepPending(2 * time.Hour)
	assert.Equal(t, 1, removed)

	event, err := svc.SubmitReason(context.Background(), 101, "traffic")
	require.NoError(t, err)
	assert.Nil(t, event)
}
