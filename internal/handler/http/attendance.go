package http

import (
	"net/http"
	"strconv"

	"github.com/asadbek002/checkin-bot/internal/domain/attendance"
	"github.com/asadbek002/checkin-bot/internal/handler/http/response"
	"github.com/asadbek002/checkin-bot/internal/pkg/validator"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	store attendance.RecordStore
}

func NewAttendanceHandler(store attendance.RecordStore) AttendanceHandler {
	return &attendanceHandlerImpl{store: store}
}

type eventResponse struct {
	ID       string `json:"id"`
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Status   string `json:"status"`
	Location string `json:"location"`
	Reason   string `json:"reason,omitempty"`
}

// List implements AttendanceHandler. Recognized query params: user_id,
// status, date (YYYY-MM-DD), limit.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter attendance.EventFilter

	if v := r.URL.Query().Get("user_id"); v != "" {
		userID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(w, "Invalid user_id", nil)
			return
		}
		filter.UserID = &userID
	}

	if v := r.URL.Query().Get("status"); v != "" {
		status := attendance.Status(v)
		if status != attendance.StatusArrived && status != attendance.StatusDeparted {
			response.BadRequest(w, "Invalid status", nil)
			return
		}
		filter.Status = &status
	}

	if v := r.URL.Query().Get("date"); v != "" {
		date, ok := validator.IsValidDate(v)
		if !ok {
			response.BadRequest(w, "Invalid date, expected YYYY-MM-DD", nil)
			return
		}
		filter.DateExact = &date
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			response.BadRequest(w, "Invalid limit", nil)
			return
		}
		filter.Limit = limit
	}

	events, err := h.store.Query(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]eventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, eventResponse{
			ID:       ev.ID,
			UserID:   ev.UserID,
			UserName: ev.UserName,
			Date:     ev.Date.Format("2006-01-02"),
			Time:     ev.Time,
			Status:   string(ev.Status),
			Location: ev.Location,
			Reason:   ev.Reason,
		})
	}

	response.Success(w, out)
}
