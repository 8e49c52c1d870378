package response

import (
	"errors"
	"net/http"

	"github.com/asadbek002/checkin-bot/internal/domain/attendance"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, attendance.ErrEventNotFound):
		NotFound(w, "Attendance event not found")
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
