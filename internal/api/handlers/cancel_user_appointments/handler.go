package cancel_user_appointments

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SSC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SSC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SSC-SchedulingService/internal/service/appointments"
)

const (
	msgInvalidUserID      = "некорректный ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgUserNotFound       = "пользователь не найден"
	msgForbidden          = "доступ запрещен"
)

// CancelAllRequest тело пакетной отмены, причина опциональна
type CancelAllRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelAllResponse итог пакетной отмены
type CancelAllResponse struct {
	CancelledCount int64 `json:"cancelledCount"`
}

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/users/{userId}/appointments/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := uuid.Parse(vars["userId"])
	if err != nil {
		h.logger.Warn("PATCH /users/{id}/appointments/cancel - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /users/{id}/appointments/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CancelAllRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /users/{id}/appointments/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cancelled, err := h.service.CancelAllForUser(r.Context(), userID, actorID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrUserNotFound):
			h.logger.Warn("PATCH /users/{id}/appointments/cancel - User not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("PATCH /users/{id}/appointments/cancel - Access denied: user_id=%s, actor_id=%s", userID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /users/{id}/appointments/cancel - Failed to cancel appointments: user_id=%s, error=%v",
				userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /users/{id}/appointments/cancel - Cancelled %d appointments for user_id=%s", cancelled, userID)
	handlers.RespondJSON(w, http.StatusOK, CancelAllResponse{CancelledCount: cancelled})
}
