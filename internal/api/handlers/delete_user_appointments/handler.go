package delete_user_appointments

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SSC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SSC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SSC-SchedulingService/internal/service/appointments"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "отсутствует ID пользователя"
	msgUserNotFound  = "пользователь не найден"
	msgForbidden     = "доступ запрещен"
)

// DeleteAllResponse итог пакетного удаления
type DeleteAllResponse struct {
	DeletedCount int64 `json:"deletedCount"`
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

// Handle DELETE /api/v1/users/{userId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := uuid.Parse(vars["userId"])
	if err != nil {
		h.logger.Warn("DELETE /users/{id}/appointments - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /users/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	deleted, err := h.service.DeleteAllForUser(r.Context(), userID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrUserNotFound):
			h.logger.Warn("DELETE /users/{id}/appointments - User not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("DELETE /users/{id}/appointments - Access denied: user_id=%s, actor_id=%s", userID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /users/{id}/appointments - Failed to delete appointments: user_id=%s, error=%v",
				userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /users/{id}/appointments - Deleted %d appointments for user_id=%s", deleted, userID)
	handlers.RespondJSON(w, http.StatusOK, DeleteAllResponse{DeletedCount: deleted})
}
