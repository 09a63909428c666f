package update_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SSC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SSC-SchedulingService/internal/api/middleware"
	updateAppointment "github.com/m04kA/SSC-SchedulingService/internal/usecase/update_appointment"
)

const (
	msgInvalidAppointmentID  = "некорректный ID записи"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgNotFound              = "запись не найдена"
	msgUserNotFound          = "пользователь не найден"
	msgForbidden             = "доступ запрещен"
	msgTerminalState         = "завершенную запись нельзя изменить"
	msgOutsideOperatingHours = "запрошенное время вне рабочих часов центра"
	msgPastDate              = "нельзя перенести запись на прошедшую дату"
	msgWeekdayExcluded       = "запись на этот день недели не ведется"
	msgBeyondHorizon         = "запись доступна не дальше пятницы следующей недели"
	msgUnitHasNoStaff        = "в выбранном центре нет свободных сотрудников"
	msgUserAlreadyBooked     = "у пользователя уже есть активная запись на этот день"
	msgSlotFull              = "выбранный слот заполнен"
	msgSlotBlocked           = "выбранное время перекрыто блокировкой центра"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID, actorID))
	if err != nil {
		switch {
		case errors.Is(err, updateAppointment.ErrInvalidRequest):
			h.logger.Warn("PATCH /appointments/{id} - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateAppointment.ErrUserNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Actor not found: actor_id=%s", actorID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, updateAppointment.ErrPermissionDenied):
			h.logger.Warn("PATCH /appointments/{id} - Permission denied: appointment_id=%d, actor_id=%s", appointmentID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateAppointment.ErrTerminalState):
			h.logger.Warn("PATCH /appointments/{id} - Terminal state: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgTerminalState)

		case errors.Is(err, updateAppointment.ErrOutsideOperatingHours):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgOutsideOperatingHours)

		case errors.Is(err, updateAppointment.ErrPastDate):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgPastDate)

		case errors.Is(err, updateAppointment.ErrWeekdayExcluded):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgWeekdayExcluded)

		case errors.Is(err, updateAppointment.ErrBeyondHorizon):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgBeyondHorizon)

		case errors.Is(err, updateAppointment.ErrUnitHasNoStaff):
			handlers.RespondConflict(w, msgUnitHasNoStaff)

		case errors.Is(err, updateAppointment.ErrUserAlreadyBooked):
			handlers.RespondConflict(w, msgUserAlreadyBooked)

		case errors.Is(err, updateAppointment.ErrSlotFull):
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, updateAppointment.ErrSlotBlocked):
			handlers.RespondConflict(w, msgSlotBlocked)

		default:
			h.logger.Error("PATCH /appointments/{id} - Failed to update appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id} - Appointment updated: appointment_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
