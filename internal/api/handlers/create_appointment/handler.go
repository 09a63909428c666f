package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SSC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SSC-SchedulingService/internal/api/middleware"
	createAppointment "github.com/m04kA/SSC-SchedulingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidUserID         = "некорректный идентификатор пользователя"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgUserNotFound          = "пользователь не найден"
	msgOutsideCreationWindow = "создание записей сейчас недоступно, попробуйте позже"
	msgOutsideOperatingHours = "запрошенное время вне рабочих часов центра"
	msgPastDate              = "нельзя записаться на прошедшую дату"
	msgWeekdayExcluded       = "запись на этот день недели не ведется"
	msgBeyondHorizon         = "запись доступна не дальше пятницы следующей недели"
	msgUnitHasNoStaff        = "в выбранном центре нет свободных сотрудников"
	msgUserAlreadyBooked     = "у вас уже есть активная запись на этот день"
	msgSlotFull              = "выбранный слот заполнен"
	msgSlotBlocked           = "выбранное время перекрыто блокировкой центра"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(creatorID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse user id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidRequest):
			h.logger.Warn("POST /appointments - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createAppointment.ErrUserNotFound):
			h.logger.Warn("POST /appointments - User not found: user_id=%s", useCaseReq.UserID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createAppointment.ErrOutsideCreationWindow):
			h.logger.Warn("POST /appointments - Outside creation window: user_id=%s", useCaseReq.UserID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgOutsideCreationWindow)

		case errors.Is(err, createAppointment.ErrOutsideOperatingHours):
			h.logger.Warn("POST /appointments - Outside operating hours: user_id=%s", useCaseReq.UserID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgOutsideOperatingHours)

		case errors.Is(err, createAppointment.ErrPastDate):
			h.logger.Warn("POST /appointments - Past date: user_id=%s", useCaseReq.UserID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgPastDate)

		case errors.Is(err, createAppointment.ErrWeekdayExcluded):
			h.logger.Warn("POST /appointments - Weekday excluded: user_id=%s", useCaseReq.UserID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgWeekdayExcluded)

		case errors.Is(err, createAppointment.ErrBeyondHorizon):
			h.logger.Warn("POST /appointments - Beyond horizon: user_id=%s", useCaseReq.UserID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgBeyondHorizon)

		case errors.Is(err, createAppointment.ErrUnitHasNoStaff):
			h.logger.Warn("POST /appointments - Unit has no staff: unit_id=%d", useCaseReq.UnitID)
			handlers.RespondConflict(w, msgUnitHasNoStaff)

		case errors.Is(err, createAppointment.ErrUserAlreadyBooked):
			h.logger.Warn("POST /appointments - User already booked: user_id=%s", useCaseReq.UserID)
			handlers.RespondConflict(w, msgUserAlreadyBooked)

		case errors.Is(err, createAppointment.ErrSlotFull):
			h.logger.Warn("POST /appointments - Slot full: unit_id=%d", useCaseReq.UnitID)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, createAppointment.ErrSlotBlocked):
			h.logger.Warn("POST /appointments - Slot blocked: unit_id=%d", useCaseReq.UnitID)
			handlers.RespondConflict(w, msgSlotBlocked)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: user_id=%s, unit_id=%d, error=%v",
				useCaseReq.UserID, useCaseReq.UnitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, user_id=%s, unit_id=%d",
		result.ID, result.UserID, result.UnitID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
