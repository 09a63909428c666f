package update_blackout

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SSC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SSC-SchedulingService/internal/api/middleware"
	updateBlackout "github.com/m04kA/SSC-SchedulingService/internal/usecase/update_blackout"
)

const (
	msgInvalidBlackoutID  = "некорректный ID блокировки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "блокировка не найдена"
	msgUserNotFound       = "пользователь не найден"
	msgForbidden          = "изменять блокировки может только супер-администратор"
	msgCancelled          = "снятая блокировка не подлежит изменению"
)

type Handler struct {
	useCase UpdateBlackoutUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBlackoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/blackouts/{blackoutId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	blackoutID, err := strconv.ParseInt(vars["blackoutId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /blackouts/{id} - Invalid blackout ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlackoutID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /blackouts/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateBlackoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /blackouts/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(blackoutID, actorID))
	if err != nil {
		switch {
		case errors.Is(err, updateBlackout.ErrInvalidRequest):
			h.logger.Warn("PATCH /blackouts/{id} - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, updateBlackout.ErrBlackoutNotFound):
			h.logger.Warn("PATCH /blackouts/{id} - Blackout not found: blackout_id=%d", blackoutID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBlackout.ErrUserNotFound):
			h.logger.Warn("PATCH /blackouts/{id} - Actor not found: actor_id=%s", actorID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, updateBlackout.ErrPermissionDenied):
			h.logger.Warn("PATCH /blackouts/{id} - Permission denied: blackout_id=%d, actor_id=%s", blackoutID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateBlackout.ErrBlackoutCancelled):
			h.logger.Warn("PATCH /blackouts/{id} - Blackout already cancelled: blackout_id=%d", blackoutID)
			handlers.RespondConflict(w, msgCancelled)

		default:
			h.logger.Error("PATCH /blackouts/{id} - Failed to update blackout: blackout_id=%d, error=%v", blackoutID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /blackouts/{id} - Blackout updated: blackout_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
