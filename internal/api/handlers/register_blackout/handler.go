package register_blackout

import (
	"errors"
	"net/http"

	"github.com/m04kA/SSC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SSC-SchedulingService/internal/api/middleware"
	registerBlackout "github.com/m04kA/SSC-SchedulingService/internal/usecase/register_blackout"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgUserNotFound       = "пользователь не найден"
	msgForbidden          = "регистрировать блокировки может только супер-администратор"
)

type Handler struct {
	useCase RegisterBlackoutUseCase
	logger  Logger
}

func NewHandler(useCase RegisterBlackoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/blackouts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /blackouts - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RegisterBlackoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blackouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(creatorID))
	if err != nil {
		switch {
		case errors.Is(err, registerBlackout.ErrInvalidRequest):
			h.logger.Warn("POST /blackouts - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, registerBlackout.ErrUserNotFound):
			h.logger.Warn("POST /blackouts - Creator not found: creator_id=%s", creatorID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, registerBlackout.ErrPermissionDenied):
			h.logger.Warn("POST /blackouts - Permission denied: creator_id=%s", creatorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /blackouts - Failed to register blackouts: creator_id=%s, error=%v", creatorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /blackouts - Registered %d blackout windows by creator_id=%s", len(result.Results), creatorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
