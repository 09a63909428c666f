package get_blackout

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SSC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SSC-SchedulingService/internal/service/blackouts"
)

const (
	msgInvalidBlackoutID = "некорректный ID блокировки"
	msgNotFound          = "блокировка не найдена"
)

type Handler struct {
	service BlackoutService
	logger  Logger
}

func NewHandler(service BlackoutService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/blackouts/{blackoutId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	blackoutID, err := strconv.ParseInt(vars["blackoutId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /blackouts/{id} - Invalid blackout ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlackoutID)
		return
	}

	window, err := h.service.GetByID(r.Context(), blackoutID)
	if err != nil {
		switch {
		case errors.Is(err, blackouts.ErrBlackoutNotFound):
			h.logger.Warn("GET /blackouts/{id} - Blackout not found: blackout_id=%d", blackoutID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /blackouts/{id} - Failed to get blackout: blackout_id=%d, error=%v", blackoutID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, window)
}
