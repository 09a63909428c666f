package get_unit_blackouts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SSC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SSC-SchedulingService/internal/service/blackouts"
)

const (
	msgInvalidUnitID = "некорректный ID подразделения"
	msgInvalidInput  = "некорректные параметры запроса"
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

// Handle GET /api/v1/units/{unitId}/blackouts?date=2025-10-20
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	unitID, err := strconv.ParseInt(vars["unitId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /units/{id}/blackouts - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	var localDate *string
	if raw := r.URL.Query().Get("date"); raw != "" {
		localDate = &raw
	}

	list, err := h.service.GetByUnit(r.Context(), unitID, localDate)
	if err != nil {
		switch {
		case errors.Is(err, blackouts.ErrInvalidInput):
			h.logger.Warn("GET /units/{id}/blackouts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /units/{id}/blackouts - Failed to get blackouts: unit_id=%d, error=%v", unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
