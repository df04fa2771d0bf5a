package get_studio

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/FitGrid-BookingService/internal/api/handlers"
	"github.com/m04kA/FitGrid-BookingService/internal/service/studios"
)

const (
	msgInvalidStudioID = "некорректный ID студии"
	msgStudioNotFound  = "студия не найдена"
)

type Handler struct {
	service StudioService
	logger  Logger
}

func NewHandler(service StudioService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/studios/{studioId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{id} - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	result, err := h.service.GetByID(r.Context(), studioID)
	if err != nil {
		switch {
		case errors.Is(err, studios.ErrStudioNotFound):
			h.logger.Warn("GET /studios/{id} - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		default:
			h.logger.Error("GET /studios/{id} - Failed to get studio: studio_id=%d, error=%v", studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /studios/{id} - Studio retrieved successfully: studio_id=%d", studioID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
