package list_studios

import (
	"net/http"

	"github.com/m04kA/FitGrid-BookingService/internal/api/handlers"
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

// Handle GET /api/v1/studios
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /studios - Failed to list studios: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /studios - Studios listed successfully: count=%d", len(result.Studios))
	handlers.RespondJSON(w, http.StatusOK, result)
}
