package create_studio

import (
	"errors"
	"net/http"

	"github.com/m04kA/FitGrid-BookingService/internal/api/handlers"
	"github.com/m04kA/FitGrid-BookingService/internal/service/studios"
	"github.com/m04kA/FitGrid-BookingService/internal/service/studios/models"
)

const (
	msgInvalidBody  = "некорректное тело запроса"
	msgInvalidInput = "некорректные данные студии"
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

// Handle POST /api/v1/studios
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStudioRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /studios - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, studios.ErrInvalidInput):
			h.logger.Warn("POST /studios - Invalid input: name=%q, error=%v", req.Name, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /studios - Failed to create studio: name=%q, error=%v", req.Name, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /studios - Studio created successfully: studio_id=%d, name=%q", result.ID, result.Name)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
