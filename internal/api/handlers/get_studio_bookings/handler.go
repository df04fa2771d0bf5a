package get_studio_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/FitGrid-BookingService/internal/api/handlers"
	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	"github.com/m04kA/FitGrid-BookingService/internal/service/bookings"
	"github.com/m04kA/FitGrid-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidStudioID = "некорректный ID студии"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter   = "некорректные параметры фильтрации"
	msgStudioNotFound  = "студия не найдена"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/studios/{studioId}/bookings
// Query params: date (опционально, YYYY-MM-DD), status (опционально), includeCancelled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	studioIDStr := vars["studioId"]

	studioID, err := strconv.ParseInt(studioIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/bookings - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	serviceReq := &models.GetStudioBookingsRequest{StudioID: studioID}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /studios/{id}/bookings - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		serviceReq.Date = &date
	}

	if status := r.URL.Query().Get("status"); status != "" {
		serviceReq.Status = &status
	}

	serviceReq.IncludeCancelled = r.URL.Query().Get("includeCancelled") == "true"

	result, err := h.service.GetStudioBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrStudioNotFound):
			h.logger.Warn("GET /studios/{id}/bookings - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /studios/{id}/bookings - Invalid filter: studio_id=%d, error=%v", studioID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /studios/{id}/bookings - Failed to get bookings: studio_id=%d, error=%v",
				studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /studios/{id}/bookings - Bookings retrieved successfully: studio_id=%d, count=%d",
		studioID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
