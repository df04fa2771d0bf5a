package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/FitGrid-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/FitGrid-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidStudioID = "некорректный ID студии"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast      = "дата не может быть в прошлом"
	msgStudioNotFound  = "студия не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/studios/{studioId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	studioIDStr := vars["studioId"]
	studioID, err := strconv.ParseInt(studioIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/available-slots - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /studios/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(studioID, dateStr)
	if err != nil {
		h.logger.Warn("GET /studios/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrStudioNotFound):
			h.logger.Warn("GET /studios/{id}/available-slots - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /studios/{id}/available-slots - Date in past: studio_id=%d, date=%s", studioID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /studios/{id}/available-slots - Invalid input: studio_id=%d, error=%v", studioID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /studios/{id}/available-slots - Failed to get slots: studio_id=%d, error=%v",
				studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /studios/{id}/available-slots - Slots retrieved successfully: studio_id=%d, date=%s, slots_count=%d",
		studioID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
