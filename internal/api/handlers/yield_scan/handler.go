package yield_scan

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/FitGrid-BookingService/internal/api/handlers"
	scanYield "github.com/m04kA/FitGrid-BookingService/internal/usecase/scan_yield"
)

const (
	msgInvalidStudioID = "некорректный ID студии"
	msgInvalidBody     = "некорректное тело запроса"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStudioNotFound  = "студия не найдена"
)

type Handler struct {
	useCase ScanYieldUseCase
	logger  Logger
}

func NewHandler(useCase ScanYieldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/studios/{studioId}/yield-scan
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /studios/{id}/yield-scan - Invalid studio ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	// Тело опционально: без даты сканируется завтрашний день
	var req YieldScanRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /studios/{id}/yield-scan - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBody)
			return
		}
	}

	useCaseReq, err := req.ToUseCaseRequest(studioID)
	if err != nil {
		h.logger.Warn("POST /studios/{id}/yield-scan - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, scanYield.ErrStudioNotFound):
			h.logger.Warn("POST /studios/{id}/yield-scan - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, scanYield.ErrInvalidInput):
			h.logger.Warn("POST /studios/{id}/yield-scan - Invalid input: studio_id=%d, error=%v", studioID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("POST /studios/{id}/yield-scan - Scan failed: studio_id=%d, error=%v", studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /studios/{id}/yield-scan - Scan completed: scan_id=%s, studio_id=%d, targeted=%d",
		result.ScanID, studioID, result.Targeted)
	handlers.RespondJSON(w, http.StatusOK, response)
}
