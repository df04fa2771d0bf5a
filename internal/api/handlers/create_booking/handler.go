package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/FitGrid-BookingService/internal/api/handlers"
	"github.com/m04kA/FitGrid-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/FitGrid-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgStudioNotFound     = "студия не найдена"
	msgNotEntitled        = "тариф не позволяет бронировать занятия в студии"
	msgAlreadyBooked      = "у вас уже есть занятие в этот день"
	msgSlotFull           = "в выбранном слоте нет свободных мест"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgInvalidDate        = "некорректная дата бронирования"
	msgTransientConflict  = "не удалось забронировать из-за высокой нагрузки, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: user_id=%d, studio_id=%d", userID, req.StudioID)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, createBooking.ErrAlreadyBookedToday):
			h.logger.Warn("POST /bookings - Already booked today: user_id=%d", userID)
			handlers.RespondConflict(w, msgAlreadyBooked)

		case errors.Is(err, createBooking.ErrNotEntitled):
			h.logger.Warn("POST /bookings - Not entitled: user_id=%d, studio_id=%d", userID, req.StudioID)
			handlers.RespondForbidden(w, msgNotEntitled)

		case errors.Is(err, createBooking.ErrStudioNotFound):
			h.logger.Warn("POST /bookings - Studio not found: studio_id=%d", req.StudioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: user_id=%d, studio_id=%d, time=%s",
				userID, req.StudioID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d, date=%s", userID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrTransientConflict):
			h.logger.Warn("POST /bookings - Transient conflict: user_id=%d, studio_id=%d", userID, req.StudioID)
			handlers.RespondServiceUnavailable(w, msgTransientConflict)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, studio_id=%d, error=%v",
				userID, req.StudioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, studio_id=%d",
		result.ID, userID, req.StudioID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
