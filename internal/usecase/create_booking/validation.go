package create_booking

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	"github.com/m04kA/FitGrid-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.StudioID <= 0 {
		return fmt.Errorf("%w: studioID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Program != nil && utf8.RuneCountInString(*req.Program) > domain.MaxProgramLength {
		return fmt.Errorf("%w: program must be at most %d characters", ErrInvalidInput, domain.MaxProgramLength)
	}

	return nil
}

// countOverlappingBookings подсчитывает занимающие место бронирования на указанный слот
// Интервалы полуоткрытые: граничащие бронирования пересечением не считаются
func countOverlappingBookings(
	startTime types.TimeString,
	slotDuration int,
	bookings []*domain.Booking,
) (int, error) {
	slotEnd, err := startTime.AddMinutes(slotDuration)
	if err != nil {
		return 0, err
	}

	count := 0

	for _, booking := range bookings {
		if !booking.CountsTowardCapacity() {
			continue
		}

		bookingStart := booking.StartTime
		bookingEnd, err := booking.End()
		if err != nil {
			continue
		}

		if bookingStart.IsBefore(slotEnd) && bookingEnd.IsAfter(startTime) {
			count++
		}
	}

	return count, nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
