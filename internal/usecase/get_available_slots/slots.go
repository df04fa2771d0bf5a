package get_available_slots

import (
	"time"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	"github.com/m04kA/FitGrid-BookingService/pkg/types"
)

// generateSlotGrid генерирует сетку слотов студии на день
// Слоты идут с фиксированным шагом от времени открытия. Последний неполный
// слот, не помещающийся до закрытия, в сетку не попадает
func generateSlotGrid(studio *domain.Studio) ([]types.TimeString, error) {
	grid := make([]types.TimeString, 0, studio.SlotsPerDay())
	current := studio.OpenTime

	for current.IsBefore(studio.CloseTime) {
		slotEnd, err := current.AddMinutes(domain.SlotDurationMinutes)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(studio.CloseTime) {
			break
		}

		grid = append(grid, current)

		current = slotEnd
	}

	return grid, nil
}

// calculateAvailability вычисляет занятость каждого слота сетки
func calculateAvailability(
	grid []types.TimeString,
	bookings []*domain.Booking,
	capacityPerSlot int,
) []domain.Slot {
	result := make([]domain.Slot, len(grid))

	for i, slotStart := range grid {
		booked := countOverlappingBookings(slotStart, domain.SlotDurationMinutes, bookings)

		available := capacityPerSlot - booked
		if available < 0 {
			available = 0
		}

		result[i] = domain.Slot{
			StartTime:       slotStart,
			DurationMinutes: domain.SlotDurationMinutes,
			BookedCount:     booked,
			AvailableSpots:  available,
			TotalSpots:      capacityPerSlot,
		}
	}

	return result
}

// countOverlappingBookings подсчитывает занимающие место бронирования, пересекающиеся со слотом
// Интервалы полуоткрытые: бронирование, заканчивающееся ровно в начале слота
// (или начинающееся ровно в его конце), пересечением НЕ считается
//
// Примеры:
// - Слот 09:20-09:40, бронирование 09:05-09:25 → ЕСТЬ пересечение (09:20-09:25)
// - Слот 09:20-09:40, бронирование 09:00-09:20 → НЕТ пересечения (граничат)
// - Слот 09:20-09:40, бронирование 09:40-10:00 → НЕТ пересечения (граничат)
func countOverlappingBookings(slotStart types.TimeString, slotDuration int, bookings []*domain.Booking) int {
	slotEnd, err := slotStart.AddMinutes(slotDuration)
	if err != nil {
		return 0
	}

	count := 0

	for _, booking := range bookings {
		// Только отмены освобождают место в слоте
		if !booking.CountsTowardCapacity() {
			continue
		}

		bookingStart := booking.StartTime
		bookingEnd, err := booking.End()
		if err != nil {
			continue
		}

		if bookingStart.IsBefore(slotEnd) && bookingEnd.IsAfter(slotStart) {
			count++
		}
	}

	return count
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
