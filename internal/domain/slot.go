package domain

import "github.com/m04kA/FitGrid-BookingService/pkg/types"

// Slot вычисляемое представление слота расписания
// Слоты нигде не хранятся: сетка генерируется по запросу, занятость пересчитывается при каждом чтении
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
	BookedCount     int
	AvailableSpots  int
	TotalSpots      int
}

// IsFull returns true if the slot has no available spots
func (s *Slot) IsFull() bool {
	return s.BookedCount >= s.TotalSpots
}

// IsUnderperforming возвращает true для слота, заполненного меньше чем наполовину
// Такие слоты - кандидаты для промо-рассылки (yield management)
func (s *Slot) IsUnderperforming() bool {
	return s.BookedCount < s.TotalSpots/UnderfillDivisor && !s.IsFull()
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *Slot) OccupancyRate() float64 {
	if s.TotalSpots == 0 {
		return 0
	}
	return float64(s.BookedCount) / float64(s.TotalSpots) * 100
}
