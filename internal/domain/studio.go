package domain

import (
	"time"

	"github.com/m04kA/FitGrid-BookingService/pkg/types"
)

// Studio represents a fitness studio with fixed per-slot capacity
type Studio struct {
	ID   int64
	Name string

	// Максимум одновременных подтверждённых бронирований на любой момент времени
	CapacityPerSlot int

	OpenTime  types.TimeString
	CloseTime types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SlotsPerDay возвращает количество полных слотов в сетке расписания
// Неполный хвост перед закрытием отбрасывается
func (s *Studio) SlotsPerDay() int {
	open, err := s.OpenTime.Minutes()
	if err != nil {
		return 0
	}
	close, err := s.CloseTime.Minutes()
	if err != nil {
		return 0
	}
	if close <= open {
		return 0
	}
	return (close - open) / SlotDurationMinutes
}

// ContainsSlot проверяет, что start является началом валидного слота сетки:
// выровнен по шагу сетки и слот целиком помещается в часы работы
func (s *Studio) ContainsSlot(start types.TimeString) bool {
	open, err := s.OpenTime.Minutes()
	if err != nil {
		return false
	}
	close, err := s.CloseTime.Minutes()
	if err != nil {
		return false
	}
	startMin, err := start.Minutes()
	if err != nil {
		return false
	}

	if startMin < open || (startMin-open)%SlotDurationMinutes != 0 {
		return false
	}
	return startMin+SlotDurationMinutes <= close
}
