package domain

import (
	"time"

	"github.com/m04kA/FitGrid-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusAttended  BookingStatus = "attended"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a reserved training slot in a studio
type Booking struct {
	ID              int64
	UserID          int64
	StudioID        int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Программа тренировки (опционально, например "HIIT", "Yoga Flow")
	Program *string

	// Разовое посещение, оплаченное через внешний платёжный шлюз
	DropIn bool

	// Референс платежа для дедупликации событий подтверждения (только drop-in)
	PaymentReference *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// End возвращает время окончания бронирования
func (b *Booking) End() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// CountsTowardCapacity возвращает true, если бронирование занимает место в слоте
// Отметка посещения не освобождает место: занятие продолжается,
// поэтому attended учитывается наравне с confirmed
func (b *Booking) CountsTowardCapacity() bool {
	return b.Status == StatusConfirmed || b.Status == StatusAttended
}

// CountsTowardDayLimit возвращает true, если бронирование учитывается
// в правиле "одна тренировка в день"
func (b *Booking) CountsTowardDayLimit() bool {
	return b.Status == StatusConfirmed || b.Status == StatusAttended
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsAttended returns true if the user has checked in for this booking
func (b *Booking) IsAttended() bool {
	return b.Status == StatusAttended
}

// StudioBookingsFilter фильтр для получения бронирований студии
type StudioBookingsFilter struct {
	StudioID         int64          // Обязательный параметр
	Date             *time.Time     // Фильтр по дате (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отменённые бронирования
}
