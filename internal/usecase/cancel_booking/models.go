package cancel_booking

import (
	"time"

	"github.com/m04kA/FitGrid-BookingService/pkg/types"
)

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID int64   // ID бронирования
	UserID    int64   // ID пользователя, выполняющего отмену
	Reason    *string // Причина отмены (опционально)
}

// Response модель ответа с отменённым бронированием
type Response struct {
	ID          int64            // ID бронирования
	UserID      int64            // ID пользователя
	StudioID    int64            // ID студии
	BookingDate time.Time        // Дата занятия
	StartTime   types.TimeString // Время начала
	Status      string           // Новый статус (cancelled)
	Reason      *string          // Причина отмены
	CancelledAt *time.Time       // Время отмены
}
