package create_booking

import (
	"time"

	"github.com/m04kA/FitGrid-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID пользователя
	StudioID  int64            // ID студии
	Date      time.Time        // Дата занятия (без времени)
	StartTime types.TimeString // Время начала слота (например, "09:20")
	Program   *string          // Название программы занятия (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	UserID          int64            // ID пользователя
	StudioID        int64            // ID студии
	BookingDate     time.Time        // Дата занятия
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования
	Program         *string          // Программа занятия
	CreatedAt       time.Time        // Время создания
	UpdatedAt       time.Time        // Время обновления
}
