package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByUserAndDate(ctx context.Context, userID int64, date time.Time) ([]*domain.Booking, error)
	GetByStudioWithFilter(ctx context.Context, filter domain.StudioBookingsFilter) ([]*domain.Booking, error)
}

// StudioRepository интерфейс репозитория студий
type StudioRepository interface {
	GetByID(ctx context.Context, studioID int64) (*domain.Studio, error)
}

// EntitlementChecker интерфейс проверки права бронирования по тарифу
type EntitlementChecker interface {
	CanBookStudio(ctx context.Context, userID, studioID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
