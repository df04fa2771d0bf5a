package studios

import (
	"context"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
)

// StudioRepository интерфейс репозитория студий
type StudioRepository interface {
	Create(ctx context.Context, studio *domain.Studio) (*domain.Studio, error)
	GetByID(ctx context.Context, studioID int64) (*domain.Studio, error)
	List(ctx context.Context) ([]*domain.Studio, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
