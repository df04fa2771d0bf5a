package get_studio

import (
	"context"

	"github.com/m04kA/FitGrid-BookingService/internal/service/studios/models"
)

// StudioService интерфейс сервиса студий
type StudioService interface {
	GetByID(ctx context.Context, studioID int64) (*models.StudioResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
