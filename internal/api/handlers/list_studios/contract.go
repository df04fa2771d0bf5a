package list_studios

import (
	"context"

	"github.com/m04kA/FitGrid-BookingService/internal/service/studios/models"
)

// StudioService интерфейс сервиса студий
type StudioService interface {
	List(ctx context.Context) (*models.StudioListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
