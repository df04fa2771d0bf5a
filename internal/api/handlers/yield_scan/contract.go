package yield_scan

import (
	"context"

	scanYield "github.com/m04kA/FitGrid-BookingService/internal/usecase/scan_yield"
)

// ScanYieldUseCase интерфейс usecase сканирования недозаполненных слотов
type ScanYieldUseCase interface {
	Execute(ctx context.Context, req *scanYield.Request) (*scanYield.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
