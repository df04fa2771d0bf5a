package payment

import (
	"context"

	"github.com/m04kA/FitGrid-BookingService/internal/usecase/confirm_payment"
)

// PaymentConfirmer интерфейс use case обработки подтверждённого платежа
type PaymentConfirmer interface {
	Execute(ctx context.Context, req *confirm_payment.Request) (*confirm_payment.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
