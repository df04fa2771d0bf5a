package scan_yield

import (
	"context"

	"github.com/m04kA/FitGrid-BookingService/internal/integrations/planservice"
	"github.com/m04kA/FitGrid-BookingService/internal/usecase/get_available_slots"
)

// AvailabilityProvider интерфейс источника сетки слотов с занятостью
type AvailabilityProvider interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// PlanServiceClient интерфейс клиента PlanService
type PlanServiceClient interface {
	ListDigitalOnlyMembers(ctx context.Context, studioID int64) ([]planservice.Member, error)
}

// PromoPublisher интерфейс публикации промо-предложений в брокер
type PromoPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, payload interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
