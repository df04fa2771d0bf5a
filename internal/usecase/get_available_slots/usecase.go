package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	studioRepo "github.com/m04kA/FitGrid-BookingService/internal/infra/storage/studio"
)

// UseCase use case для получения сетки слотов студии с доступностью
type UseCase struct {
	bookingRepo  BookingRepository
	studioRepo   StudioRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	studioRepo StudioRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		studioRepo:   studioRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: studio=%d, date=%s",
		req.StudioID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что дата не в прошлом
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем студию
	studio, err := uc.studioRepo.GetByID(ctx, req.StudioID)
	if err != nil {
		if errors.Is(err, studioRepo.ErrStudioNotFound) {
			uc.logger.Warn("GetAvailableSlots: studio id=%d not found", req.StudioID)
			return nil, ErrStudioNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get studio id=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}

	// 4. Генерируем сетку слотов
	grid, err := generateSlotGrid(studio)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slot grid: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slot grid: %v", ErrInternal, err)
	}

	// 5. Получаем бронирования студии на эту дату
	filter := domain.StudioBookingsFilter{
		StudioID: req.StudioID,
		Date:     &req.Date,
	}

	bookings, err := uc.bookingRepo.GetByStudioWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Вычисляем занятость каждого слота
	slots := calculateAvailability(grid, bookings, studio.CapacityPerSlot)

	uc.logger.Info("GetAvailableSlots: generated %d slots for studio=%d, date=%s",
		len(slots), req.StudioID, req.Date.Format(domain.DateFormat))

	return &Response{
		StudioID: req.StudioID,
		Date:     req.Date,
		Slots:    slots,
	}, nil
}
