package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	studioRepo "github.com/m04kA/FitGrid-BookingService/internal/infra/storage/studio"
	"github.com/m04kA/FitGrid-BookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	studioRepo   StudioRepository
	entitlement  EntitlementChecker
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	studioRepo StudioRepository,
	entitlement EntitlementChecker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		studioRepo:   studioRepo,
		entitlement:  entitlement,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка лимитов и вместимости слота идет в сериализуемой транзакции,
// чтобы конкурентные запросы не передоверили слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, studio=%d, date=%s, time=%s",
		req.UserID, req.StudioID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что дата не в прошлом
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Проверяем право бронирования по тарифу (вне транзакции:
	// внешний вызов не должен удерживать сериализуемую транзакцию)
	allowed, err := uc.entitlement.CanBookStudio(ctx, req.UserID, req.StudioID)
	if err != nil {
		uc.logger.Error("CreateBooking: entitlement check failed for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: entitlement check failed: %v", ErrInternal, err)
	}
	if !allowed {
		uc.logger.Warn("CreateBooking: user=%d is not entitled to book studio=%d", req.UserID, req.StudioID)
		return nil, ErrNotEntitled
	}

	var result *domain.Booking

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем студию
		studio, err := uc.studioRepo.GetByID(txCtx, req.StudioID)
		if err != nil {
			if errors.Is(err, studioRepo.ErrStudioNotFound) {
				uc.logger.Warn("CreateBooking: studio id=%d not found", req.StudioID)
				return ErrStudioNotFound
			}
			uc.logger.Error("CreateBooking: failed to get studio id=%d: %v", req.StudioID, err)
			return fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
		}

		// 4.2. Проверяем, что время попадает в сетку слотов студии
		if !studio.ContainsSlot(req.StartTime) {
			uc.logger.Warn("CreateBooking: time %s is not a valid slot for studio id=%d", req.StartTime, req.StudioID)
			return ErrInvalidTimeSlot
		}

		// 4.3. Лимит «одно занятие в день»: подтвержденные и посещенные
		// занятия пользователя на эту дату (FOR UPDATE внутри транзакции)
		sameDay, err := uc.bookingRepo.GetByUserAndDate(txCtx, req.UserID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get user bookings: %v", err)
			return fmt.Errorf("%w: failed to get user bookings: %v", ErrInternal, err)
		}
		if len(sameDay) > 0 {
			uc.logger.Warn("CreateBooking: user=%d already has a session on %s",
				req.UserID, req.Date.Format(domain.DateFormat))
			return ErrAlreadyBookedToday
		}

		// 4.4. Получаем бронирования студии на эту дату с блокировкой
		filter := domain.StudioBookingsFilter{
			StudioID: req.StudioID,
			Date:     &req.Date,
		}

		bookings, err := uc.bookingRepo.GetByStudioWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get studio bookings: %v", err)
			return fmt.Errorf("%w: failed to get studio bookings: %v", ErrInternal, err)
		}

		// 4.5. Проверяем вместимость слота
		overlapping, err := countOverlappingBookings(req.StartTime, domain.SlotDurationMinutes, bookings)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to count overlapping bookings: %v", ErrInternal, err)
		}

		if overlapping >= studio.CapacityPerSlot {
			uc.logger.Warn("CreateBooking: slot %s is full, %d/%d spots taken",
				req.StartTime, overlapping, studio.CapacityPerSlot)
			return ErrSlotFull
		}

		uc.logger.Info("CreateBooking: slot %s available, %d/%d spots taken",
			req.StartTime, overlapping, studio.CapacityPerSlot)

		// 4.6. Создаем бронирование
		booking := &domain.Booking{
			UserID:          req.UserID,
			StudioID:        req.StudioID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: domain.SlotDurationMinutes,
			Status:          domain.StatusConfirmed,
			Program:         req.Program,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Конкурентные транзакции исчерпали повторы: клиенту имеет смысл повторить запрос
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: serialization retries exhausted for user=%d, studio=%d", req.UserID, req.StudioID)
			return nil, fmt.Errorf("%w: %v", ErrTransientConflict, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		StudioID:        result.StudioID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		Program:         result.Program,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
