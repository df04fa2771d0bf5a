package confirm_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/FitGrid-BookingService/internal/infra/storage/booking"
	studioRepo "github.com/m04kA/FitGrid-BookingService/internal/infra/storage/studio"
	"github.com/m04kA/FitGrid-BookingService/pkg/ptr"
	"github.com/m04kA/FitGrid-BookingService/pkg/types"
)

// UseCase use case обработки подтверждённого платежа за разовое посещение
// Платёжный шлюз списывает деньги до того, как место в слоте закреплено,
// поэтому вместимость перепроверяется здесь, в сериализуемой транзакции.
// Обработка идемпотентна по референсу платежа: повторная доставка события
// возвращает уже созданное бронирование
type UseCase struct {
	bookingRepo BookingRepository
	studioRepo  StudioRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	studioRepo StudioRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		studioRepo:  studioRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет обработку подтверждённого платежа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: reference=%s, user=%d, studio=%d, date=%s, time=%s",
		req.PaymentReference, req.UserID, req.StudioID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmPayment: validation failed: %v", err)
		return nil, err
	}

	// 1. Дедупликация: событие с этим референсом могло быть уже обработано
	existing, err := uc.bookingRepo.GetByPaymentReference(ctx, req.PaymentReference)
	if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
		uc.logger.Error("ConfirmPayment: failed to check payment reference: %v", err)
		return nil, fmt.Errorf("%w: failed to check payment reference: %v", ErrInternal, err)
	}
	if existing != nil {
		uc.logger.Info("ConfirmPayment: reference=%s already processed, booking id=%d",
			req.PaymentReference, existing.ID)
		return &Response{BookingID: existing.ID, Duplicate: true}, nil
	}

	var result *domain.Booking

	// 2. Создаем drop-in бронирование в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		studio, err := uc.studioRepo.GetByID(txCtx, req.StudioID)
		if err != nil {
			if errors.Is(err, studioRepo.ErrStudioNotFound) {
				uc.logger.Warn("ConfirmPayment: studio id=%d not found", req.StudioID)
				return ErrStudioNotFound
			}
			uc.logger.Error("ConfirmPayment: failed to get studio id=%d: %v", req.StudioID, err)
			return fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
		}

		if !studio.ContainsSlot(req.StartTime) {
			uc.logger.Warn("ConfirmPayment: time %s is not a valid slot for studio id=%d",
				req.StartTime, req.StudioID)
			return ErrInvalidTimeSlot
		}

		// Платёж уже прошёл, но слот мог заполниться пока событие шло через
		// брокер. Перепроверяем вместимость с блокировкой
		filter := domain.StudioBookingsFilter{
			StudioID: req.StudioID,
			Date:     &req.Date,
		}

		bookings, err := uc.bookingRepo.GetByStudioWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("ConfirmPayment: failed to get studio bookings: %v", err)
			return fmt.Errorf("%w: failed to get studio bookings: %v", ErrInternal, err)
		}

		overlapping, err := countOverlappingBookings(req.StartTime, domain.SlotDurationMinutes, bookings)
		if err != nil {
			uc.logger.Error("ConfirmPayment: failed to count overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to count overlapping bookings: %v", ErrInternal, err)
		}

		if overlapping >= studio.CapacityPerSlot {
			uc.logger.Warn("ConfirmPayment: slot %s is full, paid drop-in reference=%s rejected",
				req.StartTime, req.PaymentReference)
			return ErrSlotFull
		}

		// Разовое посещение не расходует лимит "одна тренировка в день":
		// посетитель заплатил за конкретный слот
		booking := &domain.Booking{
			UserID:           req.UserID,
			StudioID:         req.StudioID,
			BookingDate:      req.Date,
			StartTime:        req.StartTime,
			DurationMinutes:  domain.SlotDurationMinutes,
			Status:           domain.StatusConfirmed,
			DropIn:           true,
			PaymentReference: ptr.Ptr(req.PaymentReference),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("ConfirmPayment: failed to create booking: %v", err)
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		// Гонка двух доставок одного события: уникальный индекс по референсу
		// сработал, значит первая доставка уже создала бронирование
		if errors.Is(err, bookingRepo.ErrDuplicatePaymentReference) {
			winner, lookupErr := uc.bookingRepo.GetByPaymentReference(ctx, req.PaymentReference)
			if lookupErr != nil {
				uc.logger.Error("ConfirmPayment: duplicate reference=%s but lookup failed: %v",
					req.PaymentReference, lookupErr)
				return nil, fmt.Errorf("%w: duplicate lookup failed: %v", ErrInternal, lookupErr)
			}
			uc.logger.Info("ConfirmPayment: reference=%s raced with another delivery, booking id=%d",
				req.PaymentReference, winner.ID)
			return &Response{BookingID: winner.ID, Duplicate: true}, nil
		}
		return nil, err
	}

	uc.logger.Info("ConfirmPayment: created drop-in booking id=%d for reference=%s",
		result.ID, req.PaymentReference)

	return &Response{BookingID: result.ID}, nil
}

// validateRequest валидирует событие платежа
func validateRequest(req *Request) error {
	if req.PaymentReference == "" {
		return fmt.Errorf("%w: paymentReference is required", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.StudioID <= 0 {
		return fmt.Errorf("%w: studioID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// countOverlappingBookings подсчитывает занимающие место бронирования на указанный слот
func countOverlappingBookings(
	startTime types.TimeString,
	slotDuration int,
	bookings []*domain.Booking,
) (int, error) {
	slotEnd, err := startTime.AddMinutes(slotDuration)
	if err != nil {
		return 0, err
	}

	count := 0

	for _, booking := range bookings {
		if !booking.CountsTowardCapacity() {
			continue
		}

		bookingStart := booking.StartTime
		bookingEnd, err := booking.End()
		if err != nil {
			continue
		}

		if bookingStart.IsBefore(slotEnd) && bookingEnd.IsAfter(startTime) {
			count++
		}
	}

	return count, nil
}
