package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/FitGrid-BookingService/internal/infra/storage/booking"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(repo BookingRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: repo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case отмены бронирования
// Отмена мягкая: запись остаётся в истории со статусом cancelled,
// место в слоте освобождается сразу
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, user=%d", req.BookingID, req.UserID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Отменять можно только своё бронирование
		if booking.UserID != req.UserID {
			uc.logger.Warn("CancelBooking: user=%d tried to cancel booking id=%d of user=%d",
				req.UserID, req.BookingID, booking.UserID)
			return ErrAccessDenied
		}

		if booking.IsCancelled() {
			return ErrAlreadyCancelled
		}
		if booking.IsAttended() {
			return ErrAlreadyAttended
		}

		if err := uc.bookingRepo.Cancel(txCtx, req.BookingID, req.Reason); err != nil {
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		// Перечитываем запись, чтобы вернуть фактические cancelled_at и статус
		cancelled, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			uc.logger.Error("CancelBooking: failed to reload booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
		}

		result = cancelled
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%d", result.ID)

	return &Response{
		ID:          result.ID,
		UserID:      result.UserID,
		StudioID:    result.StudioID,
		BookingDate: result.BookingDate,
		StartTime:   result.StartTime,
		Status:      string(result.Status),
		Reason:      result.CancellationReason,
		CancelledAt: result.CancelledAt,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return nil
}
