package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/FitGrid-BookingService/internal/infra/storage/booking"
	studioRepo "github.com/m04kA/FitGrid-BookingService/internal/infra/storage/studio"
	"github.com/m04kA/FitGrid-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	studioRepo  StudioRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	studioRepo StudioRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		studioRepo:  studioRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetStudioBookings получает бронирования студии с фильтрацией
// Поддерживает фильтры по дате, статусу и включение отменённых записей.
// Права доступа (админ студии) проверяются на уровне API
func (s *Service) GetStudioBookings(ctx context.Context, req *models.GetStudioBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetStudioBookings: fetching bookings for studio=%d", req.StudioID)
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	// Проверяем, что студия существует
	if _, err := s.studioRepo.GetByID(ctx, req.StudioID); err != nil {
		if errors.Is(err, studioRepo.ErrStudioNotFound) {
			s.logger.Warn("GetStudioBookings: studio id=%d not found", req.StudioID)
			return nil, ErrStudioNotFound
		}
		s.logger.Error("GetStudioBookings: failed to get studio id=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: GetStudioBookings - failed to get studio: %v", ErrInternal, err)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetStudioBookings: invalid filter for studio=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByStudioWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetStudioBookings: repository error for studio=%d: %v", req.StudioID, err)
		return nil, fmt.Errorf("%w: GetStudioBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudioBookings: successfully fetched %d bookings for studio=%d", len(bookings), req.StudioID)
	return models.FromDomainBookingList(bookings), nil
}

// CheckIn отмечает посещение занятия (confirmed -> attended)
// Пользователь может отметить только своё бронирование
func (s *Service) CheckIn(ctx context.Context, bookingID int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("CheckIn: booking id=%d by user=%d", bookingID, userID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("CheckIn: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("CheckIn: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: CheckIn - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("CheckIn: access denied for user=%d to booking id=%d", userID, bookingID)
		return nil, ErrAccessDenied
	}

	// Отметить можно только подтверждённое занятие
	if booking.Status != domain.StatusConfirmed {
		s.logger.Warn("CheckIn: booking id=%d has status=%s, cannot check in", bookingID, booking.Status)
		return nil, ErrNotConfirmed
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusAttended); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("CheckIn: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: CheckIn - repository error: %v", ErrInternal, err)
	}

	updated, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Error("CheckIn: failed to reload booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: CheckIn - failed to reload booking: %v", ErrInternal, err)
	}

	s.logger.Info("CheckIn: successfully checked in booking id=%d", bookingID)
	return models.FromDomainBooking(updated), nil
}
