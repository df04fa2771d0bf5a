package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/FitGrid-BookingService/internal/infra/storage/booking"
	studioRepo "github.com/m04kA/FitGrid-BookingService/internal/infra/storage/studio"
	"github.com/m04kA/FitGrid-BookingService/internal/service/bookings/models"
	"github.com/m04kA/FitGrid-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByStudioWithFilter(_ context.Context, filter domain.StudioBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.StudioID != filter.StudioID {
			continue
		}
		if !filter.IncludeCancelled && b.IsCancelled() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

type fakeStudioRepo struct {
	studios map[int64]*domain.Studio
}

func (f *fakeStudioRepo) GetByID(_ context.Context, id int64) (*domain.Studio, error) {
	s, ok := f.studios[id]
	if !ok {
		return nil, studioRepo.ErrStudioNotFound
	}
	return s, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeBookingRepo) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: {
			ID:          1,
			UserID:      100,
			StudioID:    1,
			BookingDate: time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
			StartTime:   types.TimeString("10:00"),
			Status:      domain.StatusConfirmed,
		},
		2: {
			ID:          2,
			UserID:      100,
			StudioID:    1,
			BookingDate: time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
			StartTime:   types.TimeString("11:00"),
			Status:      domain.StatusCancelled,
		},
	}}
	studios := &fakeStudioRepo{studios: map[int64]*domain.Studio{
		1: {ID: 1, Name: "FitGrid Центральная", CapacityPerSlot: 6,
			OpenTime: types.TimeString("09:00"), CloseTime: types.TimeString("21:00")},
	}}
	return NewService(repo, studios, nopLogger{}), repo
}

func TestService_GetByID(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.GetByID(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "10:00", resp.StartTime)
}

func TestService_GetByID_AccessDenied(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 42, 100)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetUserBookings_StatusFilter(t *testing.T) {
	svc, _ := newTestService()

	status := "cancelled"
	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 100,
		Status: &status,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "cancelled", resp.Bookings[0].Status)
}

func TestService_GetUserBookings_InvalidStatus(t *testing.T) {
	svc, _ := newTestService()

	status := "pending"
	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 100,
		Status: &status,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetStudioBookings(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.GetStudioBookings(context.Background(), &models.GetStudioBookingsRequest{StudioID: 1})
	require.NoError(t, err)
	// Отменённое бронирование по умолчанию не включается
	assert.Len(t, resp.Bookings, 1)

	resp, err = svc.GetStudioBookings(context.Background(), &models.GetStudioBookingsRequest{
		StudioID:         1,
		IncludeCancelled: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestService_GetStudioBookings_StudioNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetStudioBookings(context.Background(), &models.GetStudioBookingsRequest{StudioID: 404})
	assert.ErrorIs(t, err, ErrStudioNotFound)
}

func TestService_CheckIn(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.CheckIn(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusAttended), resp.Status)
	assert.Equal(t, domain.StatusAttended, repo.bookings[1].Status)
}

func TestService_CheckIn_NotConfirmed(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CheckIn(context.Background(), 2, 100)
	assert.ErrorIs(t, err, ErrNotConfirmed)
}

func TestService_CheckIn_AccessDenied(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CheckIn(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
