package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/FitGrid-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/FitGrid-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	booking *domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, bookingID int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != bookingID {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, _ int64, reason *string) error {
	now := time.Now()
	f.booking.Status = domain.StatusCancelled
	f.booking.CancellationReason = reason
	f.booking.CancelledAt = &now
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:          10,
		UserID:      100,
		StudioID:    1,
		BookingDate: time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString("09:20"),
		Status:      domain.StatusConfirmed,
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})

	reason := "заболел"
	resp, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 100, Reason: &reason})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, reason, *resp.Reason)
	assert.NotNil(t, resp.CancelledAt)
}

func TestUseCase_Execute_AccessDenied(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
	// Бронирование осталось нетронутым
	assert.Equal(t, domain.StatusConfirmed, repo.booking.Status)
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 100})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUseCase_Execute_AlreadyCancelled(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusCancelled
	uc := NewUseCase(&fakeBookingRepo{booking: booking}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 100})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestUseCase_Execute_AlreadyAttended(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusAttended
	uc := NewUseCase(&fakeBookingRepo{booking: booking}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 100})
	assert.ErrorIs(t, err, ErrAlreadyAttended)
}
