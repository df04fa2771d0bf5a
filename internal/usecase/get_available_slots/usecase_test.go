package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	studioRepo "github.com/m04kA/FitGrid-BookingService/internal/infra/storage/studio"
	"github.com/m04kA/FitGrid-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetByStudioWithFilter(_ context.Context, _ domain.StudioBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeStudioRepo struct {
	studio *domain.Studio
	err    error
}

func (f *fakeStudioRepo) GetByID(_ context.Context, _ int64) (*domain.Studio, error) {
	return f.studio, f.err
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestUseCase_Execute(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	studio := &domain.Studio{
		ID:              7,
		Name:            "FitGrid Арена",
		CapacityPerSlot: 3,
		OpenTime:        types.TimeString("09:00"),
		CloseTime:       types.TimeString("10:00"),
	}

	uc := NewUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{
			{StartTime: types.TimeString("09:00"), DurationMinutes: 20, Status: domain.StatusConfirmed},
		}},
		&fakeStudioRepo{studio: studio},
		nopLogger{},
	)
	uc.timeProvider = &fakeTimeProvider{now: now}

	resp, err := uc.Execute(context.Background(), &Request{StudioID: 7, Date: date})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 3)
	assert.Equal(t, 2, resp.Slots[0].AvailableSpots)
	assert.Equal(t, 3, resp.Slots[1].AvailableSpots)
	assert.Equal(t, int64(7), resp.StudioID)
}

func TestUseCase_Execute_StudioNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeStudioRepo{err: studioRepo.ErrStudioNotFound},
		nopLogger{},
	)
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), &Request{
		StudioID: 404,
		Date:     time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrStudioNotFound)
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeStudioRepo{}, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), &Request{
		StudioID: 1,
		Date:     time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeStudioRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{StudioID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
