package create_booking

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

// fakeBookingRepo in-memory репозиторий для тестов
type fakeBookingRepo struct {
	bookings []*domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	created := *booking
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.bookings = append(f.bookings, &created)
	return &created, nil
}

func (f *fakeBookingRepo) GetByUserAndDate(_ context.Context, userID int64, date time.Time) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.UserID == userID && b.BookingDate.Equal(date) && b.CountsTowardDayLimit() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByStudioWithFilter(_ context.Context, filter domain.StudioBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.StudioID != filter.StudioID {
			continue
		}
		if filter.Date != nil && !b.BookingDate.Equal(*filter.Date) {
			continue
		}
		if !filter.IncludeCancelled && b.IsCancelled() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type fakeStudioRepo struct {
	studio *domain.Studio
	err    error
}

func (f *fakeStudioRepo) GetByID(_ context.Context, _ int64) (*domain.Studio, error) {
	return f.studio, f.err
}

type fakeEntitlement struct {
	allowed bool
	err     error
}

func (f *fakeEntitlement) CanBookStudio(_ context.Context, _, _ int64) (bool, error) {
	return f.allowed, f.err
}

// fakeTxManager выполняет callback без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func newTestUseCase(repo *fakeBookingRepo, studio *domain.Studio) *UseCase {
	uc := NewUseCase(
		repo,
		&fakeStudioRepo{studio: studio},
		&fakeEntitlement{allowed: true},
		fakeTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)}
	return uc
}

func defaultStudio(capacity int) *domain.Studio {
	return &domain.Studio{
		ID:              1,
		Name:            "FitGrid Центральная",
		CapacityPerSlot: capacity,
		OpenTime:        types.TimeString("09:00"),
		CloseTime:       types.TimeString("21:00"),
	}
}

func bookingRequest(userID int64, start string) *Request {
	return &Request{
		UserID:    userID,
		StudioID:  1,
		Date:      time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString(start),
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, defaultStudio(6))

	resp, err := uc.Execute(context.Background(), bookingRequest(100, "09:20"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, domain.SlotDurationMinutes, resp.DurationMinutes)
	require.Len(t, repo.bookings, 1)
}

func TestUseCase_Execute_SlotFull(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, defaultStudio(6))

	// Шесть разных пользователей занимают слот целиком
	for userID := int64(1); userID <= 6; userID++ {
		_, err := uc.Execute(context.Background(), bookingRequest(userID, "10:00"))
		require.NoError(t, err)
	}

	// Седьмой получает отказ
	_, err := uc.Execute(context.Background(), bookingRequest(7, "10:00"))
	assert.ErrorIs(t, err, ErrSlotFull)

	// Соседний слот при этом свободен
	_, err = uc.Execute(context.Background(), bookingRequest(7, "10:20"))
	assert.NoError(t, err)
}

func TestUseCase_Execute_CancelledFreesSpot(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, defaultStudio(1))

	_, err := uc.Execute(context.Background(), bookingRequest(1, "10:00"))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), bookingRequest(2, "10:00"))
	require.ErrorIs(t, err, ErrSlotFull)

	// Отмена освобождает место
	repo.bookings[0].Status = domain.StatusCancelled

	_, err = uc.Execute(context.Background(), bookingRequest(2, "10:00"))
	assert.NoError(t, err)
}

func TestUseCase_Execute_AttendedStillOccupiesSlot(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, defaultStudio(2))

	_, err := uc.Execute(context.Background(), bookingRequest(1, "10:00"))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), bookingRequest(2, "10:00"))
	require.NoError(t, err)

	// Check-in не освобождает место: слот остается заполненным
	repo.bookings[0].Status = domain.StatusAttended

	_, err = uc.Execute(context.Background(), bookingRequest(3, "10:00"))
	assert.ErrorIs(t, err, ErrSlotFull)
	assert.Len(t, repo.bookings, 2)
}

func TestUseCase_Execute_NonCanonicalStartTime(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, defaultStudio(1))

	_, err := uc.Execute(context.Background(), bookingRequest(1, "09:00"))
	require.NoError(t, err)

	// Время без ведущего нуля отклоняется на валидации:
	// иначе "9:00" обходит лексикографическое сравнение пересечений
	_, err = uc.Execute(context.Background(), bookingRequest(2, "9:00"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Len(t, repo.bookings, 1)
}

func TestUseCase_Execute_AlreadyBookedToday(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, defaultStudio(6))

	_, err := uc.Execute(context.Background(), bookingRequest(1, "09:00"))
	require.NoError(t, err)

	// Второе занятие в тот же день запрещено, даже в другом слоте
	_, err = uc.Execute(context.Background(), bookingRequest(1, "15:00"))
	assert.ErrorIs(t, err, ErrAlreadyBookedToday)

	// Отмененное занятие лимит не расходует
	repo.bookings[0].Status = domain.StatusCancelled

	_, err = uc.Execute(context.Background(), bookingRequest(1, "15:00"))
	assert.NoError(t, err)
}

func TestUseCase_Execute_InvalidTimeSlot(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, defaultStudio(6))

	tests := []struct {
		name  string
		start string
	}{
		{"not aligned to grid", "09:05"},
		{"before opening", "08:40"},
		{"slot runs past closing", "20:50"},
		{"at closing time", "21:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), bookingRequest(1, tt.start))
			assert.ErrorIs(t, err, ErrInvalidTimeSlot)
		})
	}
}

func TestUseCase_Execute_NotEntitled(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeStudioRepo{studio: defaultStudio(6)},
		&fakeEntitlement{allowed: false},
		fakeTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), bookingRequest(1, "09:20"))
	assert.ErrorIs(t, err, ErrNotEntitled)
}

func TestUseCase_Execute_StudioNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeStudioRepo{err: studioRepo.ErrStudioNotFound},
		&fakeEntitlement{allowed: true},
		fakeTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), bookingRequest(1, "09:20"))
	assert.ErrorIs(t, err, ErrStudioNotFound)
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, defaultStudio(6))

	req := bookingRequest(1, "09:20")
	req.Date = time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, defaultStudio(6))

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero user", &Request{StudioID: 1, Date: time.Now(), StartTime: "09:00"}},
		{"zero studio", &Request{UserID: 1, Date: time.Now(), StartTime: "09:00"}},
		{"empty start time", &Request{UserID: 1, StudioID: 1, Date: time.Now()}},
		{"malformed start time", &Request{UserID: 1, StudioID: 1, Date: time.Now(), StartTime: "9 утра"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
