package studios

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	studioRepo "github.com/m04kA/FitGrid-BookingService/internal/infra/storage/studio"
	"github.com/m04kA/FitGrid-BookingService/internal/service/studios/models"
)

type fakeStudioRepo struct {
	studios map[int64]*domain.Studio
	nextID  int64
}

func (f *fakeStudioRepo) Create(_ context.Context, studio *domain.Studio) (*domain.Studio, error) {
	f.nextID++
	created := *studio
	created.ID = f.nextID
	f.studios[created.ID] = &created
	return &created, nil
}

func (f *fakeStudioRepo) GetByID(_ context.Context, id int64) (*domain.Studio, error) {
	s, ok := f.studios[id]
	if !ok {
		return nil, studioRepo.ErrStudioNotFound
	}
	return s, nil
}

func (f *fakeStudioRepo) List(_ context.Context) ([]*domain.Studio, error) {
	out := make([]*domain.Studio, 0, len(f.studios))
	for _, s := range f.studios {
		out = append(out, s)
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() *Service {
	return NewService(&fakeStudioRepo{studios: map[int64]*domain.Studio{}}, nopLogger{})
}

func TestService_Create(t *testing.T) {
	svc := newTestService()

	resp, err := svc.Create(context.Background(), &models.CreateStudioRequest{
		Name:            "FitGrid Центральная",
		CapacityPerSlot: 6,
		OpenTime:        "09:00",
		CloseTime:       "21:00",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, 36, resp.SlotsPerDay)
	assert.Equal(t, "09:00", resp.OpenTime)
}

func TestService_Create_Validation(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name string
		req  models.CreateStudioRequest
	}{
		{"empty name", models.CreateStudioRequest{CapacityPerSlot: 6, OpenTime: "09:00", CloseTime: "21:00"}},
		{"zero capacity", models.CreateStudioRequest{Name: "Зал", OpenTime: "09:00", CloseTime: "21:00"}},
		{"capacity too large", models.CreateStudioRequest{Name: "Зал", CapacityPerSlot: 1000, OpenTime: "09:00", CloseTime: "21:00"}},
		{"malformed open time", models.CreateStudioRequest{Name: "Зал", CapacityPerSlot: 6, OpenTime: "9am", CloseTime: "21:00"}},
		{"open after close", models.CreateStudioRequest{Name: "Зал", CapacityPerSlot: 6, OpenTime: "21:00", CloseTime: "09:00"}},
		{"window too short for one slot", models.CreateStudioRequest{Name: "Зал", CapacityPerSlot: 6, OpenTime: "09:00", CloseTime: "09:10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrStudioNotFound)
}

func TestService_List(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), &models.CreateStudioRequest{
		Name:            "FitGrid Арена",
		CapacityPerSlot: 10,
		OpenTime:        "08:00",
		CloseTime:       "22:00",
	})
	require.NoError(t, err)

	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Studios, 1)
}
