package scan_yield

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	"github.com/m04kA/FitGrid-BookingService/internal/integrations/planservice"
	"github.com/m04kA/FitGrid-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/FitGrid-BookingService/pkg/types"
)

type fakeAvailability struct {
	slots []domain.Slot
	err   error
}

func (f *fakeAvailability) Execute(_ context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &get_available_slots.Response{
		StudioID: req.StudioID,
		Date:     req.Date,
		Slots:    f.slots,
	}, nil
}

type fakePlanClient struct {
	members []planservice.Member
	err     error
}

func (f *fakePlanClient) ListDigitalOnlyMembers(_ context.Context, _ int64) ([]planservice.Member, error) {
	return f.members, f.err
}

type fakePublisher struct {
	published []PromoOfferEvent
	failFor   map[int64]bool
}

func (f *fakePublisher) PublishJSON(_ context.Context, _ string, payload interface{}) error {
	event := payload.(PromoOfferEvent)
	if f.failFor[event.UserID] {
		return errors.New("broker unavailable")
	}
	f.published = append(f.published, event)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func slot(start string, booked, total int) domain.Slot {
	return domain.Slot{
		StartTime:       types.TimeString(start),
		DurationMinutes: domain.SlotDurationMinutes,
		BookedCount:     booked,
		AvailableSpots:  total - booked,
		TotalSpots:      total,
	}
}

func scanRequest() *Request {
	return &Request{
		StudioID: 1,
		Date:     time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
	}
}

func TestUseCase_Execute_TargetsFirstUnderperformingSlot(t *testing.T) {
	// При вместимости 6 порог - строго меньше 3 занятых мест
	availability := &fakeAvailability{slots: []domain.Slot{
		slot("09:00", 5, 6),
		slot("09:20", 3, 6), // ровно половина, не недозаполнен
		slot("09:40", 2, 6), // первый недозаполненный
		slot("10:00", 0, 6),
	}}
	publisher := &fakePublisher{}

	uc := NewUseCase(availability, &fakePlanClient{members: []planservice.Member{
		{UserID: 11, Tier: planservice.TierDigitalOnly},
		{UserID: 12, Tier: planservice.TierDigitalOnly},
	}}, publisher, nopLogger{})

	resp, err := uc.Execute(context.Background(), scanRequest())
	require.NoError(t, err)

	require.NotNil(t, resp.TargetSlot)
	assert.Equal(t, types.TimeString("09:40"), resp.TargetSlot.StartTime)
	assert.Equal(t, 2, resp.Targeted)
	assert.NotEmpty(t, resp.ScanID)

	require.Len(t, publisher.published, 2)
	assert.Equal(t, int64(11), publisher.published[0].UserID)
	assert.Equal(t, resp.ScanID, publisher.published[0].ScanID)
	assert.Equal(t, 4, publisher.published[0].FreeSpots)
}

func TestUseCase_Execute_NoUnderperformingSlots(t *testing.T) {
	availability := &fakeAvailability{slots: []domain.Slot{
		slot("09:00", 3, 6),
		slot("09:20", 6, 6),
	}}
	publisher := &fakePublisher{}

	uc := NewUseCase(availability, &fakePlanClient{}, publisher, nopLogger{})

	resp, err := uc.Execute(context.Background(), scanRequest())
	require.NoError(t, err)

	assert.Nil(t, resp.TargetSlot)
	assert.Zero(t, resp.Targeted)
	assert.Empty(t, publisher.published)
}

func TestUseCase_Execute_PublishFailureDoesNotStopFanout(t *testing.T) {
	availability := &fakeAvailability{slots: []domain.Slot{slot("09:00", 0, 6)}}
	publisher := &fakePublisher{failFor: map[int64]bool{12: true}}

	uc := NewUseCase(availability, &fakePlanClient{members: []planservice.Member{
		{UserID: 11}, {UserID: 12}, {UserID: 13},
	}}, publisher, nopLogger{})

	resp, err := uc.Execute(context.Background(), scanRequest())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Targeted)
	require.Len(t, publisher.published, 2)
}

func TestUseCase_Execute_NilPublisher(t *testing.T) {
	availability := &fakeAvailability{slots: []domain.Slot{slot("09:00", 0, 6)}}

	uc := NewUseCase(availability, &fakePlanClient{members: []planservice.Member{{UserID: 11}}}, nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), scanRequest())
	require.NoError(t, err)

	require.NotNil(t, resp.TargetSlot)
	assert.Zero(t, resp.Targeted)
}

func TestUseCase_Execute_StudioNotFound(t *testing.T) {
	availability := &fakeAvailability{err: get_available_slots.ErrStudioNotFound}

	uc := NewUseCase(availability, &fakePlanClient{}, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), scanRequest())
	assert.ErrorIs(t, err, ErrStudioNotFound)
}
