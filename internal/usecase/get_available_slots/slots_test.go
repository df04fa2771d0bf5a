package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	"github.com/m04kA/FitGrid-BookingService/pkg/types"
)

func testStudio(open, close string, capacity int) *domain.Studio {
	return &domain.Studio{
		ID:              1,
		Name:            "FitGrid Центральная",
		CapacityPerSlot: capacity,
		OpenTime:        types.TimeString(open),
		CloseTime:       types.TimeString(close),
	}
}

func confirmedBooking(start string, duration int) *domain.Booking {
	return &domain.Booking{
		StartTime:       types.TimeString(start),
		DurationMinutes: duration,
		Status:          domain.StatusConfirmed,
	}
}

func TestGenerateSlotGrid(t *testing.T) {
	tests := []struct {
		name      string
		open      string
		close     string
		wantCount int
		wantFirst string
		wantLast  string
	}{
		{
			name:      "full working day",
			open:      "09:00",
			close:     "21:00",
			wantCount: 36,
			wantFirst: "09:00",
			wantLast:  "20:40",
		},
		{
			name:      "one hour window",
			open:      "09:00",
			close:     "10:00",
			wantCount: 3,
			wantFirst: "09:00",
			wantLast:  "09:40",
		},
		{
			name:      "trailing partial slot dropped",
			open:      "09:00",
			close:     "10:10",
			wantCount: 3,
			wantFirst: "09:00",
			wantLast:  "09:40",
		},
		{
			name:      "window shorter than slot",
			open:      "09:00",
			close:     "09:10",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := generateSlotGrid(testStudio(tt.open, tt.close, 6))
			require.NoError(t, err)
			require.Len(t, grid, tt.wantCount)

			if tt.wantCount > 0 {
				assert.Equal(t, types.TimeString(tt.wantFirst), grid[0])
				assert.Equal(t, types.TimeString(tt.wantLast), grid[len(grid)-1])
			}
		})
	}
}

func TestGenerateSlotGrid_Deterministic(t *testing.T) {
	studio := testStudio("08:00", "22:00", 10)

	first, err := generateSlotGrid(studio)
	require.NoError(t, err)

	second, err := generateSlotGrid(studio)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCountOverlappingBookings(t *testing.T) {
	tests := []struct {
		name     string
		slot     string
		bookings []*domain.Booking
		want     int
	}{
		{
			name:     "no bookings",
			slot:     "09:20",
			bookings: nil,
			want:     0,
		},
		{
			name: "exact match",
			slot: "09:20",
			bookings: []*domain.Booking{
				confirmedBooking("09:20", 20),
			},
			want: 1,
		},
		{
			name: "booking straddles slot boundary",
			slot: "09:20",
			bookings: []*domain.Booking{
				confirmedBooking("09:05", 20), // 09:05-09:25 пересекает слот 09:20-09:40
			},
			want: 1,
		},
		{
			name: "booking ends exactly at slot start",
			slot: "09:20",
			bookings: []*domain.Booking{
				confirmedBooking("09:00", 20), // 09:00-09:20 граничит, не пересекается
			},
			want: 0,
		},
		{
			name: "booking starts exactly at slot end",
			slot: "09:20",
			bookings: []*domain.Booking{
				confirmedBooking("09:40", 20),
			},
			want: 0,
		},
		{
			name: "cancelled booking ignored",
			slot: "09:20",
			bookings: []*domain.Booking{
				{
					StartTime:       types.TimeString("09:20"),
					DurationMinutes: 20,
					Status:          domain.StatusCancelled,
				},
			},
			want: 0,
		},
		{
			name: "long booking covers several slots",
			slot: "09:20",
			bookings: []*domain.Booking{
				confirmedBooking("09:00", 60), // 09:00-10:00
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := countOverlappingBookings(types.TimeString(tt.slot), domain.SlotDurationMinutes, tt.bookings)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateAvailability(t *testing.T) {
	studio := testStudio("09:00", "10:00", 2)

	grid, err := generateSlotGrid(studio)
	require.NoError(t, err)

	bookings := []*domain.Booking{
		confirmedBooking("09:00", 20),
		confirmedBooking("09:00", 20),
		confirmedBooking("09:20", 20),
	}

	slots := calculateAvailability(grid, bookings, studio.CapacityPerSlot)
	require.Len(t, slots, 3)

	// 09:00 заполнен полностью
	assert.Equal(t, 2, slots[0].BookedCount)
	assert.Equal(t, 0, slots[0].AvailableSpots)
	assert.True(t, slots[0].IsFull())

	// 09:20 занят наполовину
	assert.Equal(t, 1, slots[1].BookedCount)
	assert.Equal(t, 1, slots[1].AvailableSpots)

	// 09:40 свободен
	assert.Equal(t, 0, slots[2].BookedCount)
	assert.Equal(t, 2, slots[2].AvailableSpots)
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	assert.True(t, isDateInPast(time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), now))
	// Сегодня не считается прошлым, даже если время уже позднее
	assert.False(t, isDateInPast(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, isDateInPast(time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), now))
}
