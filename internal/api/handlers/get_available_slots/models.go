package get_available_slots

import (
	"time"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/FitGrid-BookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	StudioID int64           `json:"studioId"`
	Date     string          `json:"date"`
	Slots    []AvailableSlot `json:"slots"`
}

// AvailableSlot модель слота с занятостью
type AvailableSlot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	BookedCount     int    `json:"bookedCount"`
	AvailableSpots  int    `json:"availableSpots"`
	TotalSpots      int    `json:"totalSpots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			BookedCount:     slot.BookedCount,
			AvailableSpots:  slot.AvailableSpots,
			TotalSpots:      slot.TotalSpots,
		}
	}

	return &AvailableSlotsResponse{
		StudioID: resp.StudioID,
		Date:     resp.Date.Format(domain.DateFormat),
		Slots:    slots,
	}
}

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(studioID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		StudioID: studioID,
		Date:     date,
	}, nil
}
