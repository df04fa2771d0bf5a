package yield_scan

import (
	"time"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	scanYield "github.com/m04kA/FitGrid-BookingService/internal/usecase/scan_yield"
	"github.com/m04kA/FitGrid-BookingService/pkg/types"
)

// YieldScanRequest тело запроса на запуск сканирования
type YieldScanRequest struct {
	Date string `json:"date"` // "2025-06-11"
}

// TargetSlotResponse недозаполненный слот в ответе
type TargetSlotResponse struct {
	StartTime       types.TimeString `json:"startTime"`
	DurationMinutes int              `json:"durationMinutes"`
	BookedCount     int              `json:"bookedCount"`
	AvailableSpots  int              `json:"availableSpots"`
	TotalSpots      int              `json:"totalSpots"`
}

// YieldScanResponse результат сканирования
type YieldScanResponse struct {
	ScanID     string              `json:"scanId"`
	StudioID   int64               `json:"studioId"`
	Date       string              `json:"date"`
	TargetSlot *TargetSlotResponse `json:"targetSlot"`
	Targeted   int                 `json:"targeted"`
}

// ToUseCaseRequest конвертирует HTTP запрос в usecase модель
// Пустая дата означает завтрашний день
func (r *YieldScanRequest) ToUseCaseRequest(studioID int64) (*scanYield.Request, error) {
	var date time.Time
	if r.Date == "" {
		tomorrow := time.Now().AddDate(0, 0, 1)
		date = time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.UTC)
	} else {
		parsed, err := time.Parse(domain.DateFormat, r.Date)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	return &scanYield.Request{
		StudioID: studioID,
		Date:     date,
	}, nil
}

// FromUseCaseResponse конвертирует usecase модель в HTTP ответ
func FromUseCaseResponse(resp *scanYield.Response) *YieldScanResponse {
	out := &YieldScanResponse{
		ScanID:   resp.ScanID,
		StudioID: resp.StudioID,
		Date:     resp.Date.Format(domain.DateFormat),
		Targeted: resp.Targeted,
	}

	if resp.TargetSlot != nil {
		out.TargetSlot = &TargetSlotResponse{
			StartTime:       resp.TargetSlot.StartTime,
			DurationMinutes: resp.TargetSlot.DurationMinutes,
			BookedCount:     resp.TargetSlot.BookedCount,
			AvailableSpots:  resp.TargetSlot.AvailableSpots,
			TotalSpots:      resp.TargetSlot.TotalSpots,
		}
	}

	return out
}
