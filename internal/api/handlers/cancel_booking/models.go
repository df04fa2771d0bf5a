package cancel_booking

import (
	"time"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	cancelBooking "github.com/m04kA/FitGrid-BookingService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	StudioID    int64   `json:"studioId"`
	BookingDate string  `json:"bookingDate"`
	StartTime   string  `json:"startTime"`
	Status      string  `json:"status"`
	Reason      *string `json:"reason,omitempty"`
	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID, userID int64) *cancelBooking.Request {
	return &cancelBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		Reason:    r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	out := &CancelBookingResponse{
		ID:          resp.ID,
		UserID:      resp.UserID,
		StudioID:    resp.StudioID,
		BookingDate: resp.BookingDate.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		Status:      resp.Status,
		Reason:      resp.Reason,
	}

	if resp.CancelledAt != nil {
		cancelled := resp.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &cancelled
	}

	return out
}
