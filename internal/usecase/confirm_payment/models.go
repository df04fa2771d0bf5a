package confirm_payment

import (
	"time"

	"github.com/m04kA/FitGrid-BookingService/pkg/types"
)

// Request модель подтверждённого платежа за разовое посещение
type Request struct {
	PaymentReference string           // Референс платежа из платёжного шлюза
	UserID           int64            // ID пользователя
	StudioID         int64            // ID студии
	Date             time.Time        // Дата занятия
	StartTime        types.TimeString // Время начала слота
}

// Response модель результата обработки платежа
type Response struct {
	BookingID int64 // ID созданного (или ранее созданного) бронирования
	Duplicate bool  // true, если событие уже было обработано раньше
}
