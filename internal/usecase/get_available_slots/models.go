package get_available_slots

import (
	"time"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	StudioID int64     // ID студии
	Date     time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком слотов и их занятостью
type Response struct {
	StudioID int64         // ID студии
	Date     time.Time     // Дата, на которую запрашивались слоты
	Slots    []domain.Slot // Полная сетка слотов с доступностью
}
