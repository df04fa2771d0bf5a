package scan_yield

import (
	"time"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	"github.com/m04kA/FitGrid-BookingService/pkg/types"
)

// Request модель запроса на запуск сканирования недозаполненных слотов
type Request struct {
	StudioID int64     // ID студии
	Date     time.Time // Дата, для которой ищутся недозаполненные слоты
}

// Response модель результата сканирования
type Response struct {
	ScanID     string       // Уникальный идентификатор запуска сканирования
	StudioID   int64        // ID студии
	Date       time.Time    // Дата сканирования
	TargetSlot *domain.Slot // Первый недозаполненный слот (nil, если таких нет)
	Targeted   int          // Количество участников, которым отправлено предложение
}

// PromoOfferEvent событие промо-предложения для брокера
type PromoOfferEvent struct {
	ScanID    string           `json:"scan_id"`
	UserID    int64            `json:"user_id"`
	StudioID  int64            `json:"studio_id"`
	Date      string           `json:"date"`
	StartTime types.TimeString `json:"start_time"`
	FreeSpots int              `json:"free_spots"`
}
