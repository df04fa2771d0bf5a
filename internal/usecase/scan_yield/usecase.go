package scan_yield

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	"github.com/m04kA/FitGrid-BookingService/internal/usecase/get_available_slots"
)

// PromoRoutingKey ключ маршрутизации промо-предложений в брокере
const PromoRoutingKey = "promo.target"

// UseCase use case сканирования недозаполненных слотов (yield management)
// Находит первый слот, заполненный меньше чем наполовину, и рассылает
// digital-only участникам студии предложение разового посещения
type UseCase struct {
	availability AvailabilityProvider
	planClient   PlanServiceClient
	publisher    PromoPublisher
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// publisher может быть nil: сканирование тогда работает в режиме "только отчёт"
func NewUseCase(
	availability AvailabilityProvider,
	planClient PlanServiceClient,
	publisher PromoPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability: availability,
		planClient:   planClient,
		publisher:    publisher,
		logger:       logger,
	}
}

// Execute выполняет сканирование студии на указанную дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	scanID := uuid.NewString()

	uc.logger.Info("ScanYield: scan=%s, studio=%d, date=%s",
		scanID, req.StudioID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ScanYield: validation failed: %v", err)
		return nil, err
	}

	// 1. Получаем сетку слотов с текущей занятостью
	slots, err := uc.availability.Execute(ctx, &get_available_slots.Request{
		StudioID: req.StudioID,
		Date:     req.Date,
	})
	if err != nil {
		if errors.Is(err, get_available_slots.ErrStudioNotFound) {
			return nil, ErrStudioNotFound
		}
		uc.logger.Error("ScanYield: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	// 2. Ищем первый недозаполненный слот
	target := findUnderperformingSlot(slots.Slots)
	if target == nil {
		uc.logger.Info("ScanYield: scan=%s, no underperforming slots for studio=%d on %s",
			scanID, req.StudioID, req.Date.Format(domain.DateFormat))
		return &Response{
			ScanID:   scanID,
			StudioID: req.StudioID,
			Date:     req.Date,
		}, nil
	}

	uc.logger.Info("ScanYield: scan=%s, target slot %s (%d/%d booked)",
		scanID, target.StartTime, target.BookedCount, target.TotalSpots)

	// 3. Получаем digital-only участников студии
	members, err := uc.planClient.ListDigitalOnlyMembers(ctx, req.StudioID)
	if err != nil {
		uc.logger.Error("ScanYield: failed to list digital-only members: %v", err)
		return nil, fmt.Errorf("%w: failed to list members: %v", ErrInternal, err)
	}

	// 4. Формируем цели рассылки: каждому участнику предлагается target слот
	targets := make([]domain.YieldTarget, 0, len(members))
	for _, member := range members {
		targets = append(targets, domain.YieldTarget{
			UserID:   member.UserID,
			StudioID: req.StudioID,
			Date:     req.Date,
			Slot:     *target,
		})
	}

	// 5. Публикуем промо-предложения. Ошибка публикации одному участнику
	// не прерывает рассылку остальным
	targeted := 0
	if uc.publisher != nil {
		for _, t := range targets {
			event := PromoOfferEvent{
				ScanID:    scanID,
				UserID:    t.UserID,
				StudioID:  t.StudioID,
				Date:      t.Date.Format(domain.DateFormat),
				StartTime: t.Slot.StartTime,
				FreeSpots: t.Slot.AvailableSpots,
			}

			if err := uc.publisher.PublishJSON(ctx, PromoRoutingKey, event); err != nil {
				uc.logger.Error("ScanYield: scan=%s, failed to publish offer to user=%d: %v",
					scanID, t.UserID, err)
				continue
			}
			targeted++
		}
	} else {
		uc.logger.Warn("ScanYield: scan=%s, promo publisher is not configured, %d members skipped",
			scanID, len(targets))
	}

	uc.logger.Info("ScanYield: scan=%s completed, targeted %d of %d members",
		scanID, targeted, len(members))

	return &Response{
		ScanID:     scanID,
		StudioID:   req.StudioID,
		Date:       req.Date,
		TargetSlot: target,
		Targeted:   targeted,
	}, nil
}

// findUnderperformingSlot возвращает первый недозаполненный слот сетки
func findUnderperformingSlot(slots []domain.Slot) *domain.Slot {
	for i := range slots {
		if slots[i].IsUnderperforming() {
			return &slots[i]
		}
	}
	return nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StudioID <= 0 {
		return fmt.Errorf("%w: studioID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
