package payment

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	"github.com/m04kA/FitGrid-BookingService/internal/usecase/confirm_payment"
	"github.com/m04kA/FitGrid-BookingService/pkg/types"
)

// RoutingKey ключ маршрутизации событий подтверждения платежа
const RoutingKey = "payment.confirmed"

// PaymentConfirmedEvent событие платёжного шлюза об успешной оплате разового посещения
type PaymentConfirmedEvent struct {
	PaymentReference string `json:"payment_reference"`
	UserID           int64  `json:"user_id"`
	StudioID         int64  `json:"studio_id"`
	Date             string `json:"date"`       // YYYY-MM-DD
	StartTime        string `json:"start_time"` // HH:MM
}

// Consumer обрабатывает события payment.confirmed из брокера
type Consumer struct {
	deliveries <-chan amqp.Delivery
	confirmer  PaymentConfirmer
	logger     Logger
}

// NewConsumer создает новый экземпляр consumer
func NewConsumer(deliveries <-chan amqp.Delivery, confirmer PaymentConfirmer, logger Logger) *Consumer {
	return &Consumer{
		deliveries: deliveries,
		confirmer:  confirmer,
		logger:     logger,
	}
}

// Run обрабатывает сообщения до отмены контекста или закрытия канала доставки
func (c *Consumer) Run(ctx context.Context) {
	c.logger.Info("PaymentConsumer: started")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("PaymentConsumer: context cancelled, stopping")
			return
		case delivery, ok := <-c.deliveries:
			if !ok {
				c.logger.Warn("PaymentConsumer: delivery channel closed, stopping")
				return
			}
			c.handle(ctx, delivery)
		}
	}
}

// handle обрабатывает одно сообщение
// Невалидные события и бизнес-отказы подтверждаются (повторная доставка
// не исправит их), временные сбои возвращаются в очередь
func (c *Consumer) handle(ctx context.Context, delivery amqp.Delivery) {
	var event PaymentConfirmedEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		c.logger.Error("PaymentConsumer: failed to parse event: %v", err)
		_ = delivery.Ack(false)
		return
	}

	req, err := buildRequest(&event)
	if err != nil {
		c.logger.Error("PaymentConsumer: malformed event reference=%s: %v", event.PaymentReference, err)
		_ = delivery.Ack(false)
		return
	}

	resp, err := c.confirmer.Execute(ctx, req)
	if err != nil {
		if isPermanentFailure(err) {
			c.logger.Warn("PaymentConsumer: event reference=%s rejected: %v", event.PaymentReference, err)
			_ = delivery.Ack(false)
			return
		}
		c.logger.Error("PaymentConsumer: transient failure for reference=%s, requeueing: %v",
			event.PaymentReference, err)
		_ = delivery.Nack(false, true)
		return
	}

	if resp.Duplicate {
		c.logger.Info("PaymentConsumer: duplicate event reference=%s, booking id=%d",
			event.PaymentReference, resp.BookingID)
	} else {
		c.logger.Info("PaymentConsumer: processed reference=%s, booking id=%d",
			event.PaymentReference, resp.BookingID)
	}

	_ = delivery.Ack(false)
}

// buildRequest конвертирует событие брокера в запрос use case
func buildRequest(event *PaymentConfirmedEvent) (*confirm_payment.Request, error) {
	date, err := time.Parse(domain.DateFormat, event.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(event.StartTime)
	if err != nil {
		return nil, err
	}

	return &confirm_payment.Request{
		PaymentReference: event.PaymentReference,
		UserID:           event.UserID,
		StudioID:         event.StudioID,
		Date:             date,
		StartTime:        startTime,
	}, nil
}

// isPermanentFailure возвращает true для ошибок, которые повторная доставка не исправит
func isPermanentFailure(err error) bool {
	return errors.Is(err, confirm_payment.ErrInvalidInput) ||
		errors.Is(err, confirm_payment.ErrInvalidTimeSlot) ||
		errors.Is(err, confirm_payment.ErrStudioNotFound) ||
		errors.Is(err, confirm_payment.ErrSlotFull)
}
