package payment

import (
	"context"
	"encoding/json"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FitGrid-BookingService/internal/usecase/confirm_payment"
)

type fakeConfirmer struct {
	resp *confirm_payment.Response
	err  error
	seen []*confirm_payment.Request
}

func (f *fakeConfirmer) Execute(_ context.Context, req *confirm_payment.Request) (*confirm_payment.Response, error) {
	f.seen = append(f.seen, req)
	return f.resp, f.err
}

// fakeAcknowledger фиксирует решение по сообщению
type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAcknowledger) Ack(_ uint64, _ bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(_ uint64, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validEventBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(PaymentConfirmedEvent{
		PaymentReference: "pay-100",
		UserID:           1,
		StudioID:         2,
		Date:             "2025-06-11",
		StartTime:        "10:00",
	})
	require.NoError(t, err)
	return body
}

func newDelivery(body []byte, ack *fakeAcknowledger) amqp.Delivery {
	return amqp.Delivery{Acknowledger: ack, Body: body}
}

func TestConsumer_Handle_Success(t *testing.T) {
	confirmer := &fakeConfirmer{resp: &confirm_payment.Response{BookingID: 5}}
	c := NewConsumer(nil, confirmer, nopLogger{})

	ack := &fakeAcknowledger{}
	c.handle(context.Background(), newDelivery(validEventBody(t), ack))

	assert.True(t, ack.acked)
	require.Len(t, confirmer.seen, 1)
	assert.Equal(t, "pay-100", confirmer.seen[0].PaymentReference)
	assert.Equal(t, "2025-06-11", confirmer.seen[0].Date.Format("2006-01-02"))
}

func TestConsumer_Handle_MalformedJSON(t *testing.T) {
	confirmer := &fakeConfirmer{}
	c := NewConsumer(nil, confirmer, nopLogger{})

	ack := &fakeAcknowledger{}
	c.handle(context.Background(), newDelivery([]byte("{not json"), ack))

	// Сломанное событие подтверждаем, чтобы оно не зациклилось в очереди
	assert.True(t, ack.acked)
	assert.Empty(t, confirmer.seen)
}

func TestConsumer_Handle_BadDate(t *testing.T) {
	body, err := json.Marshal(PaymentConfirmedEvent{
		PaymentReference: "pay-101",
		UserID:           1,
		StudioID:         2,
		Date:             "11.06.2025",
		StartTime:        "10:00",
	})
	require.NoError(t, err)

	confirmer := &fakeConfirmer{}
	c := NewConsumer(nil, confirmer, nopLogger{})

	ack := &fakeAcknowledger{}
	c.handle(context.Background(), newDelivery(body, ack))

	assert.True(t, ack.acked)
	assert.Empty(t, confirmer.seen)
}

func TestConsumer_Handle_SlotFullIsPermanent(t *testing.T) {
	confirmer := &fakeConfirmer{err: confirm_payment.ErrSlotFull}
	c := NewConsumer(nil, confirmer, nopLogger{})

	ack := &fakeAcknowledger{}
	c.handle(context.Background(), newDelivery(validEventBody(t), ack))

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestConsumer_Handle_TransientFailureRequeues(t *testing.T) {
	confirmer := &fakeConfirmer{err: confirm_payment.ErrInternal}
	c := NewConsumer(nil, confirmer, nopLogger{})

	ack := &fakeAcknowledger{}
	c.handle(context.Background(), newDelivery(validEventBody(t), ack))

	assert.False(t, ack.acked)
	assert.True(t, ack.nacked)
	assert.True(t, ack.requeue)
}
