package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent   []published
	err    error
	closed bool
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

var fixedNow = time.Date(2024, 1, 9, 10, 0, 0, 0, time.UTC)

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:           17,
		RoomID:       3,
		RoomCategory: domain.CategoryConference,
		Requester:    domain.TeamRequester(4),
		Slot:         domain.NewSlot(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), types.MustTimeString("10:00"), types.MustTimeString("11:00")),
		CreatedBy:    9,
	}
}

func TestPublisher_BookingAllocated(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch, exchange: "rooms.booking", now: func() time.Time { return fixedNow }}

	require.NoError(t, p.BookingAllocated(context.Background(), testBooking()))
	require.Len(t, ch.sent, 1)

	sent := ch.sent[0]
	assert.Equal(t, "rooms.booking", sent.exchange)
	assert.Equal(t, KeyBookingAllocated, sent.key)
	assert.Equal(t, "application/json", sent.msg.ContentType)
	assert.Equal(t, amqp.Persistent, sent.msg.DeliveryMode)

	var event BookingEvent
	require.NoError(t, json.Unmarshal(sent.msg.Body, &event))
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, int64(17), event.BookingID)
	assert.Equal(t, "team", event.RequesterKind)
	assert.Equal(t, "2024-01-10", event.Date)
	assert.Equal(t, "10:00", event.StartTime)
	assert.Equal(t, int64(9), event.ActorID)
	assert.True(t, fixedNow.Equal(event.OccurredAt))
}

func TestPublisher_BookingCancelled(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch, exchange: "rooms.booking", now: func() time.Time { return fixedNow }}

	require.NoError(t, p.BookingCancelled(context.Background(), testBooking(), 1))
	require.Len(t, ch.sent, 1)
	assert.Equal(t, KeyBookingCancelled, ch.sent[0].key)

	var event BookingEvent
	require.NoError(t, json.Unmarshal(ch.sent[0].msg.Body, &event))
	assert.Equal(t, int64(1), event.ActorID)
}

func TestPublisher_ChannelError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel/connection is not open")}
	p := &Publisher{ch: ch, exchange: "rooms.booking", now: time.Now}

	err := p.BookingAllocated(context.Background(), testBooking())
	assert.ErrorIs(t, err, ErrPublish)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestNoop(t *testing.T) {
	var n Noop
	assert.NoError(t, n.BookingAllocated(context.Background(), testBooking()))
	assert.NoError(t, n.BookingCancelled(context.Background(), testBooking(), 1))
	assert.NoError(t, n.Close())
}
