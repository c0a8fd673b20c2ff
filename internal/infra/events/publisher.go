package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// ErrPublish возвращается при ошибке публикации события
var ErrPublish = errors.New("events: failed to publish")

// channel часть *amqp.Channel, которая нужна публикатору
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher публикует события бронирований в topic exchange RabbitMQ
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       channel
	exchange string
	now      func() time.Time
}

// NewPublisher подключается к RabbitMQ и объявляет exchange
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange, now: time.Now}, nil
}

// BookingAllocated публикует событие о новом бронировании
func (p *Publisher) BookingAllocated(ctx context.Context, b *domain.Booking) error {
	return p.publishJSON(ctx, KeyBookingAllocated, newBookingEvent(KeyBookingAllocated, b, b.CreatedBy, p.now()))
}

// BookingCancelled публикует событие об отмене бронирования
func (p *Publisher) BookingCancelled(ctx context.Context, b *domain.Booking, actorID int64) error {
	return p.publishJSON(ctx, KeyBookingCancelled, newBookingEvent(KeyBookingCancelled, b, actorID, p.now()))
}

func (p *Publisher) publishJSON(ctx context.Context, key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, key, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, key, err)
	}
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Noop публикатор, который ничего не отправляет (events.enabled = false)
type Noop struct{}

// BookingAllocated ничего не делает
func (Noop) BookingAllocated(ctx context.Context, b *domain.Booking) error { return nil }

// BookingCancelled ничего не делает
func (Noop) BookingCancelled(ctx context.Context, b *domain.Booking, actorID int64) error {
	return nil
}

// Close ничего не делает
func (Noop) Close() error { return nil }
