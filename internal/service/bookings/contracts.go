package bookings

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByID(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListActive(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	BookingCancelled(ctx context.Context, booking *domain.Booking, actorID int64) error
}

// MetricsRecorder интерфейс сбора метрик отмены
type MetricsRecorder interface {
	ObserveCancellation(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
