package allocate_room

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/lock"
)

// BookingRepository интерфейс журнала бронирований
// Запросы занятости требуют аренду блокировки соответствующего ключа
type BookingRepository interface {
	Create(ctx context.Context, lease *lock.Lease, booking *domain.Booking) (*domain.Booking, error)
	ActiveOverlaps(ctx context.Context, lease *lock.Lease, roomID int64, slot domain.Slot) ([]*domain.Booking, error)
	RequesterOverlaps(ctx context.Context, lease *lock.Lease, requester domain.Requester, slot domain.Slot) ([]*domain.Booking, error)
}

// RoomDirectory интерфейс справочника комнат
// GetByID вызывается под блокировкой комнаты и должен читать хранилище, а не кэш
type RoomDirectory interface {
	GetByCategory(ctx context.Context, category domain.RoomCategory) ([]*domain.Room, error)
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// TeamDirectory интерфейс справочника команд
type TeamDirectory interface {
	GetTeam(ctx context.Context, teamID int64) (*domain.Team, error)
}

// Locker интерфейс транзакционных блокировок
type Locker interface {
	Acquire(ctx context.Context, key lock.Key) (*lock.Lease, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	BookingAllocated(ctx context.Context, booking *domain.Booking) error
}

// MetricsRecorder интерфейс сбора метрик распределения
type MetricsRecorder interface {
	ObserveAllocation(category, outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
