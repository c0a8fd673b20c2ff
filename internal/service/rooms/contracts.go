package rooms

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// RoomRepository интерфейс репозитория комнат (запись)
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)
	Update(ctx context.Context, room *domain.Room) (*domain.Room, error)
	Delete(ctx context.Context, id int64) error
}

// RoomDirectory интерфейс справочника комнат (чтение, может быть закэширован)
type RoomDirectory interface {
	List(ctx context.Context) ([]*domain.Room, error)
}

// CacheInvalidator сбрасывает кэш справочника после изменений
type CacheInvalidator interface {
	Invalidate(ctx context.Context, roomIDs ...int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
