package delete_room

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

type RoomService interface {
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
