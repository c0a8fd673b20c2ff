package allocate_room

import (
	"context"

	allocateRoom "github.com/m04kA/SMC-RoomBookingService/internal/usecase/allocate_room"
)

type AllocateRoomUseCase interface {
	Execute(ctx context.Context, req *allocateRoom.Request) (*allocateRoom.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
