package get_available_rooms

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// UseCase use case для получения комнат, свободных на слот
// Результат информационный: занятость может измениться до распределения
type UseCase struct {
	bookingRepo   BookingRepository
	roomDirectory RoomDirectory
	txManager     TransactionManager
	cfg           Config
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomDirectory RoomDirectory,
	txManager TransactionManager,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		roomDirectory: roomDirectory,
		txManager:     txManager,
		cfg:           cfg,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения доступных комнат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableRooms: user=%d, category=%s, slot=%s", req.UserID, req.Category, req.Slot)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableRooms: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем слот по тем же правилам, что и при распределении
	now := uc.timeProvider.Now().In(uc.cfg.Location)
	slot := domain.NewSlot(req.Slot.Date, req.Slot.Start, req.Slot.End)
	if err := slot.Validate(uc.cfg.Window, now); err != nil {
		uc.logger.Warn("GetAvailableRooms: invalid slot: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}

	// 3. Комнаты категории
	rooms, err := uc.roomDirectory.GetByCategory(ctx, req.Category)
	if err != nil {
		uc.logger.Error("GetAvailableRooms: failed to get rooms category=%s: %v", req.Category, err)
		return nil, fmt.Errorf("%w: failed to get rooms: %v", ErrStorageUnavailable, err)
	}

	roomIDs := make([]int64, 0, len(rooms))
	for _, room := range rooms {
		roomIDs = append(roomIDs, room.ID)
	}

	// 4. Занятость всех комнат читаем одним снимком
	var counts map[int64]int
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		counts, err = uc.bookingRepo.CountActiveOverlaps(txCtx, roomIDs, slot)
		return err
	})
	if err != nil {
		uc.logger.Error("GetAvailableRooms: failed to count overlaps slot=%s: %v", slot, err)
		return nil, fmt.Errorf("%w: failed to count overlaps: %v", ErrStorageUnavailable, err)
	}

	// 5. Оставляем комнаты, которые ещё могут принять слот
	available := calculateAvailableRooms(rooms, counts)

	uc.logger.Info("GetAvailableRooms: %d of %d rooms available category=%s slot=%s",
		len(available), len(rooms), req.Category, slot)

	return &Response{
		Category: req.Category,
		Slot:     slot,
		Rooms:    available,
	}, nil
}

// calculateAvailableRooms вычисляет свободные места для каждой комнаты
// Комнаты без свободных мест в результат не попадают
func calculateAvailableRooms(rooms []*domain.Room, counts map[int64]int) []Room {
	result := make([]Room, 0, len(rooms))
	for _, room := range rooms {
		overlapping := counts[room.ID]
		if !room.HasRoomFor(overlapping) {
			continue
		}
		result = append(result, Room{
			ID:             room.ID,
			Name:           room.Name,
			Capacity:       room.Capacity,
			AvailableSpots: room.AvailableSpots(overlapping),
			TotalSpots:     room.TotalSpots(),
		})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
