package allocate_room

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/lock"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	teamClient "github.com/m04kA/SMC-RoomBookingService/internal/integrations/teamservice"
)

// UseCase use case распределения комнаты
type UseCase struct {
	bookingRepo   BookingRepository
	roomDirectory RoomDirectory
	teamDirectory TeamDirectory
	locker        Locker
	txManager     TransactionManager
	publisher     EventPublisher
	metrics       MetricsRecorder
	cfg           Config
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomDirectory RoomDirectory,
	teamDirectory TeamDirectory,
	locker Locker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsRecorder,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		roomDirectory: roomDirectory,
		teamDirectory: teamDirectory,
		locker:        locker,
		txManager:     txManager,
		publisher:     publisher,
		metrics:       metrics,
		cfg:           cfg,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case распределения комнаты
// Проверки идут в порядке: слот, самопересечение заявителя, правила категории, поиск комнаты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.allocate(ctx, req)
	uc.metrics.ObserveAllocation(string(req.Category), outcomeOf(err))
	return resp, err
}

func (uc *UseCase) allocate(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AllocateRoom: actor=%d, requester=%s, category=%s, slot=%s",
		req.Actor.UserID, req.Requester, req.Category, req.Slot)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AllocateRoom: validation failed: %v", err)
		return nil, err
	}

	policy, err := policyFor(req.Category)
	if err != nil {
		return nil, err
	}

	// 2. Бронировать от чужого имени может только администратор
	if !req.Actor.CanActFor(req.Requester) {
		uc.logger.Warn("AllocateRoom: actor=%d is not allowed to book for %s", req.Actor.UserID, req.Requester)
		return nil, ErrNotAuthorized
	}

	// 3. Проверяем слот в часовом поясе площадки
	now := uc.timeProvider.Now().In(uc.cfg.Location)
	slot := domain.NewSlot(req.Slot.Date, req.Slot.Start, req.Slot.End)
	if err := slot.Validate(uc.cfg.Window, now); err != nil {
		uc.logger.Warn("AllocateRoom: invalid slot: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}

	// 4. Состав команды загружаем до транзакции, чтобы не держать блокировки во время сетевого вызова
	adm := admission{requester: req.Requester}
	if policy.needsTeam(req.Requester) {
		team, err := uc.teamDirectory.GetTeam(ctx, req.Requester.ID)
		switch {
		case err == nil:
			adm.team = team
		case errors.Is(err, teamClient.ErrTeamNotFound):
			// Решение принимается после проверки самопересечения
			uc.logger.Warn("AllocateRoom: team id=%d not found", req.Requester.ID)
		default:
			uc.logger.Error("AllocateRoom: failed to get team id=%d: %v", req.Requester.ID, err)
			return nil, fmt.Errorf("%w: failed to get team: %v", ErrStorageUnavailable, err)
		}
	}

	// 5. Проверка и запись в одной ограниченной по времени транзакции
	txCtx, cancel := context.WithTimeout(ctx, uc.cfg.TxTimeout)
	defer cancel()

	var created *domain.Booking
	err = uc.txManager.Do(txCtx, func(txCtx context.Context) error {
		var err error
		created, err = uc.allocateInTx(txCtx, req, slot, policy, adm)
		return err
	})
	if err != nil {
		if isDecision(err) {
			uc.logger.Warn("AllocateRoom: rejected requester=%s slot=%s: %v", req.Requester, slot, err)
			return nil, err
		}
		uc.logger.Error("AllocateRoom: transaction failed for requester=%s slot=%s: %v", req.Requester, slot, err)
		if errors.Is(err, ErrStorageUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	uc.logger.Info("AllocateRoom: booking id=%d allocated room=%d for requester=%s", created.ID, created.RoomID, created.Requester)

	// 6. Событие публикуется после фиксации и на решение не влияет
	if err := uc.publisher.BookingAllocated(ctx, created); err != nil {
		uc.logger.Warn("AllocateRoom: failed to publish event for booking id=%d: %v", created.ID, err)
	}

	return toResponse(created), nil
}

// allocateInTx принимает решение под блокировками
// Порядок блокировок: сначала (заявитель, дата), затем комнаты по возрастанию ID
func (uc *UseCase) allocateInTx(
	ctx context.Context,
	req *Request,
	slot domain.Slot,
	policy categoryPolicy,
	adm admission,
) (*domain.Booking, error) {
	requesterLease, err := uc.locker.Acquire(ctx, lock.RequesterDayKey(req.Requester, slot.Date))
	if err != nil {
		return nil, fmt.Errorf("%w: lock requester: %v", ErrStorageUnavailable, err)
	}

	own, err := uc.bookingRepo.RequesterOverlaps(ctx, requesterLease, req.Requester, slot)
	if err != nil {
		return nil, fmt.Errorf("%w: requester overlaps: %v", ErrStorageUnavailable, err)
	}
	if len(own) > 0 {
		return nil, fmt.Errorf("%w: booking id=%d room=%d %s",
			ErrRequesterAlreadyBooked, own[0].ID, own[0].RoomID, own[0].Slot)
	}

	if err := policy.admit(adm, uc.cfg); err != nil {
		return nil, err
	}

	rooms, err := uc.roomDirectory.GetByCategory(ctx, req.Category)
	if err != nil {
		return nil, fmt.Errorf("%w: rooms by category: %v", ErrStorageUnavailable, err)
	}

	candidates := make([]*domain.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.Category == req.Category && policy.fits(room, adm, uc.cfg) {
			candidates = append(candidates, room)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })

	for _, room := range candidates {
		roomLease, err := uc.locker.Acquire(ctx, lock.RoomDayKey(room.ID, slot.Date))
		if err != nil {
			return nil, fmt.Errorf("%w: lock room %d: %v", ErrStorageUnavailable, room.ID, err)
		}

		// Вместимость берём на момент выдачи, а не из списка кандидатов
		current, err := uc.roomDirectory.GetByID(ctx, room.ID)
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("AllocateRoom: room id=%d removed after listing", room.ID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reload room %d: %v", ErrStorageUnavailable, room.ID, err)
		}
		if current.Category != req.Category || !policy.fits(current, adm, uc.cfg) {
			continue
		}

		overlaps, err := uc.bookingRepo.ActiveOverlaps(ctx, roomLease, current.ID, slot)
		if err != nil {
			return nil, fmt.Errorf("%w: active overlaps room %d: %v", ErrStorageUnavailable, current.ID, err)
		}
		if !current.HasRoomFor(len(overlaps)) {
			continue
		}

		booking := &domain.Booking{
			RoomID:       current.ID,
			Requester:    req.Requester,
			Slot:         slot,
			State:        domain.StateActive,
			CreatedBy:    req.Actor.UserID,
			RoomName:     current.Name,
			RoomCategory: current.Category,
		}

		created, err := uc.bookingRepo.Create(ctx, roomLease, booking)
		if err != nil {
			return nil, fmt.Errorf("%w: create booking: %v", ErrStorageUnavailable, err)
		}
		return created, nil
	}

	return nil, fmt.Errorf("%w: category=%s slot=%s, %d candidates", ErrNoRoomAvailable, req.Category, slot, len(candidates))
}
