package rooms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms/models"
)

// Service сервис администрирования комнат
type Service struct {
	roomRepo  RoomRepository
	directory RoomDirectory
	cache     CacheInvalidator
	logger    Logger
}

// NewService создает новый экземпляр сервиса комнат
// cache может быть nil, если кэш справочника отключен
func NewService(
	roomRepo RoomRepository,
	directory RoomDirectory,
	cache CacheInvalidator,
	logger Logger,
) *Service {
	return &Service{
		roomRepo:  roomRepo,
		directory: directory,
		cache:     cache,
		logger:    logger,
	}
}

// List получает все комнаты по возрастанию ID
// Публичный метод - доступен всем
func (s *Service) List(ctx context.Context) (*models.RoomListResponse, error) {
	rooms, err := s.directory.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrStorageUnavailable, err)
	}

	s.logger.Info("List: fetched %d rooms", len(rooms))
	return models.FromDomainRoomList(rooms), nil
}

// Create создает комнату
// Доступно только администратору
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateRoomRequest) (*models.RoomResponse, error) {
	s.logger.Info("Create: creating room name=%q category=%s capacity=%d by user=%d",
		req.Name, req.Category, req.Capacity, actor.UserID)

	if !actor.IsAdmin {
		s.logger.Warn("Create: user=%d is not an admin", actor.UserID)
		return nil, ErrNotAuthorized
	}

	room := req.ToDomainRoom()
	room.Name = strings.TrimSpace(room.Name)
	if err := room.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.roomRepo.Create(ctx, room)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrStorageUnavailable, err)
	}

	s.invalidate(ctx, created.ID)

	s.logger.Info("Create: successfully created room id=%d", created.ID)
	return models.FromDomainRoom(created), nil
}

// Update частично обновляет комнату
// Доступно только администратору. Уже созданные бронирования не пересматриваются
func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateRoomRequest) (*models.RoomResponse, error) {
	s.logger.Info("Update: updating room id=%d by user=%d", id, actor.UserID)

	if !actor.IsAdmin {
		s.logger.Warn("Update: user=%d is not an admin", actor.UserID)
		return nil, ErrNotAuthorized
	}

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	// Читаем из хранилища, а не из кэша, чтобы не перезаписать свежие данные
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}

	updated := *room
	req.ApplyTo(&updated)
	updated.Name = strings.TrimSpace(updated.Name)
	if err := updated.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for room id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.roomRepo.Update(ctx, &updated)
	if err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}

	s.invalidate(ctx, id)

	s.logger.Info("Update: successfully updated room id=%d", id)
	return models.FromDomainRoom(saved), nil
}

// Delete удаляет комнату без бронирований
// Доступно только администратору
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("Delete: deleting room id=%d by user=%d", id, actor.UserID)

	if !actor.IsAdmin {
		s.logger.Warn("Delete: user=%d is not an admin", actor.UserID)
		return ErrNotAuthorized
	}

	if err := s.roomRepo.Delete(ctx, id); err != nil {
		return s.mapRepoError("Delete", id, err)
	}

	s.invalidate(ctx, id)

	s.logger.Info("Delete: successfully deleted room id=%d", id)
	return nil
}

func (s *Service) invalidate(ctx context.Context, id int64) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, roomRepo.ErrRoomNotFound):
		s.logger.Warn("%s: room id=%d not found", op, id)
		return ErrRoomNotFound
	case errors.Is(err, roomRepo.ErrRoomInUse):
		s.logger.Warn("%s: room id=%d is referenced by bookings", op, id)
		return ErrRoomInUse
	default:
		s.logger.Error("%s: repository error for room id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrStorageUnavailable, op, err)
	}
}
