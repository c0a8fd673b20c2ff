package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

// Config ограничения сервиса бронирований
type Config struct {
	TxTimeout time.Duration // Предел ожидания блокировки строки и запросов к хранилищу
}

// DefaultConfig ограничения по умолчанию
func DefaultConfig() Config {
	return Config{TxTimeout: 5 * time.Second}
}

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	publisher   EventPublisher
	metrics     MetricsRecorder
	cfg         Config
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsRecorder,
	cfg Config,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		publisher:   publisher,
		metrics:     metrics,
		cfg:         cfg,
		logger:      logger,
	}
}

// GetByID получает активное бронирование по ID
// Видеть бронирование может владелец (пользователь или его команда) и администратор
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.TxTimeout)
	defer cancel()

	booking, err := s.bookingRepo.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrStorageUnavailable, err)
	}

	if !actor.CanActFor(booking.Requester) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, ErrNotAuthorized
	}

	return models.FromDomainBooking(booking), nil
}

// ListActive получает активные бронирования по времени создания
// Без фильтра администратор видит все бронирования, пользователь только свои
func (s *Service) ListActive(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListActive: user=%d, admin=%t, requester=%v", req.Actor.UserID, req.Actor.IsAdmin, req.Requester)

	if req.Requester != nil {
		if err := req.Requester.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if !req.Actor.CanActFor(*req.Requester) {
			s.logger.Warn("ListActive: user=%d cannot list bookings of %s", req.Actor.UserID, req.Requester)
			return nil, ErrNotAuthorized
		}
	} else if !req.Actor.IsAdmin {
		own := domain.Individual(req.Actor.UserID)
		req.Requester = &own
	}

	filter := req.ToDomainFilter()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.TxTimeout)
	defer cancel()

	bookings, err := s.bookingRepo.ListActive(ctx, filter)
	if err != nil {
		s.logger.Error("ListActive: repository error for user=%d: %v", req.Actor.UserID, err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrStorageUnavailable, err)
	}

	s.logger.Info("ListActive: fetched %d bookings for user=%d", len(bookings), req.Actor.UserID)
	return models.FromDomainBookingList(bookings, filter), nil
}

// Cancel отменяет активное бронирование
// Права проверяются по состоянию строки, заблокированной в той же транзакции
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, bookingID int64) (*models.BookingResponse, error) {
	cancelled, err := s.cancel(ctx, actor, bookingID)
	s.metrics.ObserveCancellation(outcomeOf(err))
	if err != nil {
		return nil, err
	}

	if err := s.publisher.BookingCancelled(ctx, cancelled, actor.UserID); err != nil {
		s.logger.Warn("Cancel: failed to publish event for booking id=%d: %v", bookingID, err)
	}

	return models.FromDomainBooking(cancelled), nil
}

func (s *Service) cancel(ctx context.Context, actor domain.Actor, bookingID int64) (*domain.Booking, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, actor.UserID)

	// Ожидание блокировки строки ограничено, как и вся транзакция
	txCtx, cancel := context.WithTimeout(ctx, s.cfg.TxTimeout)
	defer cancel()

	var cancelled *domain.Booking
	err := s.txManager.Do(txCtx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetActiveByID(txCtx, bookingID)
		if err != nil {
			return err
		}

		if !actor.CanActFor(booking.Requester) {
			return ErrNotAuthorized
		}

		cancelled, err = s.bookingRepo.Cancel(txCtx, booking)
		return err
	})

	switch {
	case err == nil:
		s.logger.Info("Cancel: booking id=%d cancelled by user=%d", bookingID, actor.UserID)
		return cancelled, nil
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("Cancel: booking id=%d not found", bookingID)
		return nil, ErrBookingNotFound
	case errors.Is(err, ErrNotAuthorized):
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", actor.UserID, bookingID)
		return nil, ErrNotAuthorized
	default:
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrStorageUnavailable, err)
	}
}
