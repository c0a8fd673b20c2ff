package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/lock"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

// bookingColumns колонки бронирования вместе с денормализованными данными комнаты
var bookingColumns = []string{
	"b.id",
	"b.room_id",
	"b.user_id",
	"b.team_id",
	"b.booking_date",
	"b.start_time",
	"b.end_time",
	"b.state",
	"b.created_by",
	"r.name",
	"r.category",
	"b.cancelled_at",
	"b.created_at",
	"b.updated_at",
}

// Repository журнал бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает новое активное бронирование
// lease должна покрывать (комнату, дату) бронирования в текущей транзакции
func (r *Repository) Create(ctx context.Context, lease *lock.Lease, booking *domain.Booking) (*domain.Booking, error) {
	if err := lease.Check(ctx, lock.RoomDayKey(booking.RoomID, booking.Slot.Date)); err != nil {
		return nil, fmt.Errorf("%w: Create - %v", ErrLeaseRequired, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)
	userID, teamID := requesterColumns(booking.Requester)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"room_id",
			"user_id",
			"team_id",
			"booking_date",
			"start_time",
			"end_time",
			"state",
			"created_by",
		).
		Values(
			booking.RoomID,
			userID,
			teamID,
			booking.Slot.Date,
			booking.Slot.Start,
			booking.Slot.End,
			domain.StateActive,
			booking.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.State = domain.StateActive
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// ActiveOverlaps возвращает активные бронирования комнаты, пересекающие слот,
// упорядоченные по времени начала
// lease должна покрывать (roomID, slot.Date) в текущей транзакции
func (r *Repository) ActiveOverlaps(ctx context.Context, lease *lock.Lease, roomID int64, slot domain.Slot) ([]*domain.Booking, error) {
	if err := lease.Check(ctx, lock.RoomDayKey(roomID, slot.Date)); err != nil {
		return nil, fmt.Errorf("%w: ActiveOverlaps - %v", ErrLeaseRequired, err)
	}

	return r.selectOverlaps(ctx, "ActiveOverlaps", squirrel.Eq{"b.room_id": roomID}, slot)
}

// RequesterOverlaps возвращает активные бронирования заявителя во всех комнатах,
// пересекающие слот
// lease должна покрывать (заявитель, slot.Date) в текущей транзакции
func (r *Repository) RequesterOverlaps(ctx context.Context, lease *lock.Lease, requester domain.Requester, slot domain.Slot) ([]*domain.Booking, error) {
	if err := lease.Check(ctx, lock.RequesterDayKey(requester, slot.Date)); err != nil {
		return nil, fmt.Errorf("%w: RequesterOverlaps - %v", ErrLeaseRequired, err)
	}

	return r.selectOverlaps(ctx, "RequesterOverlaps", requesterPredicate(requester), slot)
}

func (r *Repository) selectOverlaps(ctx context.Context, op string, pred squirrel.Sqlizer, slot domain.Slot) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(pred).
		Where(overlapPredicate(slot)).
		OrderBy("b.start_time ASC", "b.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountActiveOverlaps считает активные пересечения слота по каждой комнате
// Результат не авторитетен: используется только для списка доступных комнат
func (r *Repository) CountActiveOverlaps(ctx context.Context, roomIDs []int64, slot domain.Slot) (map[int64]int, error) {
	counts := make(map[int64]int, len(roomIDs))
	if len(roomIDs) == 0 {
		return counts, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("b.room_id", "COUNT(*)").
		From("bookings b").
		Where(squirrel.Eq{"b.room_id": roomIDs}).
		Where(overlapPredicate(slot)).
		GroupBy("b.room_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveOverlaps - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveOverlaps - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var roomID int64
		var count int
		if err := rows.Scan(&roomID, &count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveOverlaps - scan row: %v", ErrScanRow, err)
		}
		counts[roomID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveOverlaps - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// GetActiveByID получает активное бронирование по ID
// Отменённые бронирования считаются отсутствующими.
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции
func (r *Repository) GetActiveByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectBookings().
		Where(squirrel.Eq{"b.id": id, "b.state": domain.StateActive})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// Cancel переводит бронирование из active в cancelled
// Обновляется только активная строка; если её нет, возвращается ErrBookingNotFound
func (r *Repository) Cancel(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("state", domain.StateCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID, "state": domain.StateActive}).
		Suffix("RETURNING cancelled_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	var cancelledAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&cancelledAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	booking.State = domain.StateCancelled
	if cancelledAt.Valid {
		t := cancelledAt.Time
		booking.CancelledAt = &t
	}
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// ListActive получает активные бронирования, упорядоченные по времени создания
func (r *Repository) ListActive(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	filter = filter.Normalize()

	selectBuilder := selectBookings().
		Where(squirrel.Eq{"b.state": domain.StateActive})

	if filter.Requester != nil {
		selectBuilder = selectBuilder.Where(requesterPredicate(*filter.Requester))
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.booking_date": domain.DateOnly(*filter.Date)})
	}
	if filter.RoomID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.room_id": *filter.RoomID})
	}

	query, args, err := selectBuilder.
		OrderBy("b.created_at ASC", "b.id ASC").
		Offset(uint64(filter.Skip)).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("rooms r ON r.id = b.room_id")
}

// overlapPredicate активные бронирования той же даты, пересекающие слот:
// start < slot.End AND end > slot.Start
func overlapPredicate(slot domain.Slot) squirrel.Sqlizer {
	return squirrel.And{
		squirrel.Eq{"b.booking_date": slot.Date, "b.state": domain.StateActive},
		squirrel.Lt{"b.start_time": slot.End},
		squirrel.Gt{"b.end_time": slot.Start},
	}
}

func requesterPredicate(requester domain.Requester) squirrel.Sqlizer {
	if requester.IsTeam() {
		return squirrel.Eq{"b.team_id": requester.ID}
	}
	return squirrel.Eq{"b.user_id": requester.ID}
}

// requesterColumns раскладывает заявителя по взаимоисключающим колонкам
func requesterColumns(requester domain.Requester) (userID, teamID sql.NullInt64) {
	if requester.IsTeam() {
		return sql.NullInt64{}, sql.NullInt64{Int64: requester.ID, Valid: true}
	}
	return sql.NullInt64{Int64: requester.ID, Valid: true}, sql.NullInt64{}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var userID, teamID sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.RoomID,
		&userID,
		&teamID,
		&booking.Slot.Date,
		&booking.Slot.Start,
		&booking.Slot.End,
		&booking.State,
		&booking.CreatedBy,
		&booking.RoomName,
		&booking.RoomCategory,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	switch {
	case userID.Valid && !teamID.Valid:
		booking.Requester = domain.Individual(userID.Int64)
	case teamID.Valid && !userID.Valid:
		booking.Requester = domain.TeamRequester(teamID.Int64)
	default:
		return nil, fmt.Errorf("%w: booking %d", ErrInvalidRequester, booking.ID)
	}

	booking.Slot.Date = domain.DateOnly(booking.Slot.Date)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
