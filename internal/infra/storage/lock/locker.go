package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

// pqLockNotAvailable код ошибки Postgres при истечении lock_timeout
const pqLockNotAvailable = "55P03"

// Locker берёт транзакционные advisory-блокировки Postgres
// Блокировка освобождается при COMMIT или ROLLBACK транзакции
type Locker struct {
	lockTimeout time.Duration
}

// NewLocker создает новый экземпляр Locker
// lockTimeout: максимальное ожидание блокировки (0 - без ограничения, только контекст)
func NewLocker(lockTimeout time.Duration) *Locker {
	return &Locker{lockTimeout: lockTimeout}
}

// Acquire блокирует key в транзакции из ctx и возвращает аренду
// Повторный захват того же ключа в той же транзакции не блокируется
func (l *Locker) Acquire(ctx context.Context, key Key) (*Lease, error) {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoTransaction, key)
	}

	if l.lockTimeout > 0 {
		// SET не принимает параметры, значение - целое число миллисекунд
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", l.lockTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("%w: Acquire - set lock_timeout: %v", ErrAcquire, err)
		}
	}

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("pg_advisory_xact_lock(hashtextextended(?, 0))", string(key))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Acquire - build query: %v", ErrAcquire, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isTimeout(ctx, err) {
			return nil, fmt.Errorf("%w: %s: %v", ErrTimeout, key, err)
		}
		return nil, fmt.Errorf("%w: Acquire %s: %v", ErrAcquire, key, err)
	}

	return NewLease(ctx, key), nil
}

func isTimeout(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqLockNotAvailable
}
