package lock

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
)

// Lease подтверждение того, что ключ заблокирован в текущей транзакции
// Запросы занятости принимают Lease и отказываются работать без него,
// поэтому прочитать занятость до захвата блокировки нельзя
type Lease struct {
	key Key
	tx  dbmetrics.TxExecutor
}

// NewLease создает аренду ключа для транзакции из ctx
// Используется Locker'ом и тестовыми реализациями блокировок
func NewLease(ctx context.Context, key Key) *Lease {
	tx, _ := dbmetrics.TxFromContext(ctx)
	return &Lease{key: key, tx: tx}
}

// Key возвращает заблокированный ключ
func (l *Lease) Key() Key {
	return l.key
}

// Check проверяет, что аренда покрывает key и выдана транзакции из ctx
func (l *Lease) Check(ctx context.Context, key Key) error {
	if l == nil {
		return fmt.Errorf("%w: no lease for %s", ErrLeaseMismatch, key)
	}
	if l.key != key {
		return fmt.Errorf("%w: lease %s used for %s", ErrLeaseMismatch, l.key, key)
	}
	tx, _ := dbmetrics.TxFromContext(ctx)
	if tx != l.tx {
		return fmt.Errorf("%w: lease %s belongs to another transaction", ErrLeaseMismatch, key)
	}
	return nil
}
