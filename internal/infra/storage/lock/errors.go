package lock

import "errors"

var (
	// ErrNoTransaction возвращается при попытке взять блокировку вне транзакции
	ErrNoTransaction = errors.New("lock: advisory lock requires a transaction")

	// ErrAcquire возвращается при ошибке захвата блокировки
	ErrAcquire = errors.New("lock: failed to acquire advisory lock")

	// ErrTimeout возвращается, когда блокировку не удалось получить за lock_timeout
	ErrTimeout = errors.New("lock: timed out waiting for advisory lock")

	// ErrLeaseMismatch возвращается, когда переданная аренда не покрывает ключ
	// или принадлежит другой транзакции
	ErrLeaseMismatch = errors.New("lock: lease does not cover the key in this transaction")
)
