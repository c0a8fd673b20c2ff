package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда активное бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrLeaseRequired возвращается, когда запрос занятости выполняется без блокировки ключа
	ErrLeaseRequired = errors.New("booking.repository: occupancy query requires a lock lease")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrInvalidRequester возвращается, когда в строке заданы оба или ни одного заявителя
	ErrInvalidRequester = errors.New("booking.repository: row must reference exactly one requester")
)
