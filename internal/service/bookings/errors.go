package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда активное бронирование не найдено
	// Отменённые бронирования тоже считаются ненайденными
	ErrBookingNotFound = errors.New("bookings.service: booking not found")

	// ErrNotAuthorized возвращается, когда пользователь не владелец бронирования и не администратор
	ErrNotAuthorized = errors.New("bookings.service: not authorized")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings.service: invalid input data")

	// ErrStorageUnavailable возвращается при ошибках хранилища
	ErrStorageUnavailable = errors.New("bookings.service: storage unavailable")
)

// Значения метки outcome метрики отмены
const (
	outcomeCancelled          = "cancelled"
	outcomeNotFound           = "not_found"
	outcomeNotAuthorized      = "not_authorized"
	outcomeStorageUnavailable = "storage_unavailable"
)

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeCancelled
	case errors.Is(err, ErrBookingNotFound):
		return outcomeNotFound
	case errors.Is(err, ErrNotAuthorized):
		return outcomeNotAuthorized
	default:
		return outcomeStorageUnavailable
	}
}
