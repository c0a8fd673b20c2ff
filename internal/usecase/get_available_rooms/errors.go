package get_available_rooms

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_rooms: invalid input data")

	// ErrInvalidSlot возвращается, когда слот некорректен или вне рабочего окна
	ErrInvalidSlot = errors.New("get_available_rooms: invalid slot")

	// ErrStorageUnavailable возвращается при ошибках хранилища
	ErrStorageUnavailable = errors.New("get_available_rooms: storage unavailable")
)
