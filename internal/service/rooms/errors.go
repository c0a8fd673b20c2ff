package rooms

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("rooms.service: room not found")

	// ErrNotAuthorized возвращается, когда операция доступна только администратору
	ErrNotAuthorized = errors.New("rooms.service: not authorized")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("rooms.service: invalid input data")

	// ErrRoomInUse возвращается при удалении комнаты, на которую ссылаются бронирования
	ErrRoomInUse = errors.New("rooms.service: room is referenced by bookings")

	// ErrStorageUnavailable возвращается при ошибках хранилища
	ErrStorageUnavailable = errors.New("rooms.service: storage unavailable")
)
