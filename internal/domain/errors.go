package domain

import "errors"

var (
	// ErrInvalidSlot возвращается, когда слот некорректен: начало не раньше конца,
	// выход за рабочее окно или дата в прошлом
	ErrInvalidSlot = errors.New("domain: invalid slot")

	// ErrUnknownCategory возвращается для неизвестной категории комнаты
	ErrUnknownCategory = errors.New("domain: unknown room category")

	// ErrInvalidRequester возвращается для неизвестного типа заявителя или пустого ID
	ErrInvalidRequester = errors.New("domain: invalid requester")

	// ErrInvalidRoom возвращается при некорректных данных комнаты
	ErrInvalidRoom = errors.New("domain: invalid room")
)
