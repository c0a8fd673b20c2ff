package teamservice

import "errors"

var (
	// ErrTeamNotFound возвращается, когда команда не найдена
	ErrTeamNotFound = errors.New("team not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("teamservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("teamservice client: invalid response")

	// ErrServiceUnavailable возвращается, когда TeamService недоступен
	// (сетевая ошибка, таймаут, 5xx)
	ErrServiceUnavailable = errors.New("teamservice unavailable")
)
