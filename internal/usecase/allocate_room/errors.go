package allocate_room

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("allocate_room: invalid input data")

	// ErrInvalidSlot возвращается, когда слот некорректен или вне рабочего окна
	ErrInvalidSlot = errors.New("allocate_room: invalid slot")

	// ErrNotAuthorized возвращается при попытке бронировать от чужого имени без прав администратора
	ErrNotAuthorized = errors.New("allocate_room: not authorized to book for this requester")

	// ErrRequesterAlreadyBooked возвращается, когда у заявителя уже есть пересекающееся бронирование
	ErrRequesterAlreadyBooked = errors.New("allocate_room: requester already has an overlapping booking")

	// ErrInvalidRequesterForCategory возвращается, когда тип заявителя не допускается категорией
	ErrInvalidRequesterForCategory = errors.New("allocate_room: requester kind is not allowed for this category")

	// ErrTeamTooSmall возвращается, когда в команде меньше участников, чем нужно для переговорной
	ErrTeamTooSmall = errors.New("allocate_room: team is too small for a conference room")

	// ErrTeamNotFound возвращается, когда команда не найдена в справочнике команд
	ErrTeamNotFound = errors.New("allocate_room: team not found")

	// ErrNoRoomAvailable возвращается, когда ни одна комната категории не может принять слот
	ErrNoRoomAvailable = errors.New("allocate_room: no room available")

	// ErrStorageUnavailable возвращается при ошибках хранилища, блокировок и таймаутах
	// Единственная ошибка, которую имеет смысл повторить
	ErrStorageUnavailable = errors.New("allocate_room: storage unavailable")
)

// Значения метки outcome метрики распределения
const (
	outcomeAllocated          = "allocated"
	outcomeInvalid            = "invalid_input"
	outcomeInvalidSlot        = "invalid_slot"
	outcomeNotAuthorized      = "not_authorized"
	outcomeAlreadyBooked      = "already_booked"
	outcomeWrongRequester     = "wrong_requester"
	outcomeTeamTooSmall       = "team_too_small"
	outcomeTeamNotFound       = "team_not_found"
	outcomeNoRoom             = "no_room"
	outcomeStorageUnavailable = "storage_unavailable"
)

// outcomeOf возвращает метку outcome для результата распределения
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeAllocated
	case errors.Is(err, ErrInvalidInput):
		return outcomeInvalid
	case errors.Is(err, ErrInvalidSlot):
		return outcomeInvalidSlot
	case errors.Is(err, ErrNotAuthorized):
		return outcomeNotAuthorized
	case errors.Is(err, ErrRequesterAlreadyBooked):
		return outcomeAlreadyBooked
	case errors.Is(err, ErrInvalidRequesterForCategory):
		return outcomeWrongRequester
	case errors.Is(err, ErrTeamTooSmall):
		return outcomeTeamTooSmall
	case errors.Is(err, ErrTeamNotFound):
		return outcomeTeamNotFound
	case errors.Is(err, ErrNoRoomAvailable):
		return outcomeNoRoom
	default:
		return outcomeStorageUnavailable
	}
}

// isDecision true для ошибок, которые являются решением политики, а не сбоем
func isDecision(err error) bool {
	return outcomeOf(err) != outcomeStorageUnavailable
}
