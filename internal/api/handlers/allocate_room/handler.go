package allocate_room

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	allocateRoom "github.com/m04kA/SMC-RoomBookingService/internal/usecase/allocate_room"
)

const (
	msgMissingUserID          = "отсутствует ID пользователя"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidCategory        = "неизвестная категория комнаты, ожидается private, conference или shared"
	msgInvalidDate            = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime            = "некорректный формат времени, ожидается HH:MM"
	msgInvalidRequester       = "некорректный заявитель"
	msgInvalidInput           = "некорректные данные запроса"
	msgInvalidSlot            = "некорректный слот: начало должно быть раньше конца, в пределах рабочего времени и не в прошлом"
	msgNotAuthorized          = "бронировать от имени другого заявителя может только администратор"
	msgAlreadyBooked          = "у заявителя уже есть бронирование на пересекающееся время"
	msgWrongRequesterCategory = "этот тип заявителя не может бронировать комнаты выбранной категории"
	msgTeamTooSmall           = "в команде недостаточно участников для переговорной"
	msgTeamNotFound           = "команда не найдена"
	msgNoRoomAvailable        = "нет свободных комнат выбранной категории на это время"
)

type Handler struct {
	useCase AllocateRoomUseCase
	logger  Logger
}

func NewHandler(useCase AllocateRoomUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AllocateRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		switch {
		case errors.Is(err, errInvalidCategory):
			handlers.RespondBadRequest(w, msgInvalidCategory)
		case errors.Is(err, errInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)
		case errors.Is(err, errInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTime)
		default:
			handlers.RespondBadRequest(w, msgInvalidRequester)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, allocateRoom.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, allocateRoom.ErrInvalidSlot):
			h.logger.Warn("POST /bookings - Invalid slot: user_id=%d, slot=%s", actor.UserID, useCaseReq.Slot)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, allocateRoom.ErrNotAuthorized):
			h.logger.Warn("POST /bookings - Not authorized: user_id=%d, requester=%s", actor.UserID, useCaseReq.Requester)
			handlers.RespondForbidden(w, msgNotAuthorized)

		case errors.Is(err, allocateRoom.ErrRequesterAlreadyBooked):
			h.logger.Warn("POST /bookings - Requester already booked: requester=%s, slot=%s", useCaseReq.Requester, useCaseReq.Slot)
			handlers.RespondConflict(w, msgAlreadyBooked)

		case errors.Is(err, allocateRoom.ErrInvalidRequesterForCategory):
			h.logger.Warn("POST /bookings - Requester not allowed: requester=%s, category=%s", useCaseReq.Requester, useCaseReq.Category)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgWrongRequesterCategory)

		case errors.Is(err, allocateRoom.ErrTeamTooSmall):
			h.logger.Warn("POST /bookings - Team too small: requester=%s", useCaseReq.Requester)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgTeamTooSmall)

		case errors.Is(err, allocateRoom.ErrTeamNotFound):
			h.logger.Warn("POST /bookings - Team not found: requester=%s", useCaseReq.Requester)
			handlers.RespondNotFound(w, msgTeamNotFound)

		case errors.Is(err, allocateRoom.ErrNoRoomAvailable):
			h.logger.Warn("POST /bookings - No room available: category=%s, slot=%s", useCaseReq.Category, useCaseReq.Slot)
			handlers.RespondConflict(w, msgNoRoomAvailable)

		case errors.Is(err, allocateRoom.ErrStorageUnavailable):
			h.logger.Error("POST /bookings - Storage unavailable: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings - Failed to allocate room: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Room allocated successfully: booking_id=%d, room_id=%d, requester=%s",
		result.ID, result.RoomID, result.Requester)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
