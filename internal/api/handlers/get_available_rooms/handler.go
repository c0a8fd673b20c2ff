package get_available_rooms

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	getAvailableRooms "github.com/m04kA/SMC-RoomBookingService/internal/usecase/get_available_rooms"
)

const (
	msgMissingUserID   = "отсутствует ID пользователя"
	msgMissingParams   = "параметры category, date, start и end обязательны"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime     = "некорректный формат времени, ожидается HH:MM"
	msgInvalidCategory = "неизвестная категория комнаты"
	msgInvalidSlot     = "некорректный слот: начало должно быть раньше конца, в пределах рабочего времени и не в прошлом"
)

type Handler struct {
	useCase GetAvailableRoomsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableRoomsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/available
// Query params: category, date (YYYY-MM-DD), start, end (HH:MM), все обязательны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /rooms/available - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	q := r.URL.Query()
	category, dateStr, startStr, endStr := q.Get("category"), q.Get("date"), q.Get("start"), q.Get("end")
	if category == "" || dateStr == "" || startStr == "" || endStr == "" {
		h.logger.Warn("GET /rooms/available - Missing query params")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	useCaseReq, err := ToUseCaseRequest(actor.UserID, category, dateStr, startStr, endStr)
	if err != nil {
		h.logger.Warn("GET /rooms/available - Failed to parse query: %v", err)
		switch {
		case errors.Is(err, errInvalidCategory):
			handlers.RespondBadRequest(w, msgInvalidCategory)
		case errors.Is(err, errInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)
		default:
			handlers.RespondBadRequest(w, msgInvalidTime)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableRooms.ErrInvalidInput):
			h.logger.Warn("GET /rooms/available - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCategory)

		case errors.Is(err, getAvailableRooms.ErrInvalidSlot):
			h.logger.Warn("GET /rooms/available - Invalid slot: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, getAvailableRooms.ErrStorageUnavailable):
			h.logger.Error("GET /rooms/available - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /rooms/available - Failed to get rooms: category=%s, error=%v", category, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/available - Rooms retrieved successfully: category=%s, date=%s, rooms_count=%d",
		category, dateStr, len(result.Rooms))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
