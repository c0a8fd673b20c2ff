package delete_room

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms"
)

const (
	msgInvalidRoomID = "некорректный ID комнаты"
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "комната не найдена"
	msgForbidden     = "управлять комнатами может только администратор"
	msgRoomInUse     = "на комнату есть бронирования, удаление невозможно"
)

type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/rooms/{roomId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := handlers.PathID(r, "roomId")
	if err != nil {
		h.logger.Warn("DELETE /rooms/{id} - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /rooms/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), actor, roomID); err != nil {
		switch {
		case errors.Is(err, rooms.ErrNotAuthorized):
			h.logger.Warn("DELETE /rooms/{id} - Access denied: room_id=%d, user_id=%d", roomID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rooms.ErrRoomNotFound):
			h.logger.Warn("DELETE /rooms/{id} - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rooms.ErrRoomInUse):
			h.logger.Warn("DELETE /rooms/{id} - Room in use: room_id=%d", roomID)
			handlers.RespondConflict(w, msgRoomInUse)

		case errors.Is(err, rooms.ErrStorageUnavailable):
			h.logger.Error("DELETE /rooms/{id} - Storage unavailable: room_id=%d, error=%v", roomID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("DELETE /rooms/{id} - Failed to delete room: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /rooms/{id} - Room deleted successfully: room_id=%d", roomID)
	w.WriteHeader(http.StatusNoContent)
}
