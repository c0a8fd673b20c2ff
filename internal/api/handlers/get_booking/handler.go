package get_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
)

const (
	msgMissingUserID    = "отсутствует ID пользователя"
	msgInvalidBookingID = "ID бронирования должен быть положительным числом"
	msgBookingNotFound  = "бронирование комнаты не найдено"
	msgNotVisible       = "бронирование принадлежит другому заявителю"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
// Бронирование видно заявителю, его команде и администратору
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{bookingId} - Unauthenticated request")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{bookingId} - Rejected: user_id=%d, error=%v", actor.UserID, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), actor, bookingID)
	switch {
	case err == nil:
		h.logger.Info("GET /bookings/{bookingId} - Booking returned: booking_id=%d, room_id=%d, state=%s",
			booking.ID, booking.RoomID, booking.State)
		handlers.RespondJSON(w, http.StatusOK, booking)

	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("GET /bookings/{bookingId} - No such booking: booking_id=%d", bookingID)
		handlers.RespondNotFound(w, msgBookingNotFound)

	case errors.Is(err, bookings.ErrNotAuthorized):
		h.logger.Warn("GET /bookings/{bookingId} - Hidden from user: booking_id=%d, user_id=%d", bookingID, actor.UserID)
		handlers.RespondForbidden(w, msgNotVisible)

	case errors.Is(err, bookings.ErrStorageUnavailable):
		h.logger.Error("GET /bookings/{bookingId} - Storage unavailable: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondServiceUnavailable(w)

	default:
		h.logger.Error("GET /bookings/{bookingId} - Lookup failed: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
	}
}
