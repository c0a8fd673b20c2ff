package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "отменить бронирование может только владелец или администратор"
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

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
// Также обслуживает DELETE /api/v1/bookings/{bookingId}: бронирование не удаляется, а отменяется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s /bookings/{id} - Invalid booking ID: %v", r.Method, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("%s /bookings/{id} - Missing user ID", r.Method)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Cancel(r.Context(), actor, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("%s /bookings/{id} - Booking not found: booking_id=%d", r.Method, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrNotAuthorized):
			h.logger.Warn("%s /bookings/{id} - Access denied: booking_id=%d, user_id=%d", r.Method, bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrStorageUnavailable):
			h.logger.Error("%s /bookings/{id} - Storage unavailable: booking_id=%d, error=%v", r.Method, bookingID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("%s /bookings/{id} - Failed to cancel booking: booking_id=%d, error=%v", r.Method, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s /bookings/{id} - Booking cancelled successfully: booking_id=%d, user_id=%d",
		r.Method, bookingID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
