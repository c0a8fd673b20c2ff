package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Routing keys событий бронирования
const (
	KeyBookingAllocated = "booking.allocated"
	KeyBookingCancelled = "booking.cancelled"
)

// BookingEvent событие жизненного цикла бронирования
type BookingEvent struct {
	EventID       string    `json:"event_id"`
	Type          string    `json:"type"`
	BookingID     int64     `json:"booking_id"`
	RoomID        int64     `json:"room_id"`
	RoomCategory  string    `json:"room_category"`
	RequesterKind string    `json:"requester_kind"`
	RequesterID   int64     `json:"requester_id"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	ActorID       int64     `json:"actor_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func newBookingEvent(eventType string, b *domain.Booking, actorID int64, now time.Time) BookingEvent {
	return BookingEvent{
		EventID:       uuid.NewString(),
		Type:          eventType,
		BookingID:     b.ID,
		RoomID:        b.RoomID,
		RoomCategory:  string(b.RoomCategory),
		RequesterKind: string(b.Requester.Kind),
		RequesterID:   b.Requester.ID,
		Date:          b.Slot.Date.Format(domain.DateFormat),
		StartTime:     b.Slot.Start.String(),
		EndTime:       b.Slot.End.String(),
		ActorID:       actorID,
		OccurredAt:    now.UTC(),
	}
}
