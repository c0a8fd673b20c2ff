package domain

import (
	"time"
)

// BookingState represents the state of a booking
type BookingState string

const (
	StateActive    BookingState = "active"
	StateCancelled BookingState = "cancelled"
)

// Booking represents a room booking in the ledger
type Booking struct {
	ID        int64
	RoomID    int64
	Requester Requester
	Slot      Slot
	State     BookingState
	CreatedBy int64 // Пользователь, оформивший бронирование (администратор может бронировать за других)

	// Denormalized data for history
	RoomName     string
	RoomCategory RoomCategory

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking still holds its slot
func (b *Booking) IsActive() bool {
	return b.State == StateActive
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.State == StateActive
}

// OwnedBy returns true if the booking belongs to the requester
func (b *Booking) OwnedBy(r Requester) bool {
	return b.Requester == r
}

// BookingsFilter фильтр для списка активных бронирований
type BookingsFilter struct {
	Requester *Requester // Фильтр по заявителю (опционально, если nil - все бронирования)
	Date      *time.Time // Фильтр по дате (опционально)
	RoomID    *int64     // Фильтр по комнате (опционально)
	Skip      int
	Limit     int
}

// Normalize подставляет значения пагинации по умолчанию
func (f BookingsFilter) Normalize() BookingsFilter {
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	return f
}
