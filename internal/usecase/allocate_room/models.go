package allocate_room

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модель запроса на распределение комнаты
type Request struct {
	Actor     domain.Actor        // Кто выполняет запрос
	Requester domain.Requester    // От чьего имени бронируется комната
	Category  domain.RoomCategory // Категория комнаты
	Slot      domain.Slot         // Дата и интервал
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           int64
	RoomID       int64
	RoomName     string
	RoomCategory domain.RoomCategory
	Requester    domain.Requester
	Slot         domain.Slot
	State        domain.BookingState
	CreatedBy    int64
	CreatedAt    time.Time
}

// Config правила распределения
type Config struct {
	Window                 domain.OperatingWindow
	Location               *time.Location
	ConferenceMinHeadcount int
	SeatlessAgeBelow       int
	TxTimeout              time.Duration
}

// DefaultConfig правила по умолчанию: 09:00-18:00 UTC, команда от 3 человек
func DefaultConfig() Config {
	return Config{
		Window:                 domain.DefaultOperatingWindow(),
		Location:               time.UTC,
		ConferenceMinHeadcount: domain.DefaultConferenceMinHeadcount,
		SeatlessAgeBelow:       domain.DefaultSeatlessAgeBelow,
		TxTimeout:              5 * time.Second,
	}
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:           b.ID,
		RoomID:       b.RoomID,
		RoomName:     b.RoomName,
		RoomCategory: b.RoomCategory,
		Requester:    b.Requester,
		Slot:         b.Slot,
		State:        b.State,
		CreatedBy:    b.CreatedBy,
		CreatedAt:    b.CreatedAt,
	}
}
