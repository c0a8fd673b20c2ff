package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модели

// ListBookingsRequest запрос на получение активных бронирований
type ListBookingsRequest struct {
	Actor     domain.Actor
	Requester *domain.Requester // Фильтр по заявителю (опционально)
	Date      *time.Time        // Фильтр по дате (опционально)
	RoomID    *int64            // Фильтр по комнате (опционально)
	Skip      int
	Limit     int
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() domain.BookingsFilter {
	return domain.BookingsFilter{
		Requester: r.Requester,
		Date:      r.Date,
		RoomID:    r.RoomID,
		Skip:      r.Skip,
		Limit:     r.Limit,
	}.Normalize()
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64   `json:"id"`
	RoomID        int64   `json:"roomId"`
	RoomName      string  `json:"roomName"`
	RoomCategory  string  `json:"roomCategory"`
	RequesterKind string  `json:"requesterKind"` // "individual" или "team"
	RequesterID   int64   `json:"requesterId"`
	BookingDate   string  `json:"bookingDate"` // "2024-01-10"
	StartTime     string  `json:"startTime"`   // "09:00"
	EndTime       string  `json:"endTime"`     // "10:00"
	State         string  `json:"state"`
	CreatedBy     int64   `json:"createdBy"`
	CancelledAt   *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Skip     int               `json:"skip"`
	Limit    int               `json:"limit"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            b.ID,
		RoomID:        b.RoomID,
		RoomName:      b.RoomName,
		RoomCategory:  string(b.RoomCategory),
		RequesterKind: string(b.Requester.Kind),
		RequesterID:   b.Requester.ID,
		BookingDate:   b.Slot.Date.Format(domain.DateFormat),
		StartTime:     b.Slot.Start.String(),
		EndTime:       b.Slot.End.String(),
		State:         string(b.State),
		CreatedBy:     b.CreatedBy,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, filter domain.BookingsFilter) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Skip:     filter.Skip,
		Limit:    filter.Limit,
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
