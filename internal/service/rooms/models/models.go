package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модели

// CreateRoomRequest запрос на создание комнаты
type CreateRoomRequest struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"` // "private", "conference", "shared"
	Capacity    int     `json:"capacity"`
	Description *string `json:"description,omitempty"`
}

// ToDomainRoom конвертирует request в domain модель.
// Нераспознанная категория передается как есть и отклоняется валидацией
func (r *CreateRoomRequest) ToDomainRoom() *domain.Room {
	category, err := domain.ParseRoomCategory(r.Category)
	if err != nil {
		category = domain.RoomCategory(r.Category)
	}

	return &domain.Room{
		Name:        r.Name,
		Category:    category,
		Capacity:    r.Capacity,
		Description: r.Description,
	}
}

// UpdateRoomRequest запрос на обновление комнаты
// Все поля опциональны - обновляются только переданные значения.
// Категория комнаты не меняется
type UpdateRoomRequest struct {
	Name        *string `json:"name,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ApplyTo применяет изменения к комнате
func (r *UpdateRoomRequest) ApplyTo(room *domain.Room) {
	if r.Name != nil {
		room.Name = *r.Name
	}
	if r.Capacity != nil {
		room.Capacity = *r.Capacity
	}
	if r.Description != nil {
		room.Description = r.Description
	}
}

// IsEmpty проверяет, что в запросе нет ни одного поля
func (r *UpdateRoomRequest) IsEmpty() bool {
	return r.Name == nil && r.Capacity == nil && r.Description == nil
}

// Response модели

// RoomResponse ответ с данными комнаты
type RoomResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Capacity    int       `json:"capacity"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RoomListResponse ответ со списком комнат
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// FromDomainRoom конвертирует domain модель в DTO
func FromDomainRoom(r *domain.Room) *RoomResponse {
	if r == nil {
		return nil
	}
	return &RoomResponse{
		ID:          r.ID,
		Name:        r.Name,
		Category:    string(r.Category),
		Capacity:    r.Capacity,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// FromDomainRoomList конвертирует список domain моделей в DTO
func FromDomainRoomList(rooms []*domain.Room) *RoomListResponse {
	resp := &RoomListResponse{Rooms: make([]RoomResponse, 0, len(rooms))}
	for _, r := range rooms {
		resp.Rooms = append(resp.Rooms, *FromDomainRoom(r))
	}
	return resp
}
