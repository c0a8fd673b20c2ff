package domain

import (
	"fmt"
	"strings"
	"time"
)

// RoomCategory категория комнаты
type RoomCategory string

const (
	CategoryPrivate    RoomCategory = "private"    // Индивидуальная комната, одно бронирование на слот
	CategoryConference RoomCategory = "conference" // Переговорная для команд, одно бронирование на слот
	CategoryShared     RoomCategory = "shared"     // Общее пространство, до capacity бронирований на слот
)

// Categories все поддерживаемые категории
var Categories = []RoomCategory{CategoryPrivate, CategoryConference, CategoryShared}

// ParseRoomCategory разбирает категорию из строки
func ParseRoomCategory(s string) (RoomCategory, error) {
	c := RoomCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// IsValid проверяет, что категория известна
func (c RoomCategory) IsValid() bool {
	switch c {
	case CategoryPrivate, CategoryConference, CategoryShared:
		return true
	}
	return false
}

// IsExclusive true для категорий, где на слот допускается одно бронирование
func (c RoomCategory) IsExclusive() bool {
	return c == CategoryPrivate || c == CategoryConference
}

// Room represents a bookable room
type Room struct {
	ID          int64
	Name        string
	Category    RoomCategory
	Capacity    int
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsExclusive returns true if the room admits a single booking per slot
func (r *Room) IsExclusive() bool {
	return r.Category.IsExclusive()
}

// HasRoomFor reports whether one more booking fits given the number of
// active bookings already overlapping the slot
func (r *Room) HasRoomFor(overlapping int) bool {
	if r.IsExclusive() {
		return overlapping == 0
	}
	return overlapping < r.Capacity
}

// AvailableSpots количество свободных мест на слот при заданном числе пересечений
func (r *Room) AvailableSpots(overlapping int) int {
	total := r.TotalSpots()
	if overlapping >= total {
		return 0
	}
	return total - overlapping
}

// TotalSpots сколько бронирований комната допускает на один слот
func (r *Room) TotalSpots() int {
	if r.IsExclusive() {
		return 1
	}
	return r.Capacity
}

// Validate проверяет данные комнаты перед сохранением
func (r *Room) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRoom)
	}
	if len(name) > MaxRoomNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidRoom, MaxRoomNameLength)
	}
	if !r.Category.IsValid() {
		return fmt.Errorf("%w: %w", ErrInvalidRoom, ErrUnknownCategory)
	}
	if r.Capacity < MinRoomCapacity || r.Capacity > MaxRoomCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d", ErrInvalidRoom, MinRoomCapacity, MaxRoomCapacity)
	}
	if r.Description != nil && len(*r.Description) > MaxDescriptionSize {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidRoom, MaxDescriptionSize)
	}
	return nil
}
