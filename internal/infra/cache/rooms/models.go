package rooms

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// cachedRoom представление комнаты в Redis
type cachedRoom struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Capacity    int       `json:"capacity"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCached(rooms []*domain.Room) []cachedRoom {
	result := make([]cachedRoom, 0, len(rooms))
	for _, r := range rooms {
		result = append(result, cachedRoom{
			ID:          r.ID,
			Name:        r.Name,
			Category:    string(r.Category),
			Capacity:    r.Capacity,
			Description: r.Description,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		})
	}
	return result
}

func fromCached(cached []cachedRoom) []*domain.Room {
	result := make([]*domain.Room, 0, len(cached))
	for _, c := range cached {
		result = append(result, &domain.Room{
			ID:          c.ID,
			Name:        c.Name,
			Category:    domain.RoomCategory(c.Category),
			Capacity:    c.Capacity,
			Description: c.Description,
			CreatedAt:   c.CreatedAt,
			UpdatedAt:   c.UpdatedAt,
		})
	}
	return result
}
