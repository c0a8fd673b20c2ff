package get_available_rooms

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	getAvailableRooms "github.com/m04kA/SMC-RoomBookingService/internal/usecase/get_available_rooms"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

var (
	errInvalidCategory = errors.New("invalid room category")
	errInvalidDate     = errors.New("invalid date")
	errInvalidTime     = errors.New("invalid time")
)

// AvailableRoomsResponse HTTP response model
type AvailableRoomsResponse struct {
	Category  string          `json:"category"`
	Date      string          `json:"date"`
	StartTime string          `json:"startTime"`
	EndTime   string          `json:"endTime"`
	Rooms     []AvailableRoom `json:"rooms"`
}

// AvailableRoom комната со свободными местами
type AvailableRoom struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Capacity       int    `json:"capacity"`
	AvailableSpots int    `json:"availableSpots"`
	TotalSpots     int    `json:"totalSpots"`
}

// ToUseCaseRequest конвертирует query параметры в модель use case
func ToUseCaseRequest(userID int64, categoryStr, dateStr, startStr, endStr string) (*getAvailableRooms.Request, error) {
	category, err := domain.ParseRoomCategory(categoryStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidCategory, err)
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	start, err := types.NewTimeStringFromString(startStr)
	if err != nil {
		return nil, fmt.Errorf("%w: start: %v", errInvalidTime, err)
	}

	end, err := types.NewTimeStringFromString(endStr)
	if err != nil {
		return nil, fmt.Errorf("%w: end: %v", errInvalidTime, err)
	}

	return &getAvailableRooms.Request{
		UserID:   userID,
		Category: category,
		Slot:     domain.NewSlot(date, start, end),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableRooms.Response) *AvailableRoomsResponse {
	rooms := make([]AvailableRoom, 0, len(resp.Rooms))
	for _, room := range resp.Rooms {
		rooms = append(rooms, AvailableRoom{
			ID:             room.ID,
			Name:           room.Name,
			Capacity:       room.Capacity,
			AvailableSpots: room.AvailableSpots,
			TotalSpots:     room.TotalSpots,
		})
	}

	return &AvailableRoomsResponse{
		Category:  string(resp.Category),
		Date:      resp.Slot.Date.Format(domain.DateFormat),
		StartTime: resp.Slot.Start.String(),
		EndTime:   resp.Slot.End.String(),
		Rooms:     rooms,
	}
}
