package allocate_room

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	allocateRoom "github.com/m04kA/SMC-RoomBookingService/internal/usecase/allocate_room"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

var (
	errInvalidCategory  = errors.New("invalid room category")
	errInvalidDate      = errors.New("invalid booking date")
	errInvalidTime      = errors.New("invalid time")
	errInvalidRequester = errors.New("invalid requester")
)

// AllocateRoomRequest HTTP request model
// Без requesterKind бронирование оформляется на самого пользователя.
// Для requesterKind="team" без requesterId берется команда пользователя
type AllocateRoomRequest struct {
	Category      string `json:"category"`    // "private", "conference", "shared"
	BookingDate   string `json:"bookingDate"` // "2024-01-10"
	StartTime     string `json:"startTime"`   // "09:00"
	EndTime       string `json:"endTime"`     // "10:00"
	RequesterKind string `json:"requesterKind,omitempty"`
	RequesterID   *int64 `json:"requesterId,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64  `json:"id"`
	RoomID        int64  `json:"roomId"`
	RoomName      string `json:"roomName"`
	RoomCategory  string `json:"roomCategory"`
	RequesterKind string `json:"requesterKind"`
	RequesterID   int64  `json:"requesterId"`
	BookingDate   string `json:"bookingDate"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	State         string `json:"state"`
	CreatedBy     int64  `json:"createdBy"`
	CreatedAt     string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AllocateRoomRequest) ToUseCaseRequest(actor domain.Actor) (*allocateRoom.Request, error) {
	category, err := domain.ParseRoomCategory(r.Category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidCategory, err)
	}

	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start: %v", errInvalidTime, err)
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: end: %v", errInvalidTime, err)
	}

	requester, err := r.requester(actor)
	if err != nil {
		return nil, err
	}

	return &allocateRoom.Request{
		Actor:     actor,
		Requester: requester,
		Category:  category,
		Slot:      domain.NewSlot(bookingDate, startTime, endTime),
	}, nil
}

func (r *AllocateRoomRequest) requester(actor domain.Actor) (domain.Requester, error) {
	switch domain.RequesterKind(r.RequesterKind) {
	case "", domain.RequesterIndividual:
		if r.RequesterID != nil {
			return domain.Individual(*r.RequesterID), nil
		}
		return domain.Individual(actor.UserID), nil
	case domain.RequesterTeam:
		if r.RequesterID != nil {
			return domain.TeamRequester(*r.RequesterID), nil
		}
		if actor.TeamID == nil {
			return domain.Requester{}, fmt.Errorf("%w: user has no team", errInvalidRequester)
		}
		return domain.TeamRequester(*actor.TeamID), nil
	default:
		return domain.Requester{}, fmt.Errorf("%w: unknown kind %q", errInvalidRequester, r.RequesterKind)
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *allocateRoom.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		RoomID:        resp.RoomID,
		RoomName:      resp.RoomName,
		RoomCategory:  string(resp.RoomCategory),
		RequesterKind: string(resp.Requester.Kind),
		RequesterID:   resp.Requester.ID,
		BookingDate:   resp.Slot.Date.Format(domain.DateFormat),
		StartTime:     resp.Slot.Start.String(),
		EndTime:       resp.Slot.End.String(),
		State:         string(resp.State),
		CreatedBy:     resp.CreatedBy,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
