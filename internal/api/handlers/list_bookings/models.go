package list_bookings

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

var (
	errInvalidRequester  = errors.New("invalid requester filter")
	errInvalidDate       = errors.New("invalid date filter")
	errInvalidRoomID     = errors.New("invalid room filter")
	errInvalidPagination = errors.New("invalid pagination")
)

// ParseQuery собирает запрос к сервису из query параметров
// requesterKind и requesterId задаются только вместе
func ParseQuery(actor domain.Actor, q url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{Actor: actor}

	kind, idStr := q.Get("requesterKind"), q.Get("requesterId")
	if kind != "" || idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: requesterId %q", errInvalidRequester, idStr)
		}
		requester := domain.Requester{Kind: domain.RequesterKind(kind), ID: id}
		if err := requester.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidRequester, err)
		}
		req.Requester = &requester
	}

	if dateStr := q.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
		}
		req.Date = &date
	}

	if roomIDStr := q.Get("roomId"); roomIDStr != "" {
		roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
		if err != nil || roomID <= 0 {
			return nil, fmt.Errorf("%w: %q", errInvalidRoomID, roomIDStr)
		}
		req.RoomID = &roomID
	}

	var err error
	if req.Skip, err = parseNonNegative(q, "skip"); err != nil {
		return nil, err
	}
	if req.Limit, err = parseNonNegative(q, "limit"); err != nil {
		return nil, err
	}

	return req, nil
}

func parseNonNegative(q url.Values, key string) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s=%q", errInvalidPagination, key, raw)
	}
	return v, nil
}
