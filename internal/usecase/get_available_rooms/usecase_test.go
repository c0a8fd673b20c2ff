package get_available_rooms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

type fakeBookings struct {
	counts  map[int64]int
	err     error
	gotIDs  []int64
	gotSlot domain.Slot
}

func (f *fakeBookings) CountActiveOverlaps(ctx context.Context, roomIDs []int64, slot domain.Slot) (map[int64]int, error) {
	f.gotIDs = roomIDs
	f.gotSlot = slot
	if f.err != nil {
		return nil, f.err
	}
	return f.counts, nil
}

type fakeRooms struct {
	rooms []*domain.Room
	err   error
}

func (f *fakeRooms) GetByCategory(ctx context.Context, category domain.RoomCategory) ([]*domain.Room, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.Room, 0)
	for _, r := range f.rooms {
		if r.Category == category {
			result = append(result, r)
		}
	}
	return result, nil
}

type fakeTxManager struct {
	readOnly int
}

func (m *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	m.readOnly++
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var tomorrow = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

func newUseCase(bookings *fakeBookings, rooms *fakeRooms, tx *fakeTxManager) *UseCase {
	uc := NewUseCase(bookings, rooms, tx, Config{
		Window:   domain.DefaultOperatingWindow(),
		Location: time.UTC,
	}, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2024, 1, 9, 12, 0, 0, 0, time.UTC)}
	return uc
}

func request(category domain.RoomCategory, start, end string) *Request {
	return &Request{
		UserID:   1,
		Category: category,
		Slot:     domain.NewSlot(tomorrow, types.MustTimeString(start), types.MustTimeString(end)),
	}
}

func TestExecute_SharedRoomsWithSpots(t *testing.T) {
	rooms := &fakeRooms{rooms: []*domain.Room{
		{ID: 9, Name: "Open space B", Category: domain.CategoryShared, Capacity: 2},
		{ID: 4, Name: "Open space A", Category: domain.CategoryShared, Capacity: 4},
		{ID: 5, Name: "Focus", Category: domain.CategoryPrivate, Capacity: 1},
	}}
	bookings := &fakeBookings{counts: map[int64]int{4: 1, 9: 2}}
	tx := &fakeTxManager{}

	resp, err := newUseCase(bookings, rooms, tx).Execute(context.Background(), request(domain.CategoryShared, "09:00", "10:00"))
	require.NoError(t, err)

	assert.Equal(t, []Room{
		{ID: 4, Name: "Open space A", Capacity: 4, AvailableSpots: 3, TotalSpots: 4},
	}, resp.Rooms)
	assert.ElementsMatch(t, []int64{9, 4}, bookings.gotIDs)
	assert.Equal(t, 1, tx.readOnly)
}

func TestExecute_ExclusiveRooms(t *testing.T) {
	rooms := &fakeRooms{rooms: []*domain.Room{
		{ID: 2, Name: "Board", Category: domain.CategoryConference, Capacity: 12},
		{ID: 1, Name: "Huddle", Category: domain.CategoryConference, Capacity: 6},
	}}
	bookings := &fakeBookings{counts: map[int64]int{2: 1}}

	resp, err := newUseCase(bookings, rooms, &fakeTxManager{}).Execute(context.Background(), request(domain.CategoryConference, "11:00", "12:00"))
	require.NoError(t, err)

	require.Len(t, resp.Rooms, 1)
	assert.Equal(t, int64(1), resp.Rooms[0].ID)
	assert.Equal(t, 1, resp.Rooms[0].AvailableSpots)
	assert.Equal(t, 1, resp.Rooms[0].TotalSpots)
}

func TestExecute_NoRoomsInCategory(t *testing.T) {
	resp, err := newUseCase(&fakeBookings{}, &fakeRooms{}, &fakeTxManager{}).
		Execute(context.Background(), request(domain.CategoryPrivate, "09:00", "10:00"))
	require.NoError(t, err)
	assert.Empty(t, resp.Rooms)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		req      *Request
		bookings *fakeBookings
		rooms    *fakeRooms
		wantErr  error
	}{
		{
			name:     "unknown category",
			req:      request("lounge", "09:00", "10:00"),
			bookings: &fakeBookings{},
			rooms:    &fakeRooms{},
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "inverted slot",
			req:      request(domain.CategoryShared, "10:00", "09:00"),
			bookings: &fakeBookings{},
			rooms:    &fakeRooms{},
			wantErr:  ErrInvalidSlot,
		},
		{
			name:     "outside operating hours",
			req:      request(domain.CategoryShared, "17:00", "19:00"),
			bookings: &fakeBookings{},
			rooms:    &fakeRooms{},
			wantErr:  ErrInvalidSlot,
		},
		{
			name:     "room directory fails",
			req:      request(domain.CategoryShared, "09:00", "10:00"),
			bookings: &fakeBookings{},
			rooms:    &fakeRooms{err: errors.New("connection refused")},
			wantErr:  ErrStorageUnavailable,
		},
		{
			name:     "count fails",
			req:      request(domain.CategoryShared, "09:00", "10:00"),
			bookings: &fakeBookings{err: errors.New("statement timeout")},
			rooms:    &fakeRooms{rooms: []*domain.Room{{ID: 1, Category: domain.CategoryShared, Capacity: 3}}},
			wantErr:  ErrStorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newUseCase(tt.bookings, tt.rooms, &fakeTxManager{}).Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
