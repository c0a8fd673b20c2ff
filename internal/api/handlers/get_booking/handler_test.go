package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

type fakeService struct {
	err error
}

func (f *fakeService) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.BookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, RequesterKind: "individual", RequesterID: actor.UserID, State: "active"}, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func serve(svc BookingService, path, userID string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/bookings/{bookingId}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Found(t *testing.T) {
	rec := serve(&fakeService{}, "/bookings/12", "3")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(12), resp.ID)
	assert.Equal(t, int64(3), resp.RequesterID)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		user string
		err  error
		want int
	}{
		{"bad id", "/bookings/zero", "3", nil, http.StatusBadRequest},
		{"negative id", "/bookings/-1", "3", nil, http.StatusBadRequest},
		{"no user", "/bookings/12", "", nil, http.StatusUnauthorized},
		{"not found", "/bookings/12", "3", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"foreign booking", "/bookings/12", "3", bookings.ErrNotAuthorized, http.StatusForbidden},
		{"storage", "/bookings/12", "3", bookings.ErrStorageUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.path, tt.user)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
