package teamservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, logger.NewNop())
}

func TestClient_GetTeam(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/teams/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"name":"Platform","members":[{"user_id":1,"age":34},{"user_id":2,"age":6},{"user_id":3,"age":29}]}`))
	})

	team, err := client.GetTeam(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), team.ID)
	assert.Equal(t, "Platform", team.Name)
	assert.Equal(t, 3, team.Headcount())
	assert.Equal(t, 2, team.SeatCount(10))
}

func TestClient_GetTeam_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetTeam(context.Background(), 7)
	assert.ErrorIs(t, err, ErrTeamNotFound)
	assert.False(t, IsUnavailable(err))
}

func TestClient_GetTeam_ServerError(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.GetTeam(context.Background(), 7)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.True(t, IsUnavailable(err))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(1))
}

func TestClient_GetTeam_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, 200*time.Millisecond, logger.NewNop()).GetTeam(context.Background(), 7)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestClient_GetTeam_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":`))
	})

	_, err := client.GetTeam(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_GetTeam_MismatchedID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":8,"members":[]}`))
	})

	_, err := client.GetTeam(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
