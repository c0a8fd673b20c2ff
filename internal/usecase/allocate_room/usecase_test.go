package allocate_room

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/lock"
)

func TestExecute_PrivateRoomIsExclusive(t *testing.T) {
	env := newTestEnv(room(1, domain.CategoryPrivate, 1))
	ctx := context.Background()

	first, err := env.uc.Execute(ctx, individual(1, domain.CategoryPrivate, "09:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.RoomID)
	assert.Equal(t, domain.StateActive, first.State)

	_, err = env.uc.Execute(ctx, individual(2, domain.CategoryPrivate, "09:30", "10:30"))
	assert.ErrorIs(t, err, ErrNoRoomAvailable)

	touching, err := env.uc.Execute(ctx, individual(2, domain.CategoryPrivate, "10:00", "11:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), touching.RoomID)
}

func TestExecute_PicksLowestFreeRoomID(t *testing.T) {
	// Справочник возвращает комнаты не по порядку
	env := newTestEnv(room(7, domain.CategoryPrivate, 1), room(3, domain.CategoryPrivate, 1), room(5, domain.CategoryPrivate, 1))
	ctx := context.Background()

	first, err := env.uc.Execute(ctx, individual(1, domain.CategoryPrivate, "09:00", "10:00"))
	require.NoError(t, err)
	second, err := env.uc.Execute(ctx, individual(2, domain.CategoryPrivate, "09:00", "10:00"))
	require.NoError(t, err)

	assert.Equal(t, int64(3), first.RoomID)
	assert.Equal(t, int64(5), second.RoomID)
}

func TestExecute_LockOrder(t *testing.T) {
	env := newTestEnv(room(7, domain.CategoryPrivate, 1), room(3, domain.CategoryPrivate, 1))
	ctx := context.Background()

	_, err := env.uc.Execute(ctx, individual(1, domain.CategoryPrivate, "09:00", "10:00"))
	require.NoError(t, err)
	_, err = env.uc.Execute(ctx, individual(2, domain.CategoryPrivate, "09:00", "10:00"))
	require.NoError(t, err)

	require.Len(t, env.store.lockOrder, 2)
	assert.Equal(t, []lock.Key{
		lock.RequesterDayKey(domain.Individual(2), tomorrow),
		lock.RoomDayKey(3, tomorrow),
		lock.RoomDayKey(7, tomorrow),
	}, env.store.lockOrder[1])
}

func TestExecute_SharedCapacity(t *testing.T) {
	env := newTestEnv(room(1, domain.CategoryShared, 4))
	ctx := context.Background()

	var ids []int64
	for user := int64(1); user <= 4; user++ {
		resp, err := env.uc.Execute(ctx, individual(user, domain.CategoryShared, "09:00", "10:00"))
		require.NoError(t, err)
		ids = append(ids, resp.ID)
	}

	_, err := env.uc.Execute(ctx, individual(5, domain.CategoryShared, "09:00", "10:00"))
	assert.ErrorIs(t, err, ErrNoRoomAvailable)

	env.store.cancel(ids[0])

	resp, err := env.uc.Execute(ctx, individual(5, domain.CategoryShared, "09:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.RoomID)
}

func TestExecute_SharedOverflowsToNextRoom(t *testing.T) {
	env := newTestEnv(room(1, domain.CategoryShared, 2), room(2, domain.CategoryShared, 2))
	ctx := context.Background()

	rooms := make([]int64, 0, 4)
	for user := int64(1); user <= 4; user++ {
		resp, err := env.uc.Execute(ctx, individual(user, domain.CategoryShared, "13:00", "14:00"))
		require.NoError(t, err)
		rooms = append(rooms, resp.RoomID)
	}
	assert.Equal(t, []int64{1, 1, 2, 2}, rooms)
}

func TestExecute_CapacityReadAtGrantTime(t *testing.T) {
	env := newTestEnv(room(2, domain.CategoryShared, 4), room(3, domain.CategoryShared, 4))
	ctx := context.Background()

	first, err := env.uc.Execute(ctx, individual(1, domain.CategoryShared, "09:00", "10:00"))
	require.NoError(t, err)
	require.Equal(t, int64(2), first.RoomID)

	// Список кандидатов всё ещё отдаёт вместимость 4, в хранилище уже 1
	env.rooms.stored[2] = room(2, domain.CategoryShared, 1)

	second, err := env.uc.Execute(ctx, individual(2, domain.CategoryShared, "09:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), second.RoomID)

	env.rooms.stored[3] = room(3, domain.CategoryShared, 1)

	_, err = env.uc.Execute(ctx, individual(3, domain.CategoryShared, "09:00", "10:00"))
	assert.ErrorIs(t, err, ErrNoRoomAvailable)
}

func TestExecute_SkipsRoomRemovedAfterListing(t *testing.T) {
	env := newTestEnv(room(1, domain.CategoryPrivate, 1), room(2, domain.CategoryPrivate, 1))
	env.rooms.stored[1] = nil

	resp, err := env.uc.Execute(context.Background(), individual(1, domain.CategoryPrivate, "09:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.RoomID)
}

func TestExecute_ConferenceSeatsReadAtGrantTime(t *testing.T) {
	env := newTestEnv(room(1, domain.CategoryConference, 10), room(2, domain.CategoryConference, 10))
	env.addTeam(5, 30, 31, 32, 33)
	env.rooms.stored[1] = room(1, domain.CategoryConference, 3)

	resp, err := env.uc.Execute(context.Background(), teamRequest(5, domain.CategoryConference, "09:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.RoomID)
}

func TestExecute_SharedAcceptsTeams(t *testing.T) {
	env := newTestEnv(room(1, domain.CategoryShared, 3))

	resp, err := env.uc.Execute(context.Background(), teamRequest(4, domain.CategoryShared, "09:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, domain.TeamRequester(4), resp.Requester)
}

func TestExecute_ConferenceHeadcount(t *testing.T) {
	env := newTestEnv(room(1, domain.CategoryConference, 10))
	env.addTeam(1, 30, 31)
	env.addTeam(2, 30, 31, 32)
	ctx := context.Background()

	_, err := env.uc.Execute(ctx, teamRequest(1, domain.CategoryConference, "09:00", "10:00"))
	assert.ErrorIs(t, err, ErrTeamTooSmall)

	resp, err := env.uc.Execute(ctx, teamRequest(2, domain.CategoryConference, "09:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.RoomID)
}

func TestExecute_ConferenceChildrenCountButTakeNoSeat(t *testing.T) {
	// Три участника, один младше 10 лет: команда допустима и помещается в комнату на 2 места
	env := newTestEnv(room(1, domain.CategoryConference, 1), room(2, domain.CategoryConference, 2))
	env.addTeam(3, 40, 38, 6)

	resp, err := env.uc.Execute(context.Background(), teamRequest(3, domain.CategoryConference, "09:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.RoomID)
}

func TestExecute_ConferenceIsExclusive(t *testing.T) {
	env := newTestEnv(room(1, domain.CategoryConference, 20))
	env.addTeam(1, 30, 30, 30)
	env.addTeam(2, 30, 30, 30)
	ctx := context.Background()

	_, err := env.uc.Execute(ctx, teamRequest(1, domain.CategoryConference, "09:00", "10:00"))
	require.NoError(t, err)

	_, err = env.uc.Execute(ctx, teamRequest(2, domain.CategoryConference, "09:30", "10:30"))
	assert.ErrorIs(t, err, ErrNoRoomAvailable)
}

func TestExecute_RequesterKindPerCategory(t *testing.T) {
	env := newTestEnv(room(1, domain.CategoryPrivate, 1), room(2, domain.CategoryConference, 8))
	env.addTeam(5, 30, 30, 30)
	ctx := context.Background()

	_, err := env.uc.Execute(ctx, teamRequest(5, domain.CategoryPrivate, "09:00", "10:00"))
	assert.ErrorIs(t, err, ErrInvalidRequesterForCategory)

	_, err = env.uc.Execute(ctx, individual(1, domain.CategoryConference, "09:00", "10:00"))
	assert.ErrorIs(t, err, ErrInvalidRequesterForCategory)
}

func TestExecute_RequesterSelfConflict(t *testing.T) {
	env := newTestEnv(room(1, domain.CategoryShared, 10), room(2, domain.CategoryPrivate, 1))
	ctx := context.Background()

	_, err := env.uc.Execute(ctx, individual(1, domain.CategoryShared, "11:00", "12:00"))
	require.NoError(t, err)

	_, err = env.uc.Execute(ctx, individual(1, domain.CategoryPrivate, "11:30", "12:30"))
	assert.ErrorIs(t, err, ErrRequesterAlreadyBooked)

	_, err = env.uc.Execute(ctx, individual(1, domain.CategoryPrivate, "12:00", "13:00"))
	assert.NoError(t, err)
}

func TestExecute_SelfConflictCheckedBeforeCategoryRules(t *testing.T) {
	env := newTestEnv(room(1, domain.CategoryShared, 10), room(2, domain.CategoryPrivate, 1))
	ctx := context.Background()

	_, err := env.uc.Execute(ctx, teamRequest(4, domain.CategoryShared, "09:00", "10:00"))
	require.NoError(t, err)

	_, err = env.uc.Execute(ctx, teamRequest(4, domain.CategoryPrivate, "09:00", "10:00"))
	assert.ErrorIs(t, err, ErrRequesterAlreadyBooked)
}

func TestExecute_IndividualAndTeamWithSameIDAreDistinct(t *testing.T) {
	env := newTestEnv(room(1, domain.CategoryShared, 10))
	ctx := context.Background()

	_, err := env.uc.Execute(ctx, individual(4, domain.CategoryShared, "09:00", "10:00"))
	require.NoError(t, err)
	_, err = env.uc.Execute(ctx, teamRequest(4, domain.CategoryShared, "09:00", "10:00"))
	assert.NoError(t, err)
}

func TestExecute_CancelThenRebookSameSlot(t *testing.T) {
	env := newTestEnv(room(1, domain.CategoryPrivate, 1))
	ctx := context.Background()

	first, err := env.uc.Execute(ctx, individual(1, domain.CategoryPrivate, "15:00", "16:00"))
	require.NoError(t, err)

	env.store.cancel(first.ID)

	again, err := env.uc.Execute(ctx, individual(1, domain.CategoryPrivate, "15:00", "16:00"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, again.ID)
}

func TestExecute_InvalidSlot(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{"start equals end", individual(1, domain.CategoryShared, "10:00", "10:00")},
		{"start after end", individual(1, domain.CategoryShared, "11:00", "10:00")},
		{"before opening", individual(1, domain.CategoryShared, "08:00", "09:30")},
		{"after closing", individual(1, domain.CategoryShared, "17:30", "18:30")},
		{"past date", &Request{
			Actor: domain.Actor{UserID: 1}, Requester: domain.Individual(1), Category: domain.CategoryShared,
			Slot: slotOn(testNow.AddDate(0, 0, -1), "10:00", "11:00"),
		}},
		{"today already over", &Request{
			Actor: domain.Actor{UserID: 1}, Requester: domain.Individual(1), Category: domain.CategoryShared,
			Slot: slotOn(testNow, "09:00", "10:00"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(room(1, domain.CategoryShared, 4))

			_, err := env.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidSlot)
			assert.Empty(t, env.store.lockOrder, "no transaction for an invalid slot")
		})
	}
}

func TestExecute_TodayStillRunning(t *testing.T) {
	env := newTestEnv(room(1, domain.CategoryShared, 4))
	req := individual(1, domain.CategoryShared, "09:30", "11:00")
	req.Slot = slotOn(testNow, "09:30", "11:00")

	_, err := env.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_InvalidInput(t *testing.T) {
	env := newTestEnv(room(1, domain.CategoryShared, 4))

	req := individual(1, "lounge", "09:00", "10:00")
	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = individual(1, domain.CategoryShared, "09:00", "10:00")
	req.Requester = domain.Requester{Kind: "robot", ID: 1}
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_BookingForOthers(t *testing.T) {
	env := newTestEnv(room(1, domain.CategoryShared, 4))
	ctx := context.Background()

	req := individual(8, domain.CategoryShared, "09:00", "10:00")
	req.Actor = domain.Actor{UserID: 7}
	_, err := env.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	req.Actor = domain.Actor{UserID: 1, IsAdmin: true}
	resp, err := env.uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, domain.Individual(8), resp.Requester)
	assert.Equal(t, int64(1), resp.CreatedBy)
}

func TestExecute_TeamDirectoryFailures(t *testing.T) {
	t.Run("unknown team", func(t *testing.T) {
		env := newTestEnv(room(1, domain.CategoryConference, 8))

		_, err := env.uc.Execute(context.Background(), teamRequest(9, domain.CategoryConference, "09:00", "10:00"))
		assert.ErrorIs(t, err, ErrTeamNotFound)
	})

	t.Run("team service down", func(t *testing.T) {
		env := newTestEnv(room(1, domain.CategoryConference, 8))
		env.teams.err = errors.New("connection refused")

		_, err := env.uc.Execute(context.Background(), teamRequest(9, domain.CategoryConference, "09:00", "10:00"))
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})

	t.Run("team not needed for shared", func(t *testing.T) {
		env := newTestEnv(room(1, domain.CategoryShared, 8))
		env.teams.err = errors.New("connection refused")

		_, err := env.uc.Execute(context.Background(), teamRequest(9, domain.CategoryShared, "09:00", "10:00"))
		assert.NoError(t, err)
	})
}

func TestExecute_StorageFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(env *testEnv)
	}{
		{"begin fails", func(env *testEnv) { env.store.beginErr = errors.New("too many connections") }},
		{"lock fails", func(env *testEnv) { env.locker.err = lock.ErrTimeout }},
		{"rooms fail", func(env *testEnv) { env.rooms.err = errors.New("rooms table unavailable") }},
		{"insert fails", func(env *testEnv) { env.store.createErr = errors.New("connection reset") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(room(1, domain.CategoryShared, 4))
			tt.setup(env)

			_, err := env.uc.Execute(context.Background(), individual(1, domain.CategoryShared, "09:00", "10:00"))
			assert.ErrorIs(t, err, ErrStorageUnavailable)
			assert.Empty(t, env.store.active(), "failed allocation must leave no booking")
			assert.Empty(t, env.publisher.published)
		})
	}
}

func TestExecute_LockWaitBoundedByTxTimeout(t *testing.T) {
	env := newTestEnv(room(1, domain.CategoryPrivate, 1))
	env.uc.cfg.TxTimeout = 50 * time.Millisecond

	// Чужая транзакция держит блокировку заявителя
	held := env.store.lockFor(lock.RequesterDayKey(domain.Individual(1), tomorrow))
	held <- struct{}{}
	defer func() { <-held }()

	_, err := env.uc.Execute(context.Background(), individual(1, domain.CategoryPrivate, "09:00", "10:00"))
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestExecute_PublishesAfterCommit(t *testing.T) {
	env := newTestEnv(room(1, domain.CategoryPrivate, 1))
	env.publisher.err = errors.New("broker down")

	resp, err := env.uc.Execute(context.Background(), individual(1, domain.CategoryPrivate, "09:00", "10:00"))
	require.NoError(t, err, "publish failure must not fail the allocation")
	assert.Equal(t, []int64{resp.ID}, env.publisher.published)

	_, err = env.uc.Execute(context.Background(), individual(2, domain.CategoryPrivate, "09:00", "10:00"))
	require.ErrorIs(t, err, ErrNoRoomAvailable)
	assert.Len(t, env.publisher.published, 1)
}

func TestExecute_RecordsOutcomes(t *testing.T) {
	env := newTestEnv(room(1, domain.CategoryPrivate, 1))
	ctx := context.Background()

	_, _ = env.uc.Execute(ctx, individual(1, domain.CategoryPrivate, "09:00", "10:00"))
	_, _ = env.uc.Execute(ctx, individual(2, domain.CategoryPrivate, "09:00", "10:00"))
	_, _ = env.uc.Execute(ctx, individual(2, domain.CategoryPrivate, "10:00", "09:00"))

	assert.Equal(t, []string{"private:allocated", "private:no_room", "private:invalid_slot"}, env.metrics.outcomes)
}
