package allocate_room

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/lock"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	teamClient "github.com/m04kA/SMC-RoomBookingService/internal/integrations/teamservice"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// memStore in-memory журнал с транзакциями READ COMMITTED и блокировками по ключам
type memStore struct {
	mu        sync.Mutex
	nextID    int64
	committed []*domain.Booking
	locks     map[lock.Key]chan struct{}
	lockOrder [][]lock.Key
	beginErr  error
	createErr error
}

func newMemStore() *memStore {
	return &memStore{locks: make(map[lock.Key]chan struct{})}
}

func (s *memStore) lockFor(key lock.Key) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		s.locks[key] = ch
	}
	return ch
}

func (s *memStore) snapshot() []*domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*domain.Booking, 0, len(s.committed))
	for _, b := range s.committed {
		copied := *b
		result = append(result, &copied)
	}
	return result
}

func (s *memStore) active() []*domain.Booking {
	result := make([]*domain.Booking, 0)
	for _, b := range s.snapshot() {
		if b.IsActive() {
			result = append(result, b)
		}
	}
	return result
}

func (s *memStore) cancel(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.committed {
		if b.ID == id {
			b.State = domain.StateCancelled
		}
	}
}

type txKey struct{}

type memTx struct {
	held    map[lock.Key]chan struct{}
	order   []lock.Key
	pending []*domain.Booking
}

func txFrom(ctx context.Context) (*memTx, bool) {
	tx, ok := ctx.Value(txKey{}).(*memTx)
	return tx, ok
}

type fakeTxManager struct {
	store *memStore
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.store.beginErr != nil {
		return m.store.beginErr
	}

	tx := &memTx{held: make(map[lock.Key]chan struct{})}
	err := fn(context.WithValue(ctx, txKey{}, tx))

	m.store.mu.Lock()
	if err == nil {
		m.store.committed = append(m.store.committed, tx.pending...)
	}
	m.store.lockOrder = append(m.store.lockOrder, tx.order)
	m.store.mu.Unlock()

	for _, ch := range tx.held {
		<-ch
	}
	return err
}

type fakeLocker struct {
	store *memStore
	err   error
}

func (l *fakeLocker) Acquire(ctx context.Context, key lock.Key) (*lock.Lease, error) {
	if l.err != nil {
		return nil, l.err
	}
	tx, ok := txFrom(ctx)
	if !ok {
		return nil, lock.ErrNoTransaction
	}
	if _, held := tx.held[key]; !held {
		ch := l.store.lockFor(key)
		select {
		case ch <- struct{}{}:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		tx.held[key] = ch
		tx.order = append(tx.order, key)
	}
	return lock.NewLease(ctx, key), nil
}

type fakeBookingRepo struct {
	store *memStore
}

func (r *fakeBookingRepo) visible(ctx context.Context) []*domain.Booking {
	result := r.store.active()
	if tx, ok := txFrom(ctx); ok {
		result = append(result, tx.pending...)
	}
	return result
}

func (r *fakeBookingRepo) Create(ctx context.Context, lease *lock.Lease, booking *domain.Booking) (*domain.Booking, error) {
	if err := lease.Check(ctx, lock.RoomDayKey(booking.RoomID, booking.Slot.Date)); err != nil {
		return nil, err
	}
	if r.store.createErr != nil {
		return nil, r.store.createErr
	}
	tx, ok := txFrom(ctx)
	if !ok {
		return nil, errors.New("create outside transaction")
	}

	r.store.mu.Lock()
	r.store.nextID++
	booking.ID = r.store.nextID
	r.store.mu.Unlock()

	booking.State = domain.StateActive
	booking.CreatedAt = time.Now()
	copied := *booking
	tx.pending = append(tx.pending, &copied)
	return booking, nil
}

func (r *fakeBookingRepo) ActiveOverlaps(ctx context.Context, lease *lock.Lease, roomID int64, slot domain.Slot) ([]*domain.Booking, error) {
	if err := lease.Check(ctx, lock.RoomDayKey(roomID, slot.Date)); err != nil {
		return nil, err
	}
	result := make([]*domain.Booking, 0)
	for _, b := range r.visible(ctx) {
		if b.RoomID == roomID && b.Slot.Overlaps(slot) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (r *fakeBookingRepo) RequesterOverlaps(ctx context.Context, lease *lock.Lease, requester domain.Requester, slot domain.Slot) ([]*domain.Booking, error) {
	if err := lease.Check(ctx, lock.RequesterDayKey(requester, slot.Date)); err != nil {
		return nil, err
	}
	result := make([]*domain.Booking, 0)
	for _, b := range r.visible(ctx) {
		if b.Requester == requester && b.Slot.Overlaps(slot) {
			result = append(result, b)
		}
	}
	return result, nil
}

// fakeRooms справочник комнат
// stored подменяет строку, которую GetByID читает из хранилища (nil - комната удалена)
type fakeRooms struct {
	rooms  []*domain.Room
	stored map[int64]*domain.Room
	err    error
}

func (f *fakeRooms) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	if f.err != nil {
		return nil, f.err
	}
	if room, ok := f.stored[id]; ok {
		if room == nil {
			return nil, roomRepo.ErrRoomNotFound
		}
		return room, nil
	}
	for _, r := range f.rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, roomRepo.ErrRoomNotFound
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

type fakeTeams struct {
	teams map[int64]*domain.Team
	err   error
}

func (f *fakeTeams) GetTeam(ctx context.Context, teamID int64) (*domain.Team, error) {
	if f.err != nil {
		return nil, f.err
	}
	team, ok := f.teams[teamID]
	if !ok {
		return nil, teamClient.ErrTeamNotFound
	}
	return team, nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []int64
	err       error
}

func (p *fakePublisher) BookingAllocated(ctx context.Context, booking *domain.Booking) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, booking.ID)
	return p.err
}

type fakeMetrics struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *fakeMetrics) ObserveAllocation(category, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, category+":"+outcome)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

// testEnv собранный use case и его зависимости
type testEnv struct {
	uc        *UseCase
	store     *memStore
	rooms     *fakeRooms
	teams     *fakeTeams
	locker    *fakeLocker
	publisher *fakePublisher
	metrics   *fakeMetrics
}

var (
	testNow  = time.Date(2024, 1, 9, 10, 0, 0, 0, time.UTC)
	tomorrow = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
)

func newTestEnv(rooms ...*domain.Room) *testEnv {
	store := newMemStore()
	env := &testEnv{
		store:     store,
		rooms:     &fakeRooms{rooms: rooms, stored: make(map[int64]*domain.Room)},
		teams:     &fakeTeams{teams: make(map[int64]*domain.Team)},
		locker:    &fakeLocker{store: store},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{},
	}
	env.uc = NewUseCase(
		&fakeBookingRepo{store: store},
		env.rooms,
		env.teams,
		env.locker,
		&fakeTxManager{store: store},
		env.publisher,
		env.metrics,
		DefaultConfig(),
		nopLogger{},
	)
	env.uc.timeProvider = fixedTime{now: testNow}
	return env
}

func (e *testEnv) addTeam(id int64, ages ...int) {
	members := make([]domain.TeamMember, 0, len(ages))
	for i, age := range ages {
		members = append(members, domain.TeamMember{UserID: id*100 + int64(i), Age: age})
	}
	e.teams.teams[id] = &domain.Team{ID: id, Members: members}
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func room(id int64, category domain.RoomCategory, capacity int) *domain.Room {
	return &domain.Room{ID: id, Name: string(category), Category: category, Capacity: capacity}
}

func slotOn(date time.Time, start, end string) domain.Slot {
	return domain.NewSlot(date, types.MustTimeString(start), types.MustTimeString(end))
}

// individual запрос пользователя от своего имени
func individual(userID int64, category domain.RoomCategory, start, end string) *Request {
	return &Request{
		Actor:     domain.Actor{UserID: userID},
		Requester: domain.Individual(userID),
		Category:  category,
		Slot:      slotOn(tomorrow, start, end),
	}
}

// teamRequest запрос участника команды от имени команды
func teamRequest(teamID int64, category domain.RoomCategory, start, end string) *Request {
	actorTeam := teamID
	return &Request{
		Actor:     domain.Actor{UserID: teamID * 100, TeamID: &actorTeam},
		Requester: domain.TeamRequester(teamID),
		Category:  category,
		Slot:      slotOn(tomorrow, start, end),
	}
}
