package allocate_room

import (
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// admission данные заявки, которые нужны политике категории
type admission struct {
	requester domain.Requester
	team      *domain.Team // nil, если команда не загружалась
}

// categoryPolicy правила допуска для категории комнат
type categoryPolicy interface {
	// admit проверяет, может ли заявитель бронировать комнаты категории
	admit(a admission, cfg Config) error
	// fits проверяет статическую пригодность комнаты для заявки (без учёта занятости)
	fits(room *domain.Room, a admission, cfg Config) bool
	// needsTeam сообщает, нужен ли состав команды для решения
	needsTeam(r domain.Requester) bool
}

// policies таблица стратегий по категориям
var policies = map[domain.RoomCategory]categoryPolicy{
	domain.CategoryPrivate:    privatePolicy{},
	domain.CategoryConference: conferencePolicy{},
	domain.CategoryShared:     sharedPolicy{},
}

func policyFor(category domain.RoomCategory) (categoryPolicy, error) {
	p, ok := policies[category]
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}
	return p, nil
}

// privatePolicy индивидуальная комната: только пользователь, одно бронирование на слот
type privatePolicy struct{}

func (privatePolicy) admit(a admission, cfg Config) error {
	if a.requester.Kind != domain.RequesterIndividual {
		return fmt.Errorf("%w: private rooms are for individuals", ErrInvalidRequesterForCategory)
	}
	return nil
}

func (privatePolicy) fits(room *domain.Room, a admission, cfg Config) bool {
	return true
}

func (privatePolicy) needsTeam(r domain.Requester) bool {
	return false
}

// conferencePolicy переговорная: только команда не меньше минимального размера
// Дети младше SeatlessAgeBelow учитываются в численности, но не занимают мест
type conferencePolicy struct{}

func (conferencePolicy) admit(a admission, cfg Config) error {
	if a.requester.Kind != domain.RequesterTeam {
		return fmt.Errorf("%w: conference rooms are for teams", ErrInvalidRequesterForCategory)
	}
	if a.team == nil {
		return fmt.Errorf("%w: team %d", ErrTeamNotFound, a.requester.ID)
	}
	if headcount := a.team.Headcount(); headcount < cfg.ConferenceMinHeadcount {
		return fmt.Errorf("%w: team %d has %d members, need at least %d",
			ErrTeamTooSmall, a.team.ID, headcount, cfg.ConferenceMinHeadcount)
	}
	return nil
}

func (conferencePolicy) fits(room *domain.Room, a admission, cfg Config) bool {
	return a.team != nil && room.Capacity >= a.team.SeatCount(cfg.SeatlessAgeBelow)
}

func (conferencePolicy) needsTeam(r domain.Requester) bool {
	return r.IsTeam()
}

// sharedPolicy общее пространство: любой заявитель, пока пересечений меньше capacity
type sharedPolicy struct{}

func (sharedPolicy) admit(a admission, cfg Config) error {
	return nil
}

func (sharedPolicy) fits(room *domain.Room, a admission, cfg Config) bool {
	return true
}

func (sharedPolicy) needsTeam(r domain.Requester) bool {
	return false
}
