package domain

import (
	"fmt"
	"strconv"
)

// RequesterKind тип заявителя
type RequesterKind string

const (
	RequesterIndividual RequesterKind = "individual"
	RequesterTeam       RequesterKind = "team"
)

// Requester тот, от чьего имени создаётся бронирование: пользователь или команда
type Requester struct {
	Kind RequesterKind
	ID   int64
}

// Individual создает заявителя-пользователя
func Individual(userID int64) Requester {
	return Requester{Kind: RequesterIndividual, ID: userID}
}

// TeamRequester создает заявителя-команду
func TeamRequester(teamID int64) Requester {
	return Requester{Kind: RequesterTeam, ID: teamID}
}

// Validate проверяет тип и идентификатор заявителя
func (r Requester) Validate() error {
	if r.Kind != RequesterIndividual && r.Kind != RequesterTeam {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidRequester, r.Kind)
	}
	if r.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidRequester)
	}
	return nil
}

// IsTeam true для заявителя-команды
func (r Requester) IsTeam() bool {
	return r.Kind == RequesterTeam
}

// Key строка для ключей блокировок и логов: "individual:7"
func (r Requester) Key() string {
	return string(r.Kind) + ":" + strconv.FormatInt(r.ID, 10)
}

func (r Requester) String() string {
	return r.Key()
}
