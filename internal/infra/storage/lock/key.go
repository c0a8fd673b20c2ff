package lock

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Key ключ advisory-блокировки
type Key string

// RoomDayKey ключ блокировки комнаты на дату
// Все решения о занятости комнаты в этот день принимаются под этим ключом
func RoomDayKey(roomID int64, date time.Time) Key {
	return Key(fmt.Sprintf("room:%d:%s", roomID, date.Format(domain.DateFormat)))
}

// RequesterDayKey ключ блокировки заявителя на дату
func RequesterDayKey(r domain.Requester, date time.Time) Key {
	return Key(fmt.Sprintf("requester:%s:%s", r.Key(), date.Format(domain.DateFormat)))
}

func (k Key) String() string {
	return string(k)
}
