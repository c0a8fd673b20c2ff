package domain

import "github.com/m04kA/SMC-RoomBookingService/pkg/types"

// Значения по умолчанию для правил распределения
var (
	DefaultOpenTime  = types.MustTimeString("09:00")
	DefaultCloseTime = types.MustTimeString("18:00")
)

const (
	DefaultTimezone               = "UTC"
	DefaultConferenceMinHeadcount = 3
	DefaultSeatlessAgeBelow       = 10 // дети младше этого возраста не занимают место
)

// Ограничения для административных операций с комнатами
const (
	MinRoomCapacity    = 1
	MaxRoomCapacity    = 500
	MaxRoomNameLength  = 100
	MaxDescriptionSize = 500
)

// Пагинация списков
const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
