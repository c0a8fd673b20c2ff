package get_available_rooms

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модель запроса на получение доступных комнат
type Request struct {
	UserID   int64               // ID пользователя (для логирования, не влияет на результат)
	Category domain.RoomCategory // Категория комнат
	Slot     domain.Slot         // Дата и интервал
}

// Response модель ответа со списком доступных комнат
type Response struct {
	Category domain.RoomCategory
	Slot     domain.Slot
	Rooms    []Room // Комнаты по возрастанию ID
}

// Room модель комнаты со свободными местами на слот
type Room struct {
	ID             int64
	Name           string
	Capacity       int
	AvailableSpots int // Количество свободных мест
	TotalSpots     int // Общее количество мест (1 для эксклюзивных комнат)
}

// Config окно работы площадки
type Config struct {
	Window   domain.OperatingWindow
	Location *time.Location
}
