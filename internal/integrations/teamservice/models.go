package teamservice

import "github.com/m04kA/SMC-RoomBookingService/internal/domain"

// Team модель команды из TeamService
type Team struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Members []Member `json:"members"`
}

// Member участник команды
type Member struct {
	UserID int64 `json:"user_id"`
	Age    int   `json:"age"`
}

// ErrorResponse модель ошибки от TeamService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует ответ сервиса в доменную команду
func (t *Team) ToDomain() *domain.Team {
	members := make([]domain.TeamMember, 0, len(t.Members))
	for _, m := range t.Members {
		members = append(members, domain.TeamMember{UserID: m.UserID, Age: m.Age})
	}
	return &domain.Team{ID: t.ID, Name: t.Name, Members: members}
}
