package domain

// TeamMember участник команды
type TeamMember struct {
	UserID int64
	Age    int
}

// Team команда, от имени которой бронируется переговорная
type Team struct {
	ID      int64
	Name    string
	Members []TeamMember
}

// Headcount общее число участников, включая детей
func (t *Team) Headcount() int {
	return len(t.Members)
}

// SeatCount число мест, которые займёт команда
// Участники младше seatlessAgeBelow места не занимают
func (t *Team) SeatCount(seatlessAgeBelow int) int {
	seats := 0
	for _, m := range t.Members {
		if m.Age >= seatlessAgeBelow {
			seats++
		}
	}
	return seats
}
