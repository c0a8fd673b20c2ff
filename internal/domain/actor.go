package domain

// Actor вызывающая сторона, как её определил слой идентификации
type Actor struct {
	UserID  int64
	TeamID  *int64 // Команда, от имени которой может действовать пользователь
	IsAdmin bool
}

// Owns проверяет, что заявитель - сам пользователь или его команда
func (a Actor) Owns(r Requester) bool {
	if r == Individual(a.UserID) {
		return true
	}
	return a.TeamID != nil && r == TeamRequester(*a.TeamID)
}

// CanActFor проверяет, может ли пользователь действовать от имени заявителя
// Администратор может действовать от имени любого заявителя
func (a Actor) CanActFor(r Requester) bool {
	return a.IsAdmin || a.Owns(r)
}
