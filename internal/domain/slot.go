package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// Slot временной интервал бронирования в пределах одного дня
// Интервал полуоткрытый: [Start, End)
type Slot struct {
	Date  time.Time // Дата (время суток игнорируется)
	Start types.TimeString
	End   types.TimeString
}

// NewSlot создает слот, обнуляя время суток в дате
func NewSlot(date time.Time, start, end types.TimeString) Slot {
	return Slot{Date: DateOnly(date), Start: start, End: end}
}

// Overlaps проверяет пересечение двух слотов
// Слоты в разные даты не пересекаются.
// Граничащие слоты (a.End == b.Start) не пересекаются
func (s Slot) Overlaps(other Slot) bool {
	if !SameDay(s.Date, other.Date) {
		return false
	}
	return s.Start.IsBefore(other.End) && other.Start.IsBefore(s.End)
}

// DurationMinutes возвращает длительность слота в минутах
func (s Slot) DurationMinutes() int {
	return s.End.Minutes() - s.Start.Minutes()
}

// Validate проверяет слот относительно рабочего окна и текущего времени
// now должен быть в часовом поясе площадки
func (s Slot) Validate(window OperatingWindow, now time.Time) error {
	if s.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidSlot)
	}
	if s.Start.Validate() != nil || s.End.Validate() != nil {
		return fmt.Errorf("%w: start and end must be HH:MM", ErrInvalidSlot)
	}
	if !s.Start.IsBefore(s.End) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidSlot, s.Start, s.End)
	}
	if !window.Contains(s) {
		return fmt.Errorf("%w: slot %s-%s is outside operating hours %s-%s",
			ErrInvalidSlot, s.Start, s.End, window.Open, window.Close)
	}
	if isDateInPast(s.Date, now) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidSlot, s.Date.Format(DateFormat))
	}
	// Сегодняшний слот допустим, только если он ещё не закончился
	if SameDay(s.Date, now) && !s.End.IsAfter(types.NewTimeString(now)) {
		return fmt.Errorf("%w: slot ending at %s has already passed", ErrInvalidSlot, s.End)
	}
	return nil
}

// String возвращает слот в формате "2024-01-10 09:00-10:00"
func (s Slot) String() string {
	return fmt.Sprintf("%s %s-%s", s.Date.Format(DateFormat), s.Start, s.End)
}

// OperatingWindow рабочие часы площадки
type OperatingWindow struct {
	Open  types.TimeString
	Close types.TimeString
}

// DefaultOperatingWindow рабочее окно по умолчанию 09:00-18:00
func DefaultOperatingWindow() OperatingWindow {
	return OperatingWindow{Open: DefaultOpenTime, Close: DefaultCloseTime}
}

// Contains проверяет, что слот целиком лежит в рабочем окне
func (w OperatingWindow) Contains(s Slot) bool {
	return !s.Start.IsBefore(w.Open) && !s.End.IsAfter(w.Close)
}

// DateOnly обнуляет время суток, сохраняя календарную дату
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay проверяет, что две даты относятся к одному и тому же дню
func SameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	dateOnly := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
