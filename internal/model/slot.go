package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrSlotOwnerMissing кандидат или сотрудник слота не существует (например, удалён во время бронирования)
var ErrSlotOwnerMissing = errors.New("slot owner does not exist")

const (
	// DayIDLayout формат идентификатора дня: YYYYMMDD
	DayIDLayout = "20060102"
	// SlotCodeLayout формат кода слота: YYYYMMDD + час
	SlotCodeLayout = "2006010215"
	// HourLayout формат часа в ответе пересечения
	HourLayout = "2006-01-02 15:00"
)

// Slot один забронированный час кандидата или сотрудника
type Slot struct {
	ID          int64  `json:"id"`
	CandidateID *int64 `json:"candidate"` // указатель - может быть nil
	EmployeeID  *int64 `json:"employee"`  // указатель - может быть nil
	Code        string `json:"code"`
}

// SlotCode собирает код слота из идентификатора дня и часа
func SlotCode(dayID string, hour int) string {
	return fmt.Sprintf("%s%02d", dayID, hour)
}

// ParseSlotCode разбирает код слота. Час в коде наивный, поэтому разбираем в UTC:
// в локальной зоне час перевода часов сдвинулся бы на соседний.
func ParseSlotCode(code string) (time.Time, error) {
	t, err := time.ParseInLocation(SlotCodeLayout, code, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse slot code %q: %w", code, err)
	}
	return t, nil
}

// FormatHour переводит код слота в вид "YYYY-MM-DD HH:00"
func FormatHour(code string) (string, error) {
	t, err := ParseSlotCode(code)
	if err != nil {
		return "", err
	}
	return t.Format(HourLayout), nil
}
