package service

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/interview_scheduler/internal/model"
)

// BookingWindow возвращает понедельник и пятницу следующей календарной недели (полночь).
func BookingWindow(now time.Time) (monday, friday time.Time) {
	// 0 = понедельник ... 6 = воскресенье
	weekdayIndex := (int(now.Weekday()) + 6) % 7

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monday = today.AddDate(0, 0, 7-weekdayIndex)
	friday = monday.AddDate(0, 0, 4)
	return monday, friday
}

// IsInBookingWindow проверяет, что день dayID (YYYYMMDD) попадает в [понедельник, пятница]
// следующей недели. Неразбираемый dayID - ошибка валидации.
func IsInBookingWindow(dayID string, now time.Time) (bool, error) {
	day, err := time.ParseInLocation(model.DayIDLayout, dayID, now.Location())
	if err != nil {
		return false, fmt.Errorf("%w: day_id %q must be in YYYYMMDD format", ErrValidation, dayID)
	}

	monday, friday := BookingWindow(now)
	return !day.Before(monday) && !day.After(friday), nil
}
