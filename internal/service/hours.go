package service

import (
	"fmt"
	"strconv"
	"strings"
)

// ResolveHourRange переводит пару HH:MM в полуинтервал часов [startHour, endHour).
// Минуты конца отбрасываются, неполный стартовый час округляется вверх.
func ResolveHourRange(start, end string) (startHour, endHour int, err error) {
	if start == "" || end == "" {
		return 0, 0, fmt.Errorf("%w: start_time and end_time must be provided", ErrValidation)
	}

	endHour, _, err = parseClock(end)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: end_time: %v", ErrValidation, err)
	}

	startHour, startMinute, err := parseClock(start)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: start_time: %v", ErrValidation, err)
	}
	if startMinute != 0 {
		startHour++
	}

	if startHour >= endHour {
		return 0, 0, fmt.Errorf("%w: start_time must be before end_time", ErrValidation)
	}

	return startHour, endHour, nil
}

// parseClock разбирает H[:M[:S]] в час и минуту
func parseClock(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return 0, 0, fmt.Errorf("invalid time %q", value)
	}

	limits := []int{23, 59, 59}
	fields := make([]int, 3)
	for i, part := range parts {
		n, convErr := strconv.Atoi(strings.TrimSpace(part))
		if convErr != nil || n < 0 || n > limits[i] {
			return 0, 0, fmt.Errorf("invalid time %q", value)
		}
		fields[i] = n
	}

	return fields[0], fields[1], nil
}
