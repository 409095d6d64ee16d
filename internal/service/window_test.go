package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingWindow(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		wantMonday string
		wantFriday string
	}{
		{"wednesday", time.Date(2026, 10, 14, 10, 30, 0, 0, time.Local), "20261019", "20261023"},
		{"monday midnight", time.Date(2026, 10, 19, 0, 0, 0, 0, time.Local), "20261026", "20261030"},
		{"sunday late", time.Date(2026, 10, 18, 23, 59, 0, 0, time.Local), "20261019", "20261023"},
		{"across month", time.Date(2026, 10, 29, 8, 0, 0, 0, time.Local), "20261102", "20261106"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monday, friday := BookingWindow(tt.now)
			assert.Equal(t, tt.wantMonday, monday.Format("20060102"))
			assert.Equal(t, tt.wantFriday, friday.Format("20060102"))
			assert.Equal(t, time.Monday, monday.Weekday())
			assert.Zero(t, monday.Hour())
		})
	}
}

func TestIsInBookingWindow(t *testing.T) {
	now := time.Date(2026, 10, 14, 15, 45, 0, 0, time.Local)

	tests := []struct {
		dayID string
		want  bool
	}{
		{"20261018", false}, // воскресенье перед окном
		{"20261019", true},
		{"20261020", true},
		{"20261021", true},
		{"20261022", true},
		{"20261023", true},
		{"20261024", false}, // суббота
		{"20261014", false},
		{"20301212", false},
		{"20121212", false},
	}

	for _, tt := range tests {
		t.Run(tt.dayID, func(t *testing.T) {
			got, err := IsInBookingWindow(tt.dayID, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsInBookingWindowRejectsMalformedDay(t *testing.T) {
	now := time.Date(2026, 10, 14, 15, 45, 0, 0, time.Local)

	for _, dayID := range []string{"", "2026-10-19", "20261340", "abc", "2026101"} {
		_, err := IsInBookingWindow(dayID, now)
		assert.ErrorIs(t, err, ErrValidation, dayID)
	}
}
