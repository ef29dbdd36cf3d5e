package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimesConflict(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		request  string
		want     bool
	}{
		{"exact same slot", "18:00", "18:00", true},
		{"half hour later", "18:00", "18:30", true},
		{"just inside the window", "18:00", "19:59", true},
		{"just inside the window, earlier", "18:00", "16:01", true},
		{"exactly two hours later", "18:00", "20:00", false},
		{"exactly two hours earlier", "18:00", "16:00", false},
		{"well clear", "12:00", "19:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimesConflict(tt.existing, tt.request))
		})
	}
}

func TestParseStartTime(t *testing.T) {
	_, err := ParseStartTime("18:30")
	require.NoError(t, err)

	_, err = ParseStartTime("25:00")
	require.Error(t, err)

	_, err = ParseStartTime("6pm")
	require.Error(t, err)
}

func TestReservationStatusIsActive(t *testing.T) {
	active := []ReservationStatus{ReservationPending, ReservationConfirmed, ReservationSeated}
	for _, s := range active {
		assert.True(t, s.IsActive(), "%s should hold its table", s)
	}

	inactive := []ReservationStatus{ReservationCompleted, ReservationCancelled, ReservationNoShow}
	for _, s := range inactive {
		assert.False(t, s.IsActive(), "%s should release its table", s)
	}
}
