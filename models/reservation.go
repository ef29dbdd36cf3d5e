package models

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationSeated    ReservationStatus = "seated"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationNoShow    ReservationStatus = "no_show"
)

func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationSeated,
		ReservationCompleted, ReservationCancelled, ReservationNoShow:
		return true
	}
	return false
}

// IsActive reports whether the reservation still holds its table, i.e.
// participates in double-booking checks.
func (s ReservationStatus) IsActive() bool {
	return s == ReservationPending || s == ReservationConfirmed || s == ReservationSeated
}

// TableHoldWindow is how long a party is assumed to occupy its table.
const TableHoldWindow = 2 * time.Hour

type Reservation struct {
	ID          uuid.UUID         `db:"id" json:"id"`
	CustomerID  uuid.UUID         `db:"customer_id" json:"customer_id"`
	TableNumber int               `db:"table_number" json:"table_number"`
	Date        time.Time         `db:"date" json:"date"`
	StartTime   string            `db:"start_time" json:"start_time"`
	PartySize   int               `db:"party_size" json:"party_size"`
	Status      ReservationStatus `db:"status" json:"status"`
	Notes       string            `db:"notes" json:"notes,omitempty"`
	Customer    *CustomerSummary  `db:"-" json:"customer,omitempty"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updated_at"`
}

// ParseStartTime validates the HH:MM wall-clock slot string.
func ParseStartTime(s string) (time.Time, error) {
	return time.Parse("15:04", s)
}

// TimesConflict reports whether two same-day slots fall inside one table-hold
// window of each other. Slots exactly TableHoldWindow apart do not conflict.
func TimesConflict(a, b string) bool {
	ta, err := ParseStartTime(a)
	if err != nil {
		return false
	}
	tb, err := ParseStartTime(b)
	if err != nil {
		return false
	}
	delta := tb.Sub(ta)
	if delta < 0 {
		delta = -delta
	}
	return delta < TableHoldWindow
}
