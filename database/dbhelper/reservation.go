package dbhelper

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/dinehall/dinehall/database"
	"github.com/dinehall/dinehall/models"
)

// ListActiveSlotTimes returns the start times already held on a table for a
// given day by reservations that still occupy it. Runs inside the booking
// transaction so the overlap check and the insert see the same state.
func ListActiveSlotTimes(tx *sql.Tx, tableNumber int, date time.Time, exclude uuid.UUID) ([]string, error) {
	rows, err := tx.Query(`
		SELECT start_time FROM reservations
		WHERE table_number = $1
		  AND date = $2::date
		  AND status IN ('pending', 'confirmed', 'seated')
		  AND id != $3`,
		tableNumber, date.Format("2006-01-02"), exclude)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

func InsertReservation(tx *sql.Tx, res *models.Reservation) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(`
		INSERT INTO reservations (customer_id, table_number, date, start_time, party_size, status, notes)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7)
		RETURNING id`,
		res.CustomerID, res.TableNumber, res.Date.Format("2006-01-02"),
		res.StartTime, res.PartySize, res.Status, res.Notes).Scan(&id)
	return id, err
}

func UpdateReservation(tx *sql.Tx, res *models.Reservation) error {
	result, err := tx.Exec(`
		UPDATE reservations
		SET table_number = $2, date = $3::date, start_time = $4, party_size = $5,
		    status = $6, notes = $7, updated_at = now()
		WHERE id = $1`,
		res.ID, res.TableNumber, res.Date.Format("2006-01-02"),
		res.StartTime, res.PartySize, res.Status, res.Notes)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func GetReservationByID(id uuid.UUID) (*models.Reservation, error) {
	var r models.Reservation
	var cust models.CustomerSummary
	var custSpent float64

	err := database.DineHall.QueryRow(`
		SELECT r.id, r.customer_id, r.table_number, r.date, r.start_time, r.party_size,
		       r.status, r.notes, r.created_at, r.updated_at,
		       c.name, c.email, c.phone, c.total_spent
		FROM reservations r
		JOIN customers c ON c.id = r.customer_id
		WHERE r.id = $1`, id).
		Scan(&r.ID, &r.CustomerID, &r.TableNumber, &r.Date, &r.StartTime, &r.PartySize,
			&r.Status, &r.Notes, &r.CreatedAt, &r.UpdatedAt,
			&cust.Name, &cust.Email, &cust.Phone, &custSpent)
	if err != nil {
		return nil, err
	}

	cust.ID = r.CustomerID
	cust.Tier = models.TierFor(custSpent)
	r.Customer = &cust
	return &r, nil
}

func ListReservations(date *time.Time, status models.ReservationStatus, limit, offset int) ([]models.Reservation, error) {
	dateFilter := ""
	if date != nil {
		dateFilter = date.Format("2006-01-02")
	}

	rows, err := database.DineHall.Query(`
		SELECT id, customer_id, table_number, date, start_time, party_size, status, notes,
		       created_at, updated_at
		FROM reservations
		WHERE ($1 = '' OR date = $1::date)
		  AND ($2 = '' OR status = $2)
		ORDER BY date, start_time
		LIMIT $3 OFFSET $4`,
		dateFilter, string(status), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		var r models.Reservation
		if err := rows.Scan(&r.ID, &r.CustomerID, &r.TableNumber, &r.Date, &r.StartTime,
			&r.PartySize, &r.Status, &r.Notes, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

func UpdateReservationStatus(id uuid.UUID, status models.ReservationStatus) error {
	res, err := database.DineHall.Exec(`
		UPDATE reservations SET status = $2, updated_at = now()
		WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	return requireRow(res)
}
