package dbhelper

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/dinehall/dinehall/database"
	"github.com/dinehall/dinehall/models"
)

func CreateCustomer(name, email, phone string) (uuid.UUID, error) {
	var id uuid.UUID
	err := database.DineHall.QueryRow(`
		INSERT INTO customers (name, email, phone)
		VALUES ($1, $2, $3)
		RETURNING id`,
		name, email, phone).Scan(&id)
	return id, err
}

func CustomerContactTaken(email, phone string) (bool, error) {
	var count int
	err := database.DineHall.QueryRow(`
		SELECT COUNT(*) FROM customers
		WHERE (LOWER(email) = LOWER($1) OR phone = $2) AND archived_at IS NULL`,
		email, phone).Scan(&count)
	return count > 0, err
}

func GetCustomerByID(id uuid.UUID) (*models.Customer, error) {
	var c models.Customer
	err := database.DineHall.QueryRow(`
		SELECT id, name, email, phone, loyalty_points, total_spent, visits, last_visit, created_at
		FROM customers
		WHERE id = $1 AND archived_at IS NULL`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.LoyaltyPoints, &c.TotalSpent,
			&c.Visits, &c.LastVisit, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Tier = models.TierFor(c.TotalSpent)

	feedback, err := listFeedback(id)
	if err != nil {
		return nil, err
	}
	c.Feedback = feedback
	return &c, nil
}

func listFeedback(customerID uuid.UUID) ([]models.Feedback, error) {
	rows, err := database.DineHall.Query(`
		SELECT id, customer_id, rating, comment, created_at
		FROM customer_feedback
		WHERE customer_id = $1
		ORDER BY created_at DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedback []models.Feedback
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(&f.ID, &f.CustomerID, &f.Rating, &f.Comment, &f.CreatedAt); err != nil {
			return nil, err
		}
		feedback = append(feedback, f)
	}
	return feedback, rows.Err()
}

func ListCustomers(search string, limit, offset int) ([]models.Customer, error) {
	rows, err := database.DineHall.Query(`
		SELECT id, name, email, phone, loyalty_points, total_spent, visits, last_visit, created_at
		FROM customers
		WHERE archived_at IS NULL
		  AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.LoyaltyPoints,
			&c.TotalSpent, &c.Visits, &c.LastVisit, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Tier = models.TierFor(c.TotalSpent)
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func UpdateCustomer(id uuid.UUID, name, email, phone string) error {
	res, err := database.DineHall.Exec(`
		UPDATE customers SET name = $2, email = $3, phone = $4
		WHERE id = $1 AND archived_at IS NULL`,
		id, name, email, phone)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func ArchiveCustomer(id uuid.UUID) error {
	res, err := database.DineHall.Exec(`
		UPDATE customers SET archived_at = now()
		WHERE id = $1 AND archived_at IS NULL`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func AddFeedback(customerID uuid.UUID, rating int, comment string) (uuid.UUID, error) {
	var id uuid.UUID
	err := database.DineHall.QueryRow(`
		INSERT INTO customer_feedback (customer_id, rating, comment)
		VALUES ($1, $2, $3)
		RETURNING id`,
		customerID, rating, comment).Scan(&id)
	return id, err
}

// ApplyOrderStats rolls an order's total into the customer's denormalized
// counters. Runs inside the order-creation transaction.
func ApplyOrderStats(tx *sql.Tx, customerID uuid.UUID, total float64, points int, visitedAt time.Time) error {
	_, err := tx.Exec(`
		UPDATE customers
		SET visits = visits + 1,
		    total_spent = total_spent + $2,
		    loyalty_points = loyalty_points + $3,
		    last_visit = $4
		WHERE id = $1`,
		customerID, total, points, visitedAt)
	return err
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
