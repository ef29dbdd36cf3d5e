package dbhelper

import (
	"time"

	"github.com/google/uuid"

	"github.com/dinehall/dinehall/database"
	"github.com/dinehall/dinehall/models"
)

// Report queries are independent read-only aggregations; every call recomputes
// from the store, nothing is cached.

type SalesTotals struct {
	Revenue    float64 `json:"revenue"`
	OrderCount int     `json:"order_count"`
}

func GetSalesTotals(from, to time.Time) (SalesTotals, error) {
	var t SalesTotals
	err := database.DineHall.QueryRow(`
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM orders
		WHERE status = 'completed' AND created_at >= $1 AND created_at < $2`,
		from, to).Scan(&t.Revenue, &t.OrderCount)
	return t, err
}

type DayRevenue struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

func GetRevenueByDay(from, to time.Time) ([]DayRevenue, error) {
	rows, err := database.DineHall.Query(`
		SELECT created_at::date::text, COALESCE(SUM(total), 0), COUNT(*)
		FROM orders
		WHERE status = 'completed' AND created_at >= $1 AND created_at < $2
		GROUP BY created_at::date
		ORDER BY created_at::date`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []DayRevenue
	for rows.Next() {
		var d DayRevenue
		if err := rows.Scan(&d.Day, &d.Revenue, &d.Orders); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

type GroupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

func CountOrdersBy(column string, from, to time.Time) ([]GroupCount, error) {
	// column is one of the fixed literals below, never user input
	var query string
	switch column {
	case "type":
		query = `SELECT type, COUNT(*) FROM orders WHERE created_at >= $1 AND created_at < $2 GROUP BY type ORDER BY type`
	default:
		query = `SELECT status, COUNT(*) FROM orders WHERE created_at >= $1 AND created_at < $2 GROUP BY status ORDER BY status`
	}

	rows, err := database.DineHall.Query(query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []GroupCount
	for rows.Next() {
		var c GroupCount
		if err := rows.Scan(&c.Key, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

type MenuPerformanceRow struct {
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	UnitsSold  int       `json:"units_sold"`
	Revenue    float64   `json:"revenue"`
	Cost       float64   `json:"cost"`
	MarginPct  float64   `json:"margin_pct"`
}

func GetMenuPerformance(from, to time.Time, limit int) ([]MenuPerformanceRow, error) {
	rows, err := database.DineHall.Query(`
		SELECT m.id, m.name, m.category,
		       COALESCE(SUM(oi.quantity), 0),
		       COALESCE(SUM(oi.price * oi.quantity), 0),
		       COALESCE(SUM(m.cost * oi.quantity), 0)
		FROM menu_items m
		JOIN order_items oi ON oi.menu_item_id = m.id
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status = 'completed' AND o.created_at >= $1 AND o.created_at < $2
		GROUP BY m.id, m.name, m.category
		ORDER BY SUM(oi.quantity) DESC
		LIMIT $3`, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perf []MenuPerformanceRow
	for rows.Next() {
		var p MenuPerformanceRow
		if err := rows.Scan(&p.MenuItemID, &p.Name, &p.Category, &p.UnitsSold, &p.Revenue, &p.Cost); err != nil {
			return nil, err
		}
		p.MarginPct = models.MarginPercent(p.Revenue, p.Cost)
		perf = append(perf, p)
	}
	return perf, rows.Err()
}

// ListCustomerSpends returns every live customer's lifetime spend; tier
// bucketing happens in Go so the thresholds live in one place.
func ListCustomerSpends() ([]float64, error) {
	rows, err := database.DineHall.Query(`
		SELECT total_spent FROM customers WHERE archived_at IS NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spends []float64
	for rows.Next() {
		var s float64
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		spends = append(spends, s)
	}
	return spends, rows.Err()
}

func ListTopSpenders(limit int) ([]models.Customer, error) {
	rows, err := database.DineHall.Query(`
		SELECT id, name, email, phone, loyalty_points, total_spent, visits, last_visit, created_at
		FROM customers
		WHERE archived_at IS NULL
		ORDER BY total_spent DESC
		LIMIT $1`, limit)
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

func CountNewCustomers(from, to time.Time) (int, error) {
	var count int
	err := database.DineHall.QueryRow(`
		SELECT COUNT(*) FROM customers
		WHERE created_at >= $1 AND created_at < $2 AND archived_at IS NULL`,
		from, to).Scan(&count)
	return count, err
}

func CountReservationsByStatus(from, to time.Time) ([]GroupCount, error) {
	rows, err := database.DineHall.Query(`
		SELECT status, COUNT(*)
		FROM reservations
		WHERE date >= $1::date AND date < $2::date
		GROUP BY status
		ORDER BY status`,
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []GroupCount
	for rows.Next() {
		var c GroupCount
		if err := rows.Scan(&c.Key, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

type TableUsage struct {
	TableNumber  int `json:"table_number"`
	Reservations int `json:"reservations"`
}

func GetTableUtilization(from, to time.Time) ([]TableUsage, error) {
	rows, err := database.DineHall.Query(`
		SELECT table_number, COUNT(*)
		FROM reservations
		WHERE date >= $1::date AND date < $2::date
		  AND status NOT IN ('cancelled', 'no_show')
		GROUP BY table_number
		ORDER BY COUNT(*) DESC`,
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usage []TableUsage
	for rows.Next() {
		var u TableUsage
		if err := rows.Scan(&u.TableNumber, &u.Reservations); err != nil {
			return nil, err
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}

type InventoryUsageRow struct {
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	Name            string    `json:"name"`
	Unit            string    `json:"unit"`
	UsedQuantity    float64   `json:"used_quantity"`
}

// GetInventoryUsage estimates consumption from completed orders through the
// menu-item ingredient links.
func GetInventoryUsage(from, to time.Time) ([]InventoryUsageRow, error) {
	rows, err := database.DineHall.Query(`
		SELECT inv.id, inv.name, inv.unit,
		       COALESCE(SUM(oi.quantity * ing.quantity), 0)
		FROM inventory_items inv
		JOIN menu_item_ingredients ing ON ing.inventory_item_id = inv.id
		JOIN order_items oi ON oi.menu_item_id = ing.menu_item_id
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status = 'completed' AND o.created_at >= $1 AND o.created_at < $2
		GROUP BY inv.id, inv.name, inv.unit
		ORDER BY inv.name`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usage []InventoryUsageRow
	for rows.Next() {
		var u InventoryUsageRow
		if err := rows.Scan(&u.InventoryItemID, &u.Name, &u.Unit, &u.UsedQuantity); err != nil {
			return nil, err
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}
