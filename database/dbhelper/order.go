package dbhelper

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/dinehall/dinehall/database"
	"github.com/dinehall/dinehall/models"
)

// CountOrdersOnDay feeds the per-day order-number sequence; it runs inside the
// creation transaction so two concurrent orders cannot claim the same number.
func CountOrdersOnDay(tx *sql.Tx, day time.Time) (int, error) {
	var count int
	err := tx.QueryRow(`
		SELECT COUNT(*) FROM orders
		WHERE created_at::date = $1::date`, day.Format("2006-01-02")).Scan(&count)
	return count, err
}

func InsertOrder(tx *sql.Tx, o *models.Order) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(`
		INSERT INTO orders (order_number, customer_id, staff_id, type, status, payment_status,
			subtotal, tax, tip, discount_amount, discount_reason, total, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`,
		o.OrderNumber, o.CustomerID, o.StaffID, o.Type, o.Status, o.PaymentStatus,
		o.Subtotal, o.Tax, o.Tip, o.DiscountAmount, o.DiscountReason, o.Total, o.Notes).Scan(&id)
	return id, err
}

func InsertOrderItems(tx *sql.Tx, orderID uuid.UUID, items []models.OrderItem) error {
	for _, item := range items {
		_, err := tx.Exec(`
			INSERT INTO order_items (order_id, menu_item_id, name, quantity, price)
			VALUES ($1, $2, $3, $4, $5)`,
			orderID, item.MenuItemID, item.Name, item.Quantity, item.Price)
		if err != nil {
			return err
		}
	}
	return nil
}

func GetOrderByID(id uuid.UUID) (*models.Order, error) {
	var o models.Order
	var cust models.CustomerSummary
	var custSpent float64
	var staffID sql.NullString
	var staffName, staffRole sql.NullString

	err := database.DineHall.QueryRow(`
		SELECT o.id, o.order_number, o.customer_id, o.staff_id, o.type, o.status, o.payment_status,
		       o.subtotal, o.tax, o.tip, o.discount_amount, o.discount_reason, o.total, o.notes,
		       o.created_at, o.updated_at,
		       c.name, c.email, c.phone, c.total_spent,
		       u.name, u.role
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		LEFT JOIN users u ON u.id = o.staff_id
		WHERE o.id = $1`, id).
		Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &staffID, &o.Type, &o.Status, &o.PaymentStatus,
			&o.Subtotal, &o.Tax, &o.Tip, &o.DiscountAmount, &o.DiscountReason, &o.Total, &o.Notes,
			&o.CreatedAt, &o.UpdatedAt,
			&cust.Name, &cust.Email, &cust.Phone, &custSpent,
			&staffName, &staffRole)
	if err != nil {
		return nil, err
	}

	cust.ID = o.CustomerID
	cust.Tier = models.TierFor(custSpent)
	o.Customer = &cust

	if staffID.Valid {
		sid, err := uuid.Parse(staffID.String)
		if err == nil {
			o.StaffID = &sid
			o.Staff = &models.UserSummary{ID: sid, Name: staffName.String, Role: models.Role(staffRole.String)}
		}
	}

	items, err := listOrderItems(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func listOrderItems(orderID uuid.UUID) ([]models.OrderItem, error) {
	rows, err := database.DineHall.Query(`
		SELECT id, order_id, menu_item_id, name, quantity, price
		FROM order_items
		WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var i models.OrderItem
		if err := rows.Scan(&i.ID, &i.OrderID, &i.MenuItemID, &i.Name, &i.Quantity, &i.Price); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func ListOrders(status models.OrderStatus, from, to time.Time, limit, offset int) ([]models.Order, error) {
	rows, err := database.DineHall.Query(`
		SELECT id, order_number, customer_id, staff_id, type, status, payment_status,
		       subtotal, tax, tip, discount_amount, discount_reason, total, notes,
		       created_at, updated_at
		FROM orders
		WHERE ($1 = '' OR status = $1)
		  AND created_at >= $2 AND created_at < $3
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`,
		string(status), from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		var staffID sql.NullString
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &staffID, &o.Type, &o.Status,
			&o.PaymentStatus, &o.Subtotal, &o.Tax, &o.Tip, &o.DiscountAmount, &o.DiscountReason,
			&o.Total, &o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		if staffID.Valid {
			if sid, err := uuid.Parse(staffID.String); err == nil {
				o.StaffID = &sid
			}
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func GetOrderStatus(id uuid.UUID) (models.OrderStatus, error) {
	var status models.OrderStatus
	err := database.DineHall.QueryRow(`SELECT status FROM orders WHERE id = $1`, id).Scan(&status)
	return status, err
}

func UpdateOrderStatus(id uuid.UUID, status models.OrderStatus) error {
	res, err := database.DineHall.Exec(`
		UPDATE orders SET status = $2, updated_at = now()
		WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func UpdateOrderPayment(o *models.Order) error {
	res, err := database.DineHall.Exec(`
		UPDATE orders
		SET payment_status = $2, tip = $3, discount_amount = $4, discount_reason = $5,
		    total = $6, updated_at = now()
		WHERE id = $1`,
		o.ID, o.PaymentStatus, o.Tip, o.DiscountAmount, o.DiscountReason, o.Total)
	if err != nil {
		return err
	}
	return requireRow(res)
}
