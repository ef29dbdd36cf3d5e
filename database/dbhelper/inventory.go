package dbhelper

import (
	"github.com/google/uuid"

	"github.com/dinehall/dinehall/database"
	"github.com/dinehall/dinehall/models"
)

func CreateInventoryItem(item *models.InventoryItem) (uuid.UUID, error) {
	var id uuid.UUID
	err := database.DineHall.QueryRow(`
		INSERT INTO inventory_items (name, quantity, unit, threshold, cost_per_unit)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		item.Name, item.Quantity, item.Unit, item.Threshold, item.CostPerUnit).Scan(&id)
	return id, err
}

func InventoryNameTaken(name string) (bool, error) {
	var count int
	err := database.DineHall.QueryRow(`
		SELECT COUNT(*) FROM inventory_items WHERE LOWER(name) = LOWER($1)`, name).Scan(&count)
	return count > 0, err
}

func GetInventoryItemByID(id uuid.UUID) (*models.InventoryItem, error) {
	var i models.InventoryItem
	err := database.DineHall.QueryRow(`
		SELECT id, name, quantity, unit, threshold, cost_per_unit, restocked_at, created_at
		FROM inventory_items
		WHERE id = $1`, id).
		Scan(&i.ID, &i.Name, &i.Quantity, &i.Unit, &i.Threshold, &i.CostPerUnit,
			&i.RestockedAt, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func ListInventoryItems(lowStockOnly bool, limit, offset int) ([]models.InventoryItem, error) {
	rows, err := database.DineHall.Query(`
		SELECT id, name, quantity, unit, threshold, cost_per_unit, restocked_at, created_at
		FROM inventory_items
		WHERE (NOT $1 OR quantity <= threshold)
		ORDER BY name
		LIMIT $2 OFFSET $3`, lowStockOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.InventoryItem
	for rows.Next() {
		var i models.InventoryItem
		if err := rows.Scan(&i.ID, &i.Name, &i.Quantity, &i.Unit, &i.Threshold,
			&i.CostPerUnit, &i.RestockedAt, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func UpdateInventoryItem(item *models.InventoryItem) error {
	res, err := database.DineHall.Exec(`
		UPDATE inventory_items
		SET name = $2, quantity = $3, unit = $4, threshold = $5, cost_per_unit = $6
		WHERE id = $1`,
		item.ID, item.Name, item.Quantity, item.Unit, item.Threshold, item.CostPerUnit)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func RestockInventoryItem(id uuid.UUID, delta float64) error {
	res, err := database.DineHall.Exec(`
		UPDATE inventory_items
		SET quantity = quantity + $2, restocked_at = now()
		WHERE id = $1`, id, delta)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func DeleteInventoryItem(id uuid.UUID) error {
	res, err := database.DineHall.Exec(`DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
