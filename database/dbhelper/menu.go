package dbhelper

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/dinehall/dinehall/database"
	"github.com/dinehall/dinehall/models"
)

func CreateMenuItem(item *models.MenuItem) (uuid.UUID, error) {
	var id uuid.UUID
	err := database.DineHall.QueryRow(`
		INSERT INTO menu_items (name, description, category, price, cost, is_available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		item.Name, item.Description, item.Category, item.Price, item.Cost, item.IsAvailable).Scan(&id)
	return id, err
}

func MenuItemNameTaken(name string) (bool, error) {
	var count int
	err := database.DineHall.QueryRow(`
		SELECT COUNT(*) FROM menu_items
		WHERE LOWER(name) = LOWER($1) AND archived_at IS NULL`, name).Scan(&count)
	return count > 0, err
}

func GetMenuItemByID(id uuid.UUID) (*models.MenuItem, error) {
	var m models.MenuItem
	err := database.DineHall.QueryRow(`
		SELECT id, name, description, category, price, cost, is_available, times_ordered, created_at
		FROM menu_items
		WHERE id = $1 AND archived_at IS NULL`, id).
		Scan(&m.ID, &m.Name, &m.Description, &m.Category, &m.Price, &m.Cost,
			&m.IsAvailable, &m.TimesOrdered, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.MarginPct = models.MarginPercent(m.Price, m.Cost)
	return &m, nil
}

func ListMenuItems(category string, availableOnly bool, limit, offset int) ([]models.MenuItem, error) {
	rows, err := database.DineHall.Query(`
		SELECT id, name, description, category, price, cost, is_available, times_ordered, created_at
		FROM menu_items
		WHERE archived_at IS NULL
		  AND ($1 = '' OR category = $1)
		  AND (NOT $2 OR is_available)
		ORDER BY category, name
		LIMIT $3 OFFSET $4`, category, availableOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var m models.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Category, &m.Price, &m.Cost,
			&m.IsAvailable, &m.TimesOrdered, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.MarginPct = models.MarginPercent(m.Price, m.Cost)
		items = append(items, m)
	}
	return items, rows.Err()
}

func UpdateMenuItem(item *models.MenuItem) error {
	res, err := database.DineHall.Exec(`
		UPDATE menu_items
		SET name = $2, description = $3, category = $4, price = $5, cost = $6, is_available = $7
		WHERE id = $1 AND archived_at IS NULL`,
		item.ID, item.Name, item.Description, item.Category, item.Price, item.Cost, item.IsAvailable)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func SetMenuItemAvailability(id uuid.UUID, available bool) error {
	res, err := database.DineHall.Exec(`
		UPDATE menu_items SET is_available = $2
		WHERE id = $1 AND archived_at IS NULL`, id, available)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func ArchiveMenuItem(id uuid.UUID) error {
	res, err := database.DineHall.Exec(`
		UPDATE menu_items SET archived_at = now()
		WHERE id = $1 AND archived_at IS NULL`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// GetMenuItemsForOrder fetches the referenced items in one round trip; the
// caller checks that every requested id came back and is available.
func GetMenuItemsForOrder(tx *sql.Tx, ids []uuid.UUID) (map[uuid.UUID]models.MenuItem, error) {
	rows, err := tx.Query(`
		SELECT id, name, price, is_available
		FROM menu_items
		WHERE id = ANY($1) AND archived_at IS NULL`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[uuid.UUID]models.MenuItem)
	for rows.Next() {
		var m models.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Price, &m.IsAvailable); err != nil {
			return nil, err
		}
		items[m.ID] = m
	}
	return items, rows.Err()
}

func IncrementTimesOrdered(tx *sql.Tx, id uuid.UUID, qty int) error {
	_, err := tx.Exec(`
		UPDATE menu_items SET times_ordered = times_ordered + $2
		WHERE id = $1`, id, qty)
	return err
}

// ReplaceIngredients rewrites a menu item's inventory links in one shot.
func ReplaceIngredients(menuItemID uuid.UUID, ingredients []models.Ingredient) error {
	return database.Tx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM menu_item_ingredients WHERE menu_item_id = $1`, menuItemID); err != nil {
			return err
		}
		for _, ing := range ingredients {
			_, err := tx.Exec(`
				INSERT INTO menu_item_ingredients (menu_item_id, inventory_item_id, quantity)
				VALUES ($1, $2, $3)`,
				menuItemID, ing.InventoryItemID, ing.Quantity)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func ListIngredients(menuItemID uuid.UUID) ([]models.Ingredient, error) {
	rows, err := database.DineHall.Query(`
		SELECT menu_item_id, inventory_item_id, quantity
		FROM menu_item_ingredients
		WHERE menu_item_id = $1`, menuItemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []models.Ingredient
	for rows.Next() {
		var ing models.Ingredient
		if err := rows.Scan(&ing.MenuItemID, &ing.InventoryItemID, &ing.Quantity); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}
