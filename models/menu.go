package models

import (
	"time"

	"github.com/google/uuid"
)

type MenuItem struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Description  string     `db:"description" json:"description"`
	Category     string     `db:"category" json:"category"`
	Price        float64    `db:"price" json:"price"`
	Cost         float64    `db:"cost" json:"cost"`
	IsAvailable  bool       `db:"is_available" json:"is_available"`
	TimesOrdered int        `db:"times_ordered" json:"times_ordered"`
	MarginPct    float64    `db:"-" json:"margin_pct"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	ArchivedAt   *time.Time `db:"archived_at" json:"archived_at,omitempty"`
}

// MarginPercent returns (revenue-cost)/revenue as a percentage, zero when
// there is no revenue to divide by.
func MarginPercent(revenue, cost float64) float64 {
	if revenue == 0 {
		return 0
	}
	return (revenue - cost) / revenue * 100
}

// Ingredient links a menu item to the inventory item it consumes.
type Ingredient struct {
	MenuItemID      uuid.UUID `db:"menu_item_id" json:"menu_item_id"`
	InventoryItemID uuid.UUID `db:"inventory_item_id" json:"inventory_item_id"`
	Quantity        float64   `db:"quantity" json:"quantity"`
}

type MenuItemSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price float64   `json:"price"`
}
