package models

import (
	"time"

	"github.com/google/uuid"
)

type InventoryItem struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Quantity    float64    `db:"quantity" json:"quantity"`
	Unit        string     `db:"unit" json:"unit"`
	Threshold   float64    `db:"threshold" json:"threshold"`
	CostPerUnit float64    `db:"cost_per_unit" json:"cost_per_unit"`
	RestockedAt *time.Time `db:"restocked_at" json:"restocked_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

func (i InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.Threshold
}
