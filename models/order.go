package models

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderServed    OrderStatus = "served"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady,
		OrderServed, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// orderStatusFlow is the legal transition table; anything not listed is rejected.
var orderStatusFlow = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderServed, OrderCancelled},
	OrderServed:    {OrderCompleted, OrderCancelled},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderStatusFlow[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded, PaymentFailed:
		return true
	}
	return false
}

type OrderType string

const (
	OrderDineIn   OrderType = "dine_in"
	OrderTakeout  OrderType = "takeout"
	OrderDelivery OrderType = "delivery"
)

func (t OrderType) IsValid() bool {
	return t == OrderDineIn || t == OrderTakeout || t == OrderDelivery
}

// TaxRate is the flat sales tax applied to every order.
const TaxRate = 0.08

type Order struct {
	ID             uuid.UUID        `db:"id" json:"id"`
	OrderNumber    string           `db:"order_number" json:"order_number"`
	CustomerID     uuid.UUID        `db:"customer_id" json:"customer_id"`
	StaffID        *uuid.UUID       `db:"staff_id" json:"staff_id,omitempty"`
	Type           OrderType        `db:"type" json:"type"`
	Status         OrderStatus      `db:"status" json:"status"`
	PaymentStatus  PaymentStatus    `db:"payment_status" json:"payment_status"`
	Subtotal       float64          `db:"subtotal" json:"subtotal"`
	Tax            float64          `db:"tax" json:"tax"`
	Tip            float64          `db:"tip" json:"tip"`
	DiscountAmount float64          `db:"discount_amount" json:"discount_amount"`
	DiscountReason string           `db:"discount_reason" json:"discount_reason,omitempty"`
	Total          float64          `db:"total" json:"total"`
	Notes          string           `db:"notes" json:"notes,omitempty"`
	Items          []OrderItem      `db:"-" json:"items"`
	Customer       *CustomerSummary `db:"-" json:"customer,omitempty"`
	Staff          *UserSummary     `db:"-" json:"staff,omitempty"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at" json:"updated_at"`
}

// OrderItem is a snapshot of a menu item at order time; name and price are
// copied so later menu edits never rewrite order history.
type OrderItem struct {
	ID         uuid.UUID `db:"id" json:"id"`
	OrderID    uuid.UUID `db:"order_id" json:"order_id"`
	MenuItemID uuid.UUID `db:"menu_item_id" json:"menu_item_id"`
	Name       string    `db:"name" json:"name"`
	Quantity   int       `db:"quantity" json:"quantity"`
	Price      float64   `db:"price" json:"price"`
}

func (i OrderItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateTotals sums line totals into subtotal and applies the flat tax.
// Prices must already be the stored menu prices, never client input.
func CalculateTotals(items []OrderItem) (subtotal, tax, total float64) {
	for _, item := range items {
		subtotal += item.LineTotal()
	}
	subtotal = round2(subtotal)
	tax = round2(subtotal * TaxRate)
	total = round2(subtotal + tax)
	return subtotal, tax, total
}

// Recalculate refreshes Total after a tip or discount change.
func (o *Order) Recalculate() {
	o.Total = round2(o.Subtotal + o.Tax + o.Tip - o.DiscountAmount)
}

// FormatOrderNumber renders the human-readable per-day sequence number,
// e.g. ORD-20260829-007 for the seventh order of that day.
func FormatOrderNumber(day time.Time, seq int) string {
	return fmt.Sprintf("ORD-%s-%03d", day.Format("20060102"), seq)
}
