package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name         string
		items        []OrderItem
		wantSubtotal float64
		wantTax      float64
		wantTotal    float64
	}{
		{
			name: "two of a ten dollar item",
			items: []OrderItem{
				{Name: "Margherita", Quantity: 2, Price: 10.00},
			},
			wantSubtotal: 20.00,
			wantTax:      1.60,
			wantTotal:    21.60,
		},
		{
			name: "mixed lines",
			items: []OrderItem{
				{Name: "Burger", Quantity: 1, Price: 12.50},
				{Name: "Fries", Quantity: 2, Price: 3.25},
				{Name: "Cola", Quantity: 3, Price: 2.00},
			},
			wantSubtotal: 25.00,
			wantTax:      2.00,
			wantTotal:    27.00,
		},
		{
			name: "odd cents round to two decimals",
			items: []OrderItem{
				{Name: "Soup", Quantity: 1, Price: 4.99},
			},
			wantSubtotal: 4.99,
			wantTax:      0.40,
			wantTotal:    5.39,
		},
		{
			name:         "no items",
			items:        nil,
			wantSubtotal: 0,
			wantTax:      0,
			wantTotal:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subtotal, tax, total := CalculateTotals(tt.items)
			assert.Equal(t, tt.wantSubtotal, subtotal)
			assert.Equal(t, tt.wantTax, tax)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, total, round2(subtotal+tax))
		})
	}
}

func TestRecalculate(t *testing.T) {
	o := &Order{Subtotal: 20.00, Tax: 1.60, Total: 21.60}

	o.Tip = 3.00
	o.Recalculate()
	assert.Equal(t, 24.60, o.Total)

	o.DiscountAmount = 5.00
	o.Recalculate()
	assert.Equal(t, 19.60, o.Total)
}

func TestFormatOrderNumber(t *testing.T) {
	day := time.Date(2026, 8, 29, 13, 45, 0, 0, time.UTC)

	assert.Equal(t, "ORD-20260829-001", FormatOrderNumber(day, 1))
	assert.Equal(t, "ORD-20260829-042", FormatOrderNumber(day, 42))
	assert.Equal(t, "ORD-20260829-1000", FormatOrderNumber(day, 1000))

	nextDay := day.AddDate(0, 0, 1)
	assert.Equal(t, "ORD-20260830-001", FormatOrderNumber(nextDay, 1))
}

func TestOrderStatusTransitions(t *testing.T) {
	legalChain := []OrderStatus{
		OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderServed, OrderCompleted,
	}
	for i := 0; i < len(legalChain)-1; i++ {
		assert.True(t, legalChain[i].CanTransitionTo(legalChain[i+1]),
			"%s -> %s should be legal", legalChain[i], legalChain[i+1])
	}

	// cancelled is reachable from every non-terminal state
	for _, s := range []OrderStatus{OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderServed} {
		assert.True(t, s.CanTransitionTo(OrderCancelled), "%s -> cancelled should be legal", s)
	}

	illegal := []struct {
		from, to OrderStatus
	}{
		{OrderPending, OrderPreparing},
		{OrderPending, OrderCompleted},
		{OrderConfirmed, OrderPending},
		{OrderServed, OrderPreparing},
		{OrderCompleted, OrderCancelled},
		{OrderCompleted, OrderPending},
		{OrderCancelled, OrderConfirmed},
	}
	for _, tt := range illegal {
		assert.False(t, tt.from.CanTransitionTo(tt.to), "%s -> %s should be rejected", tt.from, tt.to)
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	assert.True(t, OrderCompleted.IsTerminal())
	assert.True(t, OrderCancelled.IsTerminal())
	assert.False(t, OrderServed.IsTerminal())
	assert.False(t, OrderPending.IsTerminal())
}

func TestOrderItemLineTotal(t *testing.T) {
	item := OrderItem{
		ID:         uuid.New(),
		MenuItemID: uuid.New(),
		Name:       "Pasta",
		Quantity:   3,
		Price:      11.50,
	}
	require.Equal(t, 34.50, item.LineTotal())
}
