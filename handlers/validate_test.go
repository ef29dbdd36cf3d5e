package handlers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinehall/dinehall/models"
)

func TestValidateCreateOrder(t *testing.T) {
	valid := createOrderInput{
		CustomerID: uuid.New(),
		Type:       models.OrderDineIn,
		Items: []orderItemInput{
			{MenuItemID: uuid.New(), Quantity: 2},
		},
	}

	tests := []struct {
		name    string
		mutate  func(*createOrderInput)
		wantErr []string
	}{
		{
			name:   "valid",
			mutate: func(in *createOrderInput) {},
		},
		{
			name:    "missing customer",
			mutate:  func(in *createOrderInput) { in.CustomerID = uuid.Nil },
			wantErr: []string{"customer_id"},
		},
		{
			name:    "bad type",
			mutate:  func(in *createOrderInput) { in.Type = "drive_thru" },
			wantErr: []string{"type"},
		},
		{
			name:    "no items",
			mutate:  func(in *createOrderInput) { in.Items = nil },
			wantErr: []string{"items"},
		},
		{
			name: "zero quantity",
			mutate: func(in *createOrderInput) {
				in.Items = []orderItemInput{{MenuItemID: uuid.New(), Quantity: 0}}
			},
			wantErr: []string{"items[0].quantity"},
		},
		{
			name: "several problems reported together",
			mutate: func(in *createOrderInput) {
				in.CustomerID = uuid.Nil
				in.Type = ""
				in.Items = []orderItemInput{{Quantity: -1}}
			},
			wantErr: []string{"customer_id", "type", "items[0].menu_item_id", "items[0].quantity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			in.Items = append([]orderItemInput(nil), valid.Items...)
			tt.mutate(&in)

			err := validateCreateOrder(&in)
			if len(tt.wantErr) == 0 {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			msgs := fieldErrors(err)
			require.Len(t, msgs, len(tt.wantErr))
			for i, field := range tt.wantErr {
				assert.Contains(t, msgs[i], field)
			}
		})
	}
}

func TestValidateReservation(t *testing.T) {
	valid := reservationInput{
		CustomerID:  uuid.New(),
		TableNumber: 4,
		Date:        "2026-08-29",
		StartTime:   "19:00",
		PartySize:   2,
	}

	err := validateReservation(&valid)
	require.NoError(t, err)

	bad := valid
	bad.Date = "29/08/2026"
	bad.StartTime = "7pm"
	bad.PartySize = 0
	err = validateReservation(&bad)
	require.Error(t, err)
	msgs := fieldErrors(err)
	assert.Len(t, msgs, 3)
}

func TestValidateMenuItem(t *testing.T) {
	valid := menuItemInput{Name: "Carbonara", Price: 14.50, Cost: 4.20}
	require.NoError(t, validateMenuItem(&valid))

	bad := menuItemInput{Name: " ", Price: 0, Cost: -1}
	err := validateMenuItem(&bad)
	require.Error(t, err)
	assert.Len(t, fieldErrors(err), 3)

	overpriced := menuItemInput{Name: "Loss leader", Price: 5, Cost: 9}
	err = validateMenuItem(&overpriced)
	require.Error(t, err)
	assert.Contains(t, fieldErrors(err)[0], "cost")
}

func TestValidateCustomer(t *testing.T) {
	valid := customerInput{Name: "Ada", Email: "ada@example.com", Phone: "+15550100"}
	require.NoError(t, validateCustomer(&valid))

	bad := customerInput{Name: "", Email: "not-an-email", Phone: ""}
	err := validateCustomer(&bad)
	require.Error(t, err)
	assert.Len(t, fieldErrors(err), 3)
}
