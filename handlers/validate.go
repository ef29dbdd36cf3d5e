package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/dinehall/dinehall/models"
)

// fieldErrors flattens a multierror into the strings the {"errors": [...]}
// envelope carries.
func fieldErrors(err error) []string {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		msgs = append(msgs, e.Error())
	}
	return msgs
}

type orderItemInput struct {
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Quantity   int       `json:"quantity"`
	// Price is accepted on the wire for client convenience but never trusted;
	// the stored menu price always wins.
	Price float64 `json:"price"`
}

type createOrderInput struct {
	CustomerID uuid.UUID        `json:"customer_id"`
	Type       models.OrderType `json:"type"`
	Items      []orderItemInput `json:"items"`
	Notes      string           `json:"notes"`
}

func validateCreateOrder(in *createOrderInput) error {
	var result *multierror.Error

	if in.CustomerID == uuid.Nil {
		result = multierror.Append(result, fmt.Errorf("customer_id: customer is required"))
	}
	if !in.Type.IsValid() {
		result = multierror.Append(result, fmt.Errorf("type: must be one of dine_in, takeout, delivery"))
	}
	if len(in.Items) == 0 {
		result = multierror.Append(result, fmt.Errorf("items: at least one item is required"))
	}
	for i, item := range in.Items {
		if item.MenuItemID == uuid.Nil {
			result = multierror.Append(result, fmt.Errorf("items[%d].menu_item_id: menu item is required", i))
		}
		if item.Quantity <= 0 {
			result = multierror.Append(result, fmt.Errorf("items[%d].quantity: must be positive", i))
		}
	}

	return result.ErrorOrNil()
}

type reservationInput struct {
	CustomerID  uuid.UUID                `json:"customer_id"`
	TableNumber int                      `json:"table_number"`
	Date        string                   `json:"date"`
	StartTime   string                   `json:"start_time"`
	PartySize   int                      `json:"party_size"`
	Status      models.ReservationStatus `json:"status"`
	Notes       string                   `json:"notes"`
}

func validateReservation(in *reservationInput) error {
	var result *multierror.Error

	if in.CustomerID == uuid.Nil {
		result = multierror.Append(result, fmt.Errorf("customer_id: customer is required"))
	}
	if in.TableNumber <= 0 {
		result = multierror.Append(result, fmt.Errorf("table_number: must be positive"))
	}
	if _, err := parseDate(in.Date); err != nil {
		result = multierror.Append(result, fmt.Errorf("date: must be YYYY-MM-DD"))
	}
	if _, err := models.ParseStartTime(in.StartTime); err != nil {
		result = multierror.Append(result, fmt.Errorf("start_time: must be HH:MM"))
	}
	if in.PartySize <= 0 {
		result = multierror.Append(result, fmt.Errorf("party_size: must be positive"))
	}
	if in.Status != "" && !in.Status.IsValid() {
		result = multierror.Append(result, fmt.Errorf("status: invalid reservation status"))
	}

	return result.ErrorOrNil()
}

type customerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func validateCustomer(in *customerInput) error {
	var result *multierror.Error

	if strings.TrimSpace(in.Name) == "" {
		result = multierror.Append(result, fmt.Errorf("name: name is required"))
	}
	if !strings.Contains(in.Email, "@") {
		result = multierror.Append(result, fmt.Errorf("email: valid email is required"))
	}
	if strings.TrimSpace(in.Phone) == "" {
		result = multierror.Append(result, fmt.Errorf("phone: phone is required"))
	}

	return result.ErrorOrNil()
}

type menuItemInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	IsAvailable *bool   `json:"is_available"`
}

func validateMenuItem(in *menuItemInput) error {
	var result *multierror.Error

	if strings.TrimSpace(in.Name) == "" {
		result = multierror.Append(result, fmt.Errorf("name: name is required"))
	}
	if in.Price <= 0 {
		result = multierror.Append(result, fmt.Errorf("price: must be positive"))
	}
	if in.Cost < 0 {
		result = multierror.Append(result, fmt.Errorf("cost: must not be negative"))
	}
	if in.Cost > in.Price {
		result = multierror.Append(result, fmt.Errorf("cost: must not exceed price"))
	}

	return result.ErrorOrNil()
}

type inventoryInput struct {
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Threshold   float64 `json:"threshold"`
	CostPerUnit float64 `json:"cost_per_unit"`
}

func validateInventoryItem(in *inventoryInput) error {
	var result *multierror.Error

	if strings.TrimSpace(in.Name) == "" {
		result = multierror.Append(result, fmt.Errorf("name: name is required"))
	}
	if strings.TrimSpace(in.Unit) == "" {
		result = multierror.Append(result, fmt.Errorf("unit: unit is required"))
	}
	if in.Quantity < 0 {
		result = multierror.Append(result, fmt.Errorf("quantity: must not be negative"))
	}
	if in.Threshold < 0 {
		result = multierror.Append(result, fmt.Errorf("threshold: must not be negative"))
	}

	return result.ErrorOrNil()
}
