package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dinehall/dinehall/database"
	"github.com/dinehall/dinehall/database/dbhelper"
	"github.com/dinehall/dinehall/middlewares"
	"github.com/dinehall/dinehall/models"
	"github.com/dinehall/dinehall/utils"
)

func CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := validateCreateOrder(&req); err != nil {
		utils.RespondValidationErrors(w, fieldErrors(err))
		return
	}

	if _, err := dbhelper.GetCustomerByID(req.CustomerID); err != nil {
		respondDBError(w, err, "customer not found", "")
		return
	}

	var staffID *uuid.UUID
	if claims, err := middlewares.GetAuthenticatedUser(r); err == nil {
		staffID = &claims.UserID
	}

	var orderID uuid.UUID
	txErr := database.Tx(func(tx *sql.Tx) error {
		ids := make([]uuid.UUID, 0, len(req.Items))
		for _, item := range req.Items {
			ids = append(ids, item.MenuItemID)
		}

		menu, err := dbhelper.GetMenuItemsForOrder(tx, ids)
		if err != nil {
			return err
		}

		// all referenced items must exist and be available or the whole
		// order is rejected
		items := make([]models.OrderItem, 0, len(req.Items))
		for _, line := range req.Items {
			m, ok := menu[line.MenuItemID]
			if !ok || !m.IsAvailable {
				return errMenuItemUnavailable
			}
			items = append(items, models.OrderItem{
				MenuItemID: m.ID,
				Name:       m.Name,
				Quantity:   line.Quantity,
				Price:      m.Price, // stored price, never the client's
			})
		}

		subtotal, tax, total := models.CalculateTotals(items)

		now := time.Now()
		count, err := dbhelper.CountOrdersOnDay(tx, now)
		if err != nil {
			return err
		}

		order := &models.Order{
			OrderNumber:   models.FormatOrderNumber(now, count+1),
			CustomerID:    req.CustomerID,
			StaffID:       staffID,
			Type:          req.Type,
			Status:        models.OrderPending,
			PaymentStatus: models.PaymentPending,
			Subtotal:      subtotal,
			Tax:           tax,
			Total:         total,
			Notes:         req.Notes,
		}

		orderID, err = dbhelper.InsertOrder(tx, order)
		if err != nil {
			return err
		}
		if err := dbhelper.InsertOrderItems(tx, orderID, items); err != nil {
			return err
		}

		points := models.LoyaltyPointsFor(total)
		if err := dbhelper.ApplyOrderStats(tx, req.CustomerID, total, points, now); err != nil {
			return err
		}
		for _, item := range items {
			if err := dbhelper.IncrementTimesOrdered(tx, item.MenuItemID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, errMenuItemUnavailable) {
			utils.RespondError(w, http.StatusBadRequest, "menu item unavailable or not found")
			return
		}
		respondDBError(w, txErr, "order not found", "duplicate order number")
		return
	}

	order, err := dbhelper.GetOrderByID(orderID)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, order, "order created")
}

var errMenuItemUnavailable = errors.New("menu item unavailable")

func GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := dbhelper.GetOrderByID(id)
	if err != nil {
		respondDBError(w, err, "order not found", "")
		return
	}

	utils.RespondJSON(w, http.StatusOK, order, "")
}

func ListOrders(w http.ResponseWriter, r *http.Request) {
	_, limit, offset := utils.ParsePagination(r)

	status := models.OrderStatus(r.URL.Query().Get("status"))
	if status != "" && !status.IsValid() {
		utils.RespondError(w, http.StatusBadRequest, "invalid status filter")
		return
	}

	from, to, err := parseDateRange(r, 30)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	orders, err := dbhelper.ListOrders(status, from, to, limit, offset)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, orders, "")
}

func UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	type request struct {
		Status models.OrderStatus `json:"status"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if !req.Status.IsValid() {
		utils.RespondError(w, http.StatusBadRequest, "invalid order status")
		return
	}

	current, err := dbhelper.GetOrderStatus(id)
	if err != nil {
		respondDBError(w, err, "order not found", "")
		return
	}

	if !current.CanTransitionTo(req.Status) {
		utils.RespondError(w, http.StatusBadRequest,
			"illegal status transition from "+string(current)+" to "+string(req.Status))
		return
	}

	if err := dbhelper.UpdateOrderStatus(id, req.Status); err != nil {
		respondDBError(w, err, "order not found", "")
		return
	}

	order, err := dbhelper.GetOrderByID(id)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, order, "order status updated")
}

func UpdateOrderPayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	type request struct {
		PaymentStatus  models.PaymentStatus `json:"payment_status"`
		Tip            *float64             `json:"tip"`
		DiscountAmount *float64             `json:"discount_amount"`
		DiscountReason string               `json:"discount_reason"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.PaymentStatus != "" && !req.PaymentStatus.IsValid() {
		utils.RespondError(w, http.StatusBadRequest, "invalid payment status")
		return
	}
	if req.Tip != nil && *req.Tip < 0 {
		utils.RespondError(w, http.StatusBadRequest, "tip must not be negative")
		return
	}
	if req.DiscountAmount != nil && *req.DiscountAmount < 0 {
		utils.RespondError(w, http.StatusBadRequest, "discount must not be negative")
		return
	}

	order, err := dbhelper.GetOrderByID(id)
	if err != nil {
		respondDBError(w, err, "order not found", "")
		return
	}

	if req.PaymentStatus != "" {
		order.PaymentStatus = req.PaymentStatus
	}
	if req.Tip != nil {
		order.Tip = *req.Tip
	}
	if req.DiscountAmount != nil {
		order.DiscountAmount = *req.DiscountAmount
		order.DiscountReason = req.DiscountReason
	}
	order.Recalculate()

	if err := dbhelper.UpdateOrderPayment(order); err != nil {
		respondDBError(w, err, "order not found", "")
		return
	}

	utils.RespondJSON(w, http.StatusOK, order, "payment updated")
}
