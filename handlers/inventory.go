package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dinehall/dinehall/database/dbhelper"
	"github.com/dinehall/dinehall/models"
	"github.com/dinehall/dinehall/utils"
)

func CreateInventoryItem(w http.ResponseWriter, r *http.Request) {
	var req inventoryInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := validateInventoryItem(&req); err != nil {
		utils.RespondValidationErrors(w, fieldErrors(err))
		return
	}

	taken, err := dbhelper.InventoryNameTaken(req.Name)
	if err != nil {
		respondInternal(w, err)
		return
	}
	if taken {
		utils.RespondError(w, http.StatusBadRequest, "inventory item name already in use")
		return
	}

	id, err := dbhelper.CreateInventoryItem(&models.InventoryItem{
		Name:        req.Name,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Threshold:   req.Threshold,
		CostPerUnit: req.CostPerUnit,
	})
	if err != nil {
		respondDBError(w, err, "", "inventory item name already in use")
		return
	}

	item, err := dbhelper.GetInventoryItemByID(id)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, item, "inventory item created")
}

func GetInventoryItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid inventory item ID")
		return
	}

	item, err := dbhelper.GetInventoryItemByID(id)
	if err != nil {
		respondDBError(w, err, "inventory item not found", "")
		return
	}

	utils.RespondJSON(w, http.StatusOK, item, "")
}

func ListInventoryItems(w http.ResponseWriter, r *http.Request) {
	_, limit, offset := utils.ParsePagination(r)
	lowStockOnly := r.URL.Query().Get("low_stock") == "true"

	items, err := dbhelper.ListInventoryItems(lowStockOnly, limit, offset)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, items, "")
}

func UpdateInventoryItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid inventory item ID")
		return
	}

	var req inventoryInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := validateInventoryItem(&req); err != nil {
		utils.RespondValidationErrors(w, fieldErrors(err))
		return
	}

	item := &models.InventoryItem{
		ID:          id,
		Name:        req.Name,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Threshold:   req.Threshold,
		CostPerUnit: req.CostPerUnit,
	}
	if err := dbhelper.UpdateInventoryItem(item); err != nil {
		respondDBError(w, err, "inventory item not found", "inventory item name already in use")
		return
	}

	updated, err := dbhelper.GetInventoryItemByID(id)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, updated, "inventory item updated")
}

func RestockInventoryItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid inventory item ID")
		return
	}

	type request struct {
		Quantity float64 `json:"quantity"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Quantity <= 0 {
		utils.RespondError(w, http.StatusBadRequest, "restock quantity must be positive")
		return
	}

	if err := dbhelper.RestockInventoryItem(id, req.Quantity); err != nil {
		respondDBError(w, err, "inventory item not found", "")
		return
	}

	item, err := dbhelper.GetInventoryItemByID(id)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, item, "inventory restocked")
}

func DeleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid inventory item ID")
		return
	}

	if err := dbhelper.DeleteInventoryItem(id); err != nil {
		respondDBError(w, err, "inventory item not found", "")
		return
	}

	utils.RespondJSON(w, http.StatusOK, nil, "inventory item deleted")
}
