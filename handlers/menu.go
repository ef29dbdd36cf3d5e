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

func CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := validateMenuItem(&req); err != nil {
		utils.RespondValidationErrors(w, fieldErrors(err))
		return
	}

	taken, err := dbhelper.MenuItemNameTaken(req.Name)
	if err != nil {
		respondInternal(w, err)
		return
	}
	if taken {
		utils.RespondError(w, http.StatusBadRequest, "menu item name already in use")
		return
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	if req.Category == "" {
		req.Category = "main"
	}

	id, err := dbhelper.CreateMenuItem(&models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Cost:        req.Cost,
		IsAvailable: available,
	})
	if err != nil {
		respondDBError(w, err, "", "menu item name already in use")
		return
	}

	item, err := dbhelper.GetMenuItemByID(id)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, item, "menu item created")
}

func GetMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid menu item ID")
		return
	}

	item, err := dbhelper.GetMenuItemByID(id)
	if err != nil {
		respondDBError(w, err, "menu item not found", "")
		return
	}

	utils.RespondJSON(w, http.StatusOK, item, "")
}

func ListMenuItems(w http.ResponseWriter, r *http.Request) {
	_, limit, offset := utils.ParsePagination(r)
	category := r.URL.Query().Get("category")
	availableOnly := r.URL.Query().Get("available") == "true"

	items, err := dbhelper.ListMenuItems(category, availableOnly, limit, offset)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, items, "")
}

func UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid menu item ID")
		return
	}

	var req menuItemInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := validateMenuItem(&req); err != nil {
		utils.RespondValidationErrors(w, fieldErrors(err))
		return
	}

	current, err := dbhelper.GetMenuItemByID(id)
	if err != nil {
		respondDBError(w, err, "menu item not found", "")
		return
	}

	available := current.IsAvailable
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	if req.Category == "" {
		req.Category = current.Category
	}

	item := &models.MenuItem{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Cost:        req.Cost,
		IsAvailable: available,
	}
	if err := dbhelper.UpdateMenuItem(item); err != nil {
		respondDBError(w, err, "menu item not found", "menu item name already in use")
		return
	}

	updated, err := dbhelper.GetMenuItemByID(id)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, updated, "menu item updated")
}

func SetMenuItemAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid menu item ID")
		return
	}

	type request struct {
		IsAvailable bool `json:"is_available"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := dbhelper.SetMenuItemAvailability(id, req.IsAvailable); err != nil {
		respondDBError(w, err, "menu item not found", "")
		return
	}

	utils.RespondJSON(w, http.StatusOK, nil, "availability updated")
}

func DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid menu item ID")
		return
	}

	if err := dbhelper.ArchiveMenuItem(id); err != nil {
		respondDBError(w, err, "menu item not found", "")
		return
	}

	utils.RespondJSON(w, http.StatusOK, nil, "menu item deleted")
}

func SetMenuItemIngredients(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid menu item ID")
		return
	}

	type ingredientInput struct {
		InventoryItemID uuid.UUID `json:"inventory_item_id"`
		Quantity        float64   `json:"quantity"`
	}
	var req []ingredientInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	for _, ing := range req {
		if ing.InventoryItemID == uuid.Nil || ing.Quantity <= 0 {
			utils.RespondError(w, http.StatusBadRequest, "each ingredient needs an inventory item and a positive quantity")
			return
		}
	}

	if _, err := dbhelper.GetMenuItemByID(id); err != nil {
		respondDBError(w, err, "menu item not found", "")
		return
	}

	ingredients := make([]models.Ingredient, 0, len(req))
	for _, ing := range req {
		ingredients = append(ingredients, models.Ingredient{
			MenuItemID:      id,
			InventoryItemID: ing.InventoryItemID,
			Quantity:        ing.Quantity,
		})
	}

	if err := dbhelper.ReplaceIngredients(id, ingredients); err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, ingredients, "ingredients updated")
}

func GetMenuItemIngredients(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid menu item ID")
		return
	}

	ingredients, err := dbhelper.ListIngredients(id)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, ingredients, "")
}
