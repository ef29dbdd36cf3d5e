package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dinehall/dinehall/database/dbhelper"
	"github.com/dinehall/dinehall/utils"
)

func CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := validateCustomer(&req); err != nil {
		utils.RespondValidationErrors(w, fieldErrors(err))
		return
	}

	taken, err := dbhelper.CustomerContactTaken(req.Email, req.Phone)
	if err != nil {
		respondInternal(w, err)
		return
	}
	if taken {
		utils.RespondError(w, http.StatusBadRequest, "email or phone already in use")
		return
	}

	id, err := dbhelper.CreateCustomer(req.Name, req.Email, req.Phone)
	if err != nil {
		respondDBError(w, err, "", "email or phone already in use")
		return
	}

	customer, err := dbhelper.GetCustomerByID(id)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, customer, "customer created")
}

func GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid customer ID")
		return
	}

	customer, err := dbhelper.GetCustomerByID(id)
	if err != nil {
		respondDBError(w, err, "customer not found", "")
		return
	}

	utils.RespondJSON(w, http.StatusOK, customer, "")
}

func ListCustomers(w http.ResponseWriter, r *http.Request) {
	_, limit, offset := utils.ParsePagination(r)
	search := r.URL.Query().Get("search")

	customers, err := dbhelper.ListCustomers(search, limit, offset)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, customers, "")
}

func UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid customer ID")
		return
	}

	var req customerInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := validateCustomer(&req); err != nil {
		utils.RespondValidationErrors(w, fieldErrors(err))
		return
	}

	if err := dbhelper.UpdateCustomer(id, req.Name, req.Email, req.Phone); err != nil {
		respondDBError(w, err, "customer not found", "email or phone already in use")
		return
	}

	customer, err := dbhelper.GetCustomerByID(id)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, customer, "customer updated")
}

func DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid customer ID")
		return
	}

	if err := dbhelper.ArchiveCustomer(id); err != nil {
		respondDBError(w, err, "customer not found", "")
		return
	}

	utils.RespondJSON(w, http.StatusOK, nil, "customer deleted")
}

func AddCustomerFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid customer ID")
		return
	}

	type request struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		utils.RespondError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	if _, err := dbhelper.GetCustomerByID(id); err != nil {
		respondDBError(w, err, "customer not found", "")
		return
	}

	feedbackID, err := dbhelper.AddFeedback(id, req.Rating, req.Comment)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]string{
		"feedback_id": feedbackID.String(),
	}, "feedback recorded")
}
