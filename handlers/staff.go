package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dinehall/dinehall/database"
	"github.com/dinehall/dinehall/database/dbhelper"
	"github.com/dinehall/dinehall/models"
	"github.com/dinehall/dinehall/utils"
)

// CreateStaff lets an admin provision accounts with any role; self-service
// registration only ever hands out the staff role.
func CreateStaff(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name     string      `json:"name"`
		Email    string      `json:"email"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if strings.TrimSpace(req.Name) == "" || req.Email == "" || req.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}
	if len(req.Password) < 6 {
		utils.RespondError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}
	if req.Role == "" {
		req.Role = models.RoleStaff
	}
	if !req.Role.IsValid() {
		utils.RespondError(w, http.StatusBadRequest, "role must be one of admin, manager, staff")
		return
	}

	exists, err := dbhelper.IsUserExists(req.Email)
	if err != nil {
		respondInternal(w, err)
		return
	}
	if exists {
		utils.RespondError(w, http.StatusBadRequest, "user already exists")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		respondInternal(w, err)
		return
	}

	var id uuid.UUID
	txErr := database.Tx(func(tx *sql.Tx) error {
		var err error
		id, err = dbhelper.CreateUser(tx, req.Name, req.Email, hashedPassword, req.Role)
		return err
	})
	if txErr != nil {
		respondDBError(w, txErr, "", "user already exists")
		return
	}

	user, err := dbhelper.GetUserByID(id)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, user, "staff account created")
}

func ListStaff(w http.ResponseWriter, r *http.Request) {
	_, limit, offset := utils.ParsePagination(r)

	staff, err := dbhelper.ListStaff(limit, offset)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, staff, "")
}

func DeactivateStaff(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	if err := dbhelper.ArchiveUser(id); err != nil {
		respondDBError(w, err, "user not found", "")
		return
	}

	utils.RespondJSON(w, http.StatusOK, nil, "staff account deactivated")
}
