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
	"github.com/dinehall/dinehall/models"
	"github.com/dinehall/dinehall/utils"
)

var errTableConflict = errors.New("table conflict")

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req reservationInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := validateReservation(&req); err != nil {
		utils.RespondValidationErrors(w, fieldErrors(err))
		return
	}

	if _, err := dbhelper.GetCustomerByID(req.CustomerID); err != nil {
		respondDBError(w, err, "customer not found", "")
		return
	}

	date, _ := parseDate(req.Date)
	status := req.Status
	if status == "" {
		status = models.ReservationPending
	}

	res := &models.Reservation{
		CustomerID:  req.CustomerID,
		TableNumber: req.TableNumber,
		Date:        date,
		StartTime:   req.StartTime,
		PartySize:   req.PartySize,
		Status:      status,
		Notes:       req.Notes,
	}

	var id uuid.UUID
	txErr := database.Tx(func(tx *sql.Tx) error {
		if res.Status.IsActive() {
			held, err := dbhelper.ListActiveSlotTimes(tx, res.TableNumber, res.Date, uuid.Nil)
			if err != nil {
				return err
			}
			for _, slot := range held {
				if models.TimesConflict(slot, res.StartTime) {
					return errTableConflict
				}
			}
		}

		var err error
		id, err = dbhelper.InsertReservation(tx, res)
		return err
	})
	if txErr != nil {
		// the unique index catches the race two concurrent bookings can win
		if errors.Is(txErr, errTableConflict) {
			utils.RespondError(w, http.StatusBadRequest, "table already booked for that time")
			return
		}
		respondDBError(w, txErr, "", "table already booked for that time")
		return
	}

	created, err := dbhelper.GetReservationByID(id)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, created, "reservation created")
}

func GetReservation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid reservation ID")
		return
	}

	res, err := dbhelper.GetReservationByID(id)
	if err != nil {
		respondDBError(w, err, "reservation not found", "")
		return
	}

	utils.RespondJSON(w, http.StatusOK, res, "")
}

func ListReservations(w http.ResponseWriter, r *http.Request) {
	_, limit, offset := utils.ParsePagination(r)

	var date *time.Time
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := parseDate(d)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = &parsed
	}

	status := models.ReservationStatus(r.URL.Query().Get("status"))
	if status != "" && !status.IsValid() {
		utils.RespondError(w, http.StatusBadRequest, "invalid status filter")
		return
	}

	reservations, err := dbhelper.ListReservations(date, status, limit, offset)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, reservations, "")
}

func UpdateReservation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid reservation ID")
		return
	}

	var req reservationInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := validateReservation(&req); err != nil {
		utils.RespondValidationErrors(w, fieldErrors(err))
		return
	}

	current, err := dbhelper.GetReservationByID(id)
	if err != nil {
		respondDBError(w, err, "reservation not found", "")
		return
	}

	date, _ := parseDate(req.Date)
	status := req.Status
	if status == "" {
		status = current.Status
	}

	updated := &models.Reservation{
		ID:          id,
		CustomerID:  current.CustomerID,
		TableNumber: req.TableNumber,
		Date:        date,
		StartTime:   req.StartTime,
		PartySize:   req.PartySize,
		Status:      status,
		Notes:       req.Notes,
	}

	slotChanged := req.TableNumber != current.TableNumber ||
		req.StartTime != current.StartTime ||
		date.Format("2006-01-02") != current.Date.Format("2006-01-02")

	txErr := database.Tx(func(tx *sql.Tx) error {
		if slotChanged && updated.Status.IsActive() {
			held, err := dbhelper.ListActiveSlotTimes(tx, updated.TableNumber, updated.Date, id)
			if err != nil {
				return err
			}
			for _, slot := range held {
				if models.TimesConflict(slot, updated.StartTime) {
					return errTableConflict
				}
			}
		}
		return dbhelper.UpdateReservation(tx, updated)
	})
	if txErr != nil {
		if errors.Is(txErr, errTableConflict) {
			utils.RespondError(w, http.StatusBadRequest, "table already booked for that time")
			return
		}
		respondDBError(w, txErr, "reservation not found", "table already booked for that time")
		return
	}

	result, err := dbhelper.GetReservationByID(id)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, result, "reservation updated")
}

func UpdateReservationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid reservation ID")
		return
	}

	type request struct {
		Status models.ReservationStatus `json:"status"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if !req.Status.IsValid() {
		utils.RespondError(w, http.StatusBadRequest, "invalid reservation status")
		return
	}

	if err := dbhelper.UpdateReservationStatus(id, req.Status); err != nil {
		respondDBError(w, err, "reservation not found", "")
		return
	}

	res, err := dbhelper.GetReservationByID(id)
	if err != nil {
		respondInternal(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, res, "reservation status updated")
}
