package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/dinehall/dinehall/config"
	"github.com/dinehall/dinehall/utils"
)

const uniqueViolation = pq.ErrorCode("23505")

// respondDBError maps a data-store error onto the HTTP taxonomy: missing row
// to 404, unique-index violation to 400 conflict, anything else to 500.
func respondDBError(w http.ResponseWriter, err error, notFoundMsg, conflictMsg string) {
	if errors.Is(err, sql.ErrNoRows) {
		utils.RespondError(w, http.StatusNotFound, notFoundMsg)
		return
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		utils.RespondError(w, http.StatusBadRequest, conflictMsg)
		return
	}

	respondInternal(w, err)
}

func respondInternal(w http.ResponseWriter, err error) {
	logrus.WithError(err).Error("request failed")
	msg := "internal server error"
	if !config.IsProduction() {
		msg = err.Error()
	}
	utils.RespondError(w, http.StatusInternalServerError, msg)
}
