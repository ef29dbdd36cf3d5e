package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dinehall/dinehall/config"
	"github.com/dinehall/dinehall/database"
	"github.com/dinehall/dinehall/database/dbhelper"
	"github.com/dinehall/dinehall/models"
	"github.com/dinehall/dinehall/utils"
)

func Register(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "all fields are required")
		return
	}
	if len(req.Password) < 6 {
		utils.RespondError(w, http.StatusBadRequest, "password must be at least 6 characters")
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

	var user models.User
	var accToken, refToken string
	txErr := database.Tx(func(tx *sql.Tx) error {
		id, err := dbhelper.CreateUser(tx, req.Name, req.Email, hashedPassword, models.RoleStaff)
		if err != nil {
			logrus.Printf("failed to create user, error: %v", err)
			return err
		}
		user = models.User{ID: id, Name: req.Name, Email: req.Email, Role: models.RoleStaff}

		accToken, refToken, err = utils.GenerateTokens(id, models.RoleStaff)
		if err != nil {
			logrus.Printf("failed to generate token, error: %v", err)
			return err
		}
		return nil
	})
	if txErr != nil {
		respondInternal(w, txErr)
		return
	}

	setRefreshCookie(w, refToken)
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"user":         user,
		"access_token": accToken,
	}, "registered successfully")
}

func Login(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "email and password required")
		return
	}

	user, err := dbhelper.GetUserByEmail(req.Email)
	if errors.Is(err, sql.ErrNoRows) {
		utils.RespondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	} else if err != nil {
		respondInternal(w, err)
		return
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		utils.RespondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(user.ID, user.Role)
	if err != nil {
		respondInternal(w, err)
		return
	}

	setRefreshCookie(w, refreshToken)
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":      user.ID,
		"name":         user.Name,
		"email":        user.Email,
		"role":         user.Role,
		"access_token": accessToken,
	}, "successfully logged in")
}

func RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "refresh token missing")
		return
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.SecretKey), nil
	})
	if err != nil || !token.Valid {
		utils.RespondError(w, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "invalid refresh token subject")
		return
	}

	// re-read the role so a demotion takes effect on the next refresh
	user, err := dbhelper.GetUserByID(userID)
	if errors.Is(err, sql.ErrNoRows) {
		utils.RespondError(w, http.StatusUnauthorized, "user no longer exists")
		return
	} else if err != nil {
		respondInternal(w, err)
		return
	}

	newAccessToken, newRefreshToken, err := utils.GenerateTokens(user.ID, user.Role)
	if err != nil {
		respondInternal(w, err)
		return
	}

	setRefreshCookie(w, newRefreshToken)
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"access_token": newAccessToken,
	}, "")
}

func Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})

	utils.RespondJSON(w, http.StatusOK, nil, "successfully logged out")
}

func setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		Expires:  time.Now().Add(7 * 24 * time.Hour),
	})
}
