package dbhelper

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/dinehall/dinehall/database"
	"github.com/dinehall/dinehall/models"
)

func CreateUser(tx *sql.Tx, name, email, hashedPassword string, role models.Role) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(`
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		name, email, hashedPassword, role).Scan(&id)
	return id, err
}

func IsUserExists(email string) (bool, error) {
	var count int
	err := database.DineHall.QueryRow(`SELECT COUNT(*) FROM users WHERE LOWER(email) = LOWER($1)`, email).Scan(&count)
	return count > 0, err
}

func GetUserByEmail(email string) (*models.User, error) {
	var u models.User
	err := database.DineHall.QueryRow(`
		SELECT id, name, email, password, role, created_at
		FROM users
		WHERE LOWER(email) = LOWER($1) AND archived_at IS NULL`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func GetUserByID(id uuid.UUID) (*models.User, error) {
	var u models.User
	err := database.DineHall.QueryRow(`
		SELECT id, name, email, role, created_at
		FROM users
		WHERE id = $1 AND archived_at IS NULL`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func ListStaff(limit, offset int) ([]models.User, error) {
	rows, err := database.DineHall.Query(`
		SELECT id, name, email, role, created_at
		FROM users
		WHERE archived_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func ArchiveUser(id uuid.UUID) error {
	res, err := database.DineHall.Exec(`
		UPDATE users SET archived_at = now()
		WHERE id = $1 AND archived_at IS NULL`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
