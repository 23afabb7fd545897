package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/garnizeh/jobly/internal/apperr"
	"github.com/garnizeh/jobly/pkg/models"
)

const userColumns = `username, first_name, last_name, email, is_admin`

func scanUser(s rowScanner) (*models.User, error) {
	var u models.User
	if err := s.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin); err != nil {
		return nil, err
	}
	return &u, nil
}

// Register hashes u.Password with bcrypt and stores the user. The returned
// user never carries the password.
func (r *SQLRepo) Register(ctx context.Context, u *models.User) (*models.User, error) {
	if u == nil {
		return nil, fmt.Errorf("user is nil")
	}

	var existing string
	err := r.conn.QueryRow(ctx, `SELECT username FROM users WHERE username = $1`, u.Username).Scan(&existing)
	switch {
	case err == nil:
		return nil, apperr.BadRequest("Duplicate username: " + u.Username)
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), r.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	row := r.conn.QueryRow(ctx,
		`INSERT INTO users (username, password, first_name, last_name, email, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		u.Username, string(hash), u.FirstName, u.LastName, u.Email, u.IsAdmin)
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.BadRequest("Duplicate username: " + u.Username)
		}
		if isValueTooLong(err) {
			return nil, apperr.BadRequest("Value too long")
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	r.logger.Info("user registered", "username", created.Username, "is_admin", created.IsAdmin)
	return created, nil
}

// Authenticate checks the password of username. Unknown users and wrong
// passwords produce the same error.
func (r *SQLRepo) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var (
		u    models.User
		hash string
	)
	err := r.conn.QueryRow(ctx,
		`SELECT username, password, first_name, last_name, email, is_admin FROM users WHERE username = $1`,
		username).Scan(&u.Username, &hash, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Unauthorized("Invalid username/password")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("Invalid username/password")
	}

	return &u, nil
}

func (r *SQLRepo) GetUser(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(r.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("No user: " + username)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return u, nil
}
