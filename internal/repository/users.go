package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/ContactKeeper/internal/apperr"
	"github.com/atinyakov/ContactKeeper/internal/models"
)

// UserExists reports whether a user with the given username exists.
func (q *Queries) UserExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := q.conn.QueryRowContext(
		ctx,
		q.rebind(`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`),
		username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("UserExists: %w", err)
	}
	return exists, nil
}

// UserIDExists reports whether a user with the given id exists.
func (q *Queries) UserIDExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := q.conn.QueryRowContext(
		ctx,
		q.rebind(`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`),
		id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("UserIDExists: %w", err)
	}
	return exists, nil
}

// CreateUser inserts a user and returns its id. A taken username yields an
// apperr Conflict.
func (q *Queries) CreateUser(ctx context.Context, username string, passwordHash []byte) (int64, error) {
	var id int64
	err := q.conn.QueryRowContext(
		ctx,
		q.rebind(`INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id`),
		username, passwordHash,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperr.Conflictf("username already exists").WithCause(err)
		}
		return 0, fmt.Errorf("CreateUser: %w", err)
	}
	return id, nil
}

// GetUserByUsername fetches a user with its password hash.
// It returns ErrNoRecord when no user has that username.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := q.conn.QueryRowContext(
		ctx,
		q.rebind(`SELECT id, username, password_hash FROM users WHERE username = $1`),
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("GetUserByUsername: %w", err)
	}
	return &u, nil
}
