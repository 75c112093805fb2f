package service

import (
	"context"
	"errors"
	"strings"

	"github.com/atinyakov/ContactKeeper/internal/apperr"
	"github.com/atinyakov/ContactKeeper/internal/auth"
	"github.com/atinyakov/ContactKeeper/internal/models"
	"github.com/atinyakov/ContactKeeper/internal/repository"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	// Hash returns a salted one-way hash of password.
	Hash(password string) ([]byte, error)
	// Compare returns nil when password matches hash and auth.ErrMismatch when it does not.
	Compare(hash []byte, password string) error
}

// AuthService registers users and verifies their credentials.
type AuthService struct {
	tx     Transactor
	hasher PasswordHasher
}

// NewAuthService constructs an AuthService.
func NewAuthService(tx Transactor, hasher PasswordHasher) *AuthService {
	return &AuthService{tx: tx, hasher: hasher}
}

// Register creates a user and returns its id. Only the password hash is
// stored. It fails with Conflict if the username is taken.
func (s *AuthService) Register(ctx context.Context, username, password string) (int64, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return 0, apperr.Validationf("missing username or password")
	}

	hash, err := s.hasher.Hash(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return 0, apperr.Validationf("password must not exceed %d bytes", auth.MaxPasswordBytes)
	}
	if err != nil {
		return 0, apperr.Internal(err)
	}

	var id int64
	err = run(ctx, s.tx, func(q *repository.Queries) error {
		exists, err := q.UserExists(ctx, username)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflictf("username already exists")
		}
		id, err = q.CreateUser(ctx, username, hash)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Verify checks a username and password and returns the user's id on a
// match. Unknown users and wrong passwords both yield Unauthorized, and no
// id is returned on any failure path.
func (s *AuthService) Verify(ctx context.Context, username, password string) (int64, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return 0, apperr.Validationf("missing username or password")
	}

	var user *models.User
	err := run(ctx, s.tx, func(q *repository.Queries) error {
		u, err := q.GetUserByUsername(ctx, username)
		if errors.Is(err, repository.ErrNoRecord) {
			return errInvalidCredentials
		}
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrMismatch) {
			return 0, errInvalidCredentials
		}
		return 0, apperr.Internal(err)
	}
	return user.ID, nil
}

var errInvalidCredentials = apperr.Unauthorized("invalid username or password")
