package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/ContactKeeper/internal/apperr"
	"github.com/atinyakov/ContactKeeper/internal/service"
)

func TestAuth_RegisterAndVerify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.auth.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := f.auth.Verify(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestAuth_PasswordStoredHashed(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")

	var hash []byte
	require.NoError(t, f.sqlDB.QueryRow(`SELECT password_hash FROM users WHERE username = 'alice'`).Scan(&hash))
	assert.NotEqual(t, "pw-alice", string(hash))
	assert.NotEmpty(t, hash)
}

func TestAuth_RegisterDuplicate(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")

	_, err := f.auth.Register(context.Background(), "alice", "other")
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestAuth_RegisterValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Register(context.Background(), "", "pw")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = f.auth.Register(context.Background(), "alice", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestAuth_RegisterPasswordTooLong(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "alice", strings.Repeat("p", 73))
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "password must not exceed 72 bytes", err.Error())

	uid, err := f.auth.Verify(ctx, "alice", strings.Repeat("p", 73))
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	assert.Zero(t, uid)

	// The limit is inclusive.
	id, err := f.auth.Register(ctx, "bob", strings.Repeat("p", 72))
	require.NoError(t, err)
	assert.NotZero(t, id)
}

func TestAuth_VerifyFailures(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "mallory", "pw-alice"},
		{"wrong password", "alice", "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := f.auth.Verify(context.Background(), tt.username, tt.password)
			assert.ErrorIs(t, err, apperr.ErrUnauthorized)
			assert.Zero(t, id)
		})
	}
}

type brokenHasher struct{}

func (brokenHasher) Hash(string) ([]byte, error)   { return nil, errors.New("entropy exhausted") }
func (brokenHasher) Compare([]byte, string) error { return errors.New("corrupt hash") }

func TestAuth_HasherFailureIsInternal(t *testing.T) {
	_, err := service.NewAuthService(failingTx{}, brokenHasher{}).Register(context.Background(), "alice", "pw")
	assert.ErrorIs(t, err, apperr.ErrInternal)
}
