package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saran8796/survey-application/internal/model"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	userID := f.register(t, "alice")

	stored, err := f.users.GetByID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "Secret1!", stored.Password, "password must be stored hashed")

	for _, login := range []string{"alice", "alice@example.com"} {
		tok, err := f.auth.Login(ctx, model.LoginRequest{EmailOrUsername: login, Password: "Secret1!"})
		require.NoError(t, err, login)

		got, err := f.auth.VerifyToken(tok.Token)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	}

	user, err := f.auth.CurrentUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice Tester", user.FullName)
}

func TestAuthService_RegisterDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "alice")

	_, err := f.auth.Register(ctx, model.RegisterRequest{Username: "other", Email: "alice@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = f.auth.Register(ctx, model.RegisterRequest{Username: "alice", Email: "new@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestAuthService_RegisterRequiresFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Register(context.Background(), model.RegisterRequest{Username: "  ", Email: "a@b.c", Password: "x"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAuthService_LoginFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "alice")

	_, err := f.auth.Login(ctx, model.LoginRequest{EmailOrUsername: "nobody", Password: "Secret1!"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.auth.Login(ctx, model.LoginRequest{EmailOrUsername: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_VerifyTokenRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "alice")

	tok, err := f.auth.Login(ctx, model.LoginRequest{EmailOrUsername: "alice", Password: "Secret1!"})
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := f.auth.VerifyToken("not-a-token")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := f.auth.VerifyToken("")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewAuthService(f.users, "another-secret", time.Hour)
		_, err := other.VerifyToken(tok.Token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewAuthService(f.users, "test-secret", time.Hour)
		later.now = func() time.Time { return f.clock.Add(2 * time.Hour) }
		_, err := later.VerifyToken(tok.Token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestNewAuthService_DefaultTTL(t *testing.T) {
	svc := NewAuthService(nil, "s", 0)
	assert.Equal(t, DefaultTokenTTL, svc.tokenTTL)
}
