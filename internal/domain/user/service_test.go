package user

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"safetyportal/database"
	"safetyportal/internal/auth"
	"safetyportal/internal/domain/repositories"
	"safetyportal/internal/infrastructure/persistence"
)

func newTestService(t *testing.T) (Service, *auth.Manager) {
	t.Helper()

	db, err := database.NewServiceDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	tokens := auth.NewManager("secret", "safetyportal", time.Hour)
	svc := NewService(persistence.NewUserRepository(db), tokens, nil)
	svc.(*service).cost = bcrypt.MinCost
	return svc, tokens
}

func TestEnsureAdmin_OnlyOnEmptyStore(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "Admin", "change-me-now")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "other", "change-me-now")
	require.NoError(t, err)
	assert.False(t, created)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
	assert.Equal(t, repositories.RoleAdmin, users[0].Role)
}

func TestLogin(t *testing.T) {
	svc, tokens := newTestService(t)
	ctx := context.Background()

	password := gofakeit.Password(true, true, true, false, false, 12)
	u, err := svc.Create(ctx, CreateRequest{Username: "Clerk", Password: password, FullName: gofakeit.Name()})
	require.NoError(t, err)
	assert.Equal(t, repositories.RoleEmployee, u.Role)
	assert.NotEqual(t, password, u.PasswordHash)

	result, err := svc.Login(ctx, " clerk ", password)
	require.NoError(t, err)
	assert.Equal(t, u.ID, result.User.ID)

	authCtx, err := tokens.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "clerk", authCtx.Username)
	assert.Equal(t, repositories.RoleEmployee, authCtx.Role)

	_, err = svc.Login(ctx, "clerk", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", password)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Username: " ", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.Create(ctx, CreateRequest{Username: "x", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Create(ctx, CreateRequest{Username: "x", Password: "long-enough", Role: "owner"})
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.Create(ctx, CreateRequest{Username: "dup", Password: "long-enough"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRequest{Username: "DUP", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateRequest{Username: "temp", Password: "long-enough"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, u.ID, u.ID), ErrCannotDeleteSelf)
	require.NoError(t, svc.Delete(ctx, u.ID, 999))
	assert.ErrorIs(t, svc.Delete(ctx, u.ID, 999), ErrUserNotFound)

	_, err = svc.Get(ctx, u.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
