package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonect/foosball-ladder/models"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testLogger())
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Email:    "  Ana@Example.com ",
		Nickname: "ana",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, models.RolePlayer, user.Role)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	loggedIn, err := svc.Login(ctx, "ana@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, err = svc.Login(ctx, "ana@example.com", "wrong password")
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testLogger())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Password: "long enough"})
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Register(ctx, RegisterInput{Email: "a@b.c", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Register(ctx, RegisterInput{Email: "a@b.c", Password: "long enough"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterInput{Email: "a@b.c", Password: "long enough"})
	assert.ErrorIs(t, err, ErrUserEmailConflict)
}
