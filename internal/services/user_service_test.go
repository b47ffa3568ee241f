package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skylane/concourse/internal/auth"
	"skylane/concourse/internal/common"
	"skylane/concourse/internal/constants"
	"skylane/concourse/internal/db/repositories"
	"skylane/concourse/internal/models/dtos"
)

const testSecret = "unit-test-secret"

func TestRegisterAndLogin_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(db), testSecret)
	ctx := context.Background()

	reg, err := svc.Register(ctx, dtos.RegisterRequest{
		Email:    "Traveller@Example.com",
		Password: "correct-horse",
		FullName: "Demo Traveller",
	})
	require.NoError(t, err)
	assert.Equal(t, "traveller@example.com", reg.Email)
	assert.Equal(t, constants.RoleCustomer.String(), reg.Role)

	login, err := svc.Login(ctx, dtos.LoginRequest{
		Email:    "traveller@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	claims, err := auth.ParseToken(testSecret, login.Token)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleCustomer, claims.Role)
	assert.Equal(t, "traveller@example.com", claims.Email)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(db), testSecret)
	ctx := context.Background()

	req := dtos.RegisterRequest{Email: "dup@example.com", Password: "long-enough", FullName: "One"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	require.Error(t, err)
	assert.Equal(t, constants.KindConflict, common.KindOf(err))
}

func TestLogin_WrongPasswordForbidden(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(db), testSecret)
	ctx := context.Background()

	_, err := svc.Register(ctx, dtos.RegisterRequest{Email: "a@b.com", Password: "long-enough", FullName: "A"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dtos.LoginRequest{Email: "a@b.com", Password: "wrong-password"})
	require.Error(t, err)
	assert.Equal(t, constants.KindForbidden, common.KindOf(err))
}
