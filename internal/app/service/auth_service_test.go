package service

import (
	"testing"
	"time"

	"github.com/adiprakosa/kasirpos/internal/app/model"
	"github.com/adiprakosa/kasirpos/internal/app/repository"
	"github.com/adiprakosa/kasirpos/internal/db"
	"github.com/adiprakosa/kasirpos/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) (*gorm.DB, AuthService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	svc := NewAuthService(userRepo, "test-secret", 15*time.Minute, 7*24*time.Hour)

	return testDB, svc
}

func TestAuthService_Register(t *testing.T) {
	testDB, svc := setupAuthTest(t)
	defer db.CleanupTestDB(testDB)

	user, tokens, err := svc.Register("pelanggan@example.com", "password123", "Siti Rahma")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "pelanggan@example.com", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestAuthService_Register_AlwaysCustomerRole(t *testing.T) {
	testDB, svc := setupAuthTest(t)
	defer db.CleanupTestDB(testDB)

	user, _, err := svc.Register("pelanggan@example.com", "password123", "Siti Rahma")
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, user.Role)

	claims, err := util.ValidateToken(mustTokens(t, svc).AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, string(model.RoleCustomer), claims.Role)
}

func mustTokens(t *testing.T, svc AuthService) *util.TokenPair {
	t.Helper()
	_, tokens, err := svc.Register("second@example.com", "password123", "Second User")
	require.NoError(t, err)
	return tokens
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	testDB, svc := setupAuthTest(t)
	defer db.CleanupTestDB(testDB)

	_, _, err := svc.Register("dup@example.com", "password123", "First")
	require.NoError(t, err)

	_, _, err = svc.Register("dup@example.com", "password456", "Second")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	testDB, svc := setupAuthTest(t)
	defer db.CleanupTestDB(testDB)

	_, _, err := svc.Register("kasir@example.com", "password123", "Budi Santoso")
	require.NoError(t, err)

	user, tokens, err := svc.Login("kasir@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "kasir@example.com", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)

	claims, err := util.ValidateToken(tokens.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	testDB, svc := setupAuthTest(t)
	defer db.CleanupTestDB(testDB)

	_, _, err := svc.Register("kasir@example.com", "password123", "Budi Santoso")
	require.NoError(t, err)

	_, _, err = svc.Login("kasir@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	testDB, svc := setupAuthTest(t)
	defer db.CleanupTestDB(testDB)

	_, _, err := svc.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_GetUserByID(t *testing.T) {
	testDB, svc := setupAuthTest(t)
	defer db.CleanupTestDB(testDB)

	created, _, err := svc.Register("kasir@example.com", "password123", "Budi Santoso")
	require.NoError(t, err)

	found, err := svc.GetUserByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, found.Email)

	_, err = svc.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	testDB, svc := setupAuthTest(t)
	defer db.CleanupTestDB(testDB)

	created, _, err := svc.Register("kasir@example.com", "password123", "Budi Santoso")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(created.ID, "Budi S.")
	require.NoError(t, err)
	assert.Equal(t, "Budi S.", updated.Name)
}
