package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/florashop/flora-backend/internal/app/model"
	"github.com/florashop/flora-backend/internal/app/repository"
	"github.com/florashop/flora-backend/internal/db"
)

func setupAuthTest(t *testing.T) (*gorm.DB, AuthService) {
	t.Helper()

	gdb, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(gdb) })

	svc := NewAuthService(
		repository.NewUserRepository(gdb),
		"test-secret",
		30*time.Minute,
		7*24*time.Hour,
	)
	return gdb, svc
}

func TestRegister(t *testing.T) {
	gdb, svc := setupAuthTest(t)

	user, tokens, err := svc.Register("daisy", "daisy@flora.example", "password123", "password123")
	require.NoError(t, err)
	assert.Equal(t, "daisy", user.Username)
	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.NotEmpty(t, tokens.AccessToken)

	var count int64
	require.NoError(t, gdb.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	gdb, svc := setupAuthTest(t)

	_, _, err := svc.Register("daisy", "daisy@flora.example", "password123", "different")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	var count int64
	require.NoError(t, gdb.Model(&model.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegister_UsernameExists(t *testing.T) {
	_, svc := setupAuthTest(t)

	_, _, err := svc.Register("daisy", "daisy@flora.example", "password123", "password123")
	require.NoError(t, err)

	_, _, err = svc.Register("daisy", "other@flora.example", "password123", "password123")
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
}

func TestRegister_EmailExists(t *testing.T) {
	_, svc := setupAuthTest(t)

	_, _, err := svc.Register("daisy", "daisy@flora.example", "password123", "password123")
	require.NoError(t, err)

	_, _, err = svc.Register("tulip", "daisy@flora.example", "password123", "password123")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegister_ValidationOrder(t *testing.T) {
	// Password mismatch is reported before duplicate checks.
	_, svc := setupAuthTest(t)

	_, _, err := svc.Register("daisy", "daisy@flora.example", "password123", "password123")
	require.NoError(t, err)

	_, _, err = svc.Register("daisy", "daisy@flora.example", "password123", "different")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestLogin(t *testing.T) {
	_, svc := setupAuthTest(t)

	_, _, err := svc.Register("daisy", "daisy@flora.example", "password123", "password123")
	require.NoError(t, err)

	user, tokens, err := svc.Login("daisy", "password123")
	require.NoError(t, err)
	assert.Equal(t, "daisy", user.Username)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	_, svc := setupAuthTest(t)

	_, _, err := svc.Register("daisy", "daisy@flora.example", "password123", "password123")
	require.NoError(t, err)

	_, _, err = svc.Login("daisy", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	_, svc := setupAuthTest(t)

	_, _, err := svc.Login("nobody", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
