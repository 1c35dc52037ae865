package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vreblog/public_api/internal/repository"
	"github.com/vreblog/public_api/internal/utils"
)

func adminRows(t *testing.T, password string, active bool) *sqlmock.Rows {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "is_active", "created_at"}).
		AddRow(1, "admin@vreblog.dev", string(hash), "Admin", active, time.Now().UTC())
}

func TestLoginSuccess(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	db, mock := newMockDB(t)
	svc := NewAdminAuthService(repository.NewAdminUserRepository(db))

	mock.ExpectQuery(`SELECT .+ FROM admin_users WHERE email = \$1`).
		WithArgs("admin@vreblog.dev").
		WillReturnRows(adminRows(t, "hunter2", true))

	token, err := svc.Login("admin@vreblog.dev", "hunter2")
	require.NoError(t, err)

	claims, err := utils.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, "admin@vreblog.dev", claims.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	db, mock := newMockDB(t)
	svc := NewAdminAuthService(repository.NewAdminUserRepository(db))

	mock.ExpectQuery(`SELECT .+ FROM admin_users WHERE email = \$1`).
		WillReturnRows(adminRows(t, "hunter2", true))

	_, err := svc.Login("admin@vreblog.dev", "wrong")
	assert.Equal(t, utils.ErrInvalidLogin, err)
}

func TestLoginInactiveAccount(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	db, mock := newMockDB(t)
	svc := NewAdminAuthService(repository.NewAdminUserRepository(db))

	mock.ExpectQuery(`SELECT .+ FROM admin_users WHERE email = \$1`).
		WillReturnRows(adminRows(t, "hunter2", false))

	_, err := svc.Login("admin@vreblog.dev", "hunter2")
	assert.Equal(t, utils.ErrInvalidLogin, err)
}

func TestCreateAdmin(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAdminAuthService(repository.NewAdminUserRepository(db))

	mock.ExpectQuery(`INSERT INTO admin_users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now().UTC()))

	require.NoError(t, svc.CreateAdmin("admin@vreblog.dev", "hunter2", "Admin"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownAccount(t *testing.T) {
	utils.SetJWTSecret("test-secret")
	db, mock := newMockDB(t)
	svc := NewAdminAuthService(repository.NewAdminUserRepository(db))

	mock.ExpectQuery(`SELECT .+ FROM admin_users WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Login("ghost@vreblog.dev", "hunter2")
	assert.Equal(t, utils.ErrInvalidLogin, err)
}
