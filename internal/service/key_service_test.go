package service

import (
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vreblog/public_api/internal/repository"
	"github.com/vreblog/public_api/internal/utils"
)

func newKeyService(t *testing.T) (*KeyService, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	keyRepo := repository.NewAPIKeyRepository(db)
	logRepo := repository.NewRequestLogRepository(db)
	return NewKeyService(keyRepo, logRepo, 1000), mock
}

func TestCreateKeyDefaults(t *testing.T) {
	svc, mock := newKeyService(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`INSERT INTO api_keys`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "requests_today", "last_reset_at", "created_at"}).
			AddRow("key-1", 0, now, now))

	key, err := svc.CreateKey(&CreateKeyRequest{UserID: "user-1"})
	require.NoError(t, err)

	assert.Equal(t, "Default", key.Name)
	assert.Equal(t, 1000, key.DailyLimit)
	assert.True(t, key.IsActive)
	assert.True(t, strings.HasPrefix(key.Key, "vb_"))
	assert.Equal(t, 0, key.RequestsToday)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateKeyExplicitFields(t *testing.T) {
	svc, mock := newKeyService(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`INSERT INTO api_keys`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "requests_today", "last_reset_at", "created_at"}).
			AddRow("key-2", 0, now, now))

	key, err := svc.CreateKey(&CreateKeyRequest{UserID: "user-1", Name: "CI bot", DailyLimit: 50})
	require.NoError(t, err)
	assert.Equal(t, "CI bot", key.Name)
	assert.Equal(t, 50, key.DailyLimit)
}

func TestUpdateKeyPartial(t *testing.T) {
	svc, mock := newKeyService(t)

	mock.ExpectQuery(`SELECT .+ FROM api_keys WHERE id = \$1`).
		WithArgs("key-1").
		WillReturnRows(apiKeyRows("vb_secret", 100, 7, true))

	newLimit := 250
	inactive := false
	mock.ExpectExec(`UPDATE api_keys SET name = \$1, daily_limit = \$2, is_active = \$3`).
		WithArgs("Default", 250, false, "key-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	key, err := svc.UpdateKey("key-1", &UpdateKeyRequest{DailyLimit: &newLimit, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Default", key.Name) // untouched
	assert.Equal(t, 250, key.DailyLimit)
	assert.False(t, key.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateKeyNotFound(t *testing.T) {
	svc, mock := newKeyService(t)

	mock.ExpectQuery(`SELECT .+ FROM api_keys WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.UpdateKey("missing", &UpdateKeyRequest{})
	assert.Equal(t, utils.ErrNotFound, err)
}

func TestDeleteKeyNotFound(t *testing.T) {
	svc, mock := newKeyService(t)

	mock.ExpectQuery(`SELECT .+ FROM api_keys WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	assert.Equal(t, utils.ErrNotFound, svc.DeleteKey("missing"))
}

func TestKeyLogsPaginated(t *testing.T) {
	svc, mock := newKeyService(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .+ FROM api_keys WHERE id = \$1`).
		WithArgs("key-1").
		WillReturnRows(apiKeyRows("vb_secret", 100, 7, true))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM api_request_logs`).
		WithArgs("key-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT id, api_key_id, endpoint, method, status_code, created_at`).
		WithArgs("key-1", 2, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "api_key_id", "endpoint", "method", "status_code", "created_at"}).
			AddRow("log-1", "key-1", "/articles?page=1", "GET", 200, now).
			AddRow("log-2", "key-1", "/categories", "GET", 200, now))

	logs, total, err := svc.KeyLogs("key-1", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, logs, 2)
	assert.Equal(t, "/articles?page=1", logs[0].Endpoint)
	assert.NoError(t, mock.ExpectationsWereMet())
}
