package repository

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vreblog/public_api/internal/models"
)

// APIKeyRepository provides data access methods for the api_keys table.
type APIKeyRepository struct {
	db *sqlx.DB
}

// NewAPIKeyRepository creates a new APIKeyRepository.
func NewAPIKeyRepository(db *sqlx.DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

const apiKeyColumns = `id, user_id, name, key, daily_limit, requests_today, last_reset_at, is_active, created_at`

// GetByKey finds a key by its secret. Returns sql.ErrNoRows when no key
// matches.
func (r *APIKeyRepository) GetByKey(secret string) (*models.APIKey, error) {
	var k models.APIKey
	err := r.db.Get(&k, `SELECT `+apiKeyColumns+` FROM api_keys WHERE key = $1`, secret)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

// GetByID finds a key by its identifier.
func (r *APIKeyRepository) GetByID(id string) (*models.APIKey, error) {
	var k models.APIKey
	err := r.db.Get(&k, `SELECT `+apiKeyColumns+` FROM api_keys WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

// ResetDailyCount zeroes the usage counter and stamps the reset date.
// Called lazily on the first admission after the UTC date rolls over.
func (r *APIKeyRepository) ResetDailyCount(id string, today time.Time) error {
	_, err := r.db.Exec(
		`UPDATE api_keys SET requests_today = 0, last_reset_at = $2 WHERE id = $1`,
		id, today.Format("2006-01-02"),
	)
	return err
}

// IncrementUsage bumps the usage counter by one and returns the new value.
// The increment is a single UPDATE so concurrent admissions never lose a
// count, though the preceding limit check remains approximate.
func (r *APIKeyRepository) IncrementUsage(id string) (int, error) {
	var used int
	err := r.db.QueryRowx(
		`UPDATE api_keys SET requests_today = requests_today + 1 WHERE id = $1 RETURNING requests_today`,
		id,
	).Scan(&used)
	return used, err
}

// Create inserts a new key. The secret must be generated by the caller;
// id and created_at come back from the database.
func (r *APIKeyRepository) Create(k *models.APIKey) error {
	query := `INSERT INTO api_keys (user_id, name, key, daily_limit, is_active)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, requests_today, last_reset_at, created_at`

	return r.db.QueryRowx(query,
		k.UserID,
		k.Name,
		k.Key,
		k.DailyLimit,
		k.IsActive,
	).Scan(&k.ID, &k.RequestsToday, &k.LastResetAt, &k.CreatedAt)
}

// Update applies admin-editable fields: name, daily limit and active flag.
func (r *APIKeyRepository) Update(k *models.APIKey) error {
	_, err := r.db.Exec(
		`UPDATE api_keys SET name = $1, daily_limit = $2, is_active = $3 WHERE id = $4`,
		k.Name, k.DailyLimit, k.IsActive, k.ID,
	)
	return err
}

// Delete removes a key permanently.
func (r *APIKeyRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM api_keys WHERE id = $1`, id)
	return err
}

// List retrieves all keys, newest first.
func (r *APIKeyRepository) List() ([]*models.APIKey, error) {
	var keys []*models.APIKey
	err := r.db.Select(&keys, `SELECT `+apiKeyColumns+` FROM api_keys ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return keys, nil
}
