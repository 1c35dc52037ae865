package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/vreblog/public_api/internal/models"
)

// RequestLogRepository provides access to the append-only api_request_logs
// table. The gateway only ever inserts; admins read for audit.
type RequestLogRepository struct {
	db *sqlx.DB
}

// NewRequestLogRepository creates a new RequestLogRepository.
func NewRequestLogRepository(db *sqlx.DB) *RequestLogRepository {
	return &RequestLogRepository{db: db}
}

// Insert appends one audit row for a processed request.
func (r *RequestLogRepository) Insert(l *models.RequestLog) error {
	_, err := r.db.Exec(
		`INSERT INTO api_request_logs (api_key_id, endpoint, method, status_code)
		 VALUES ($1, $2, $3, $4)`,
		l.APIKeyID, l.Endpoint, l.Method, l.StatusCode,
	)
	return err
}

// ListByKey returns recent audit rows for one key, newest first, with the
// total row count for pagination.
func (r *RequestLogRepository) ListByKey(apiKeyID string, page, limit int) ([]*models.RequestLog, int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM api_request_logs WHERE api_key_id = $1`, apiKeyID); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var logs []*models.RequestLog
	err := r.db.Select(&logs,
		`SELECT id, api_key_id, endpoint, method, status_code, created_at
		 FROM api_request_logs
		 WHERE api_key_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		apiKeyID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
