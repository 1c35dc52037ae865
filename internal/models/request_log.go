package models

import "time"

// RequestLog is one audit row per admitted public API request.
// Rows are append-only; the gateway never updates or deletes them.
type RequestLog struct {
	ID         string    `db:"id" json:"id"`
	APIKeyID   string    `db:"api_key_id" json:"api_key_id"`
	Endpoint   string    `db:"endpoint" json:"endpoint"`
	Method     string    `db:"method" json:"method"`
	StatusCode int       `db:"status_code" json:"status_code"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
