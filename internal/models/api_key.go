package models

import "time"

// APIKey represents a credential issued to an external API consumer.
// The quota counter is maintained lazily: it is reset to zero on the first
// request after the UTC date rolls over, never by a background job.
type APIKey struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"user_id"`
	Name          string    `db:"name" json:"name"`
	Key           string    `db:"key" json:"key"`
	DailyLimit    int       `db:"daily_limit" json:"daily_limit"`
	RequestsToday int       `db:"requests_today" json:"requests_today"`
	LastResetAt   time.Time `db:"last_reset_at" json:"last_reset_at"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Remaining returns how many requests the key may still make today.
func (k *APIKey) Remaining() int {
	r := k.DailyLimit - k.RequestsToday
	if r < 0 {
		return 0
	}
	return r
}
