package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/rs/zerolog/log"

	"github.com/vreblog/public_api/internal/config"
)

const (
	connectAttempts = 5
	connectDelay    = 2 * time.Second
	pingTimeout     = 5 * time.Second

	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
)

// Connect opens the PostgreSQL pool and verifies it with a bounded number of
// ping attempts, so the service survives the database container coming up a
// few seconds after it does.
func Connect(cfg *config.DatabaseConfig) (*sqlx.DB, error) {
	if cfg == nil {
		return nil, errors.New("nil database config")
	}

	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		lastErr = db.PingContext(ctx)
		cancel()
		if lastErr == nil {
			return db, nil
		}
		log.Warn().Err(lastErr).Int("attempt", attempt).Msg("database not ready, retrying")
		time.Sleep(connectDelay)
	}

	db.Close()
	return nil, fmt.Errorf("database unreachable after %d attempts: %w", connectAttempts, lastErr)
}
