package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/vreblog/public_api/internal/models"
	"github.com/vreblog/public_api/internal/repository"
)

// AuditMiddleware appends one api_request_logs row per request that passed
// authentication, after the response is written. Sits between
// authentication and the quota charge so that 429 refusals are recorded
// while auth failures are not.
type AuditMiddleware struct {
	logRepo *repository.RequestLogRepository
}

// NewAuditMiddleware constructs a new AuditMiddleware.
func NewAuditMiddleware(logRepo *repository.RequestLogRepository) *AuditMiddleware {
	return &AuditMiddleware{logRepo: logRepo}
}

// Handle returns the Gin middleware. Insert failures are logged and
// swallowed: audit is infrastructure, never part of the response contract.
func (m *AuditMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		key := GetAPIKey(c)
		if key == nil {
			return
		}

		endpoint := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			endpoint += "?" + raw
		}

		err := m.logRepo.Insert(&models.RequestLog{
			APIKeyID:   key.ID,
			Endpoint:   endpoint,
			Method:     c.Request.Method,
			StatusCode: c.Writer.Status(),
		})
		if err != nil {
			log.Warn().Err(err).Str("api_key_id", key.ID).Msg("audit log insert failed")
		}
	}
}
