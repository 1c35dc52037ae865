package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vreblog/public_api/internal/models"
	"github.com/vreblog/public_api/internal/service"
	"github.com/vreblog/public_api/internal/utils"
)

// APIKeyMiddleware runs the admission protocol of the public gateway:
// method guard, x-api-key authentication and the daily quota charge.
// Requests aborted here (other than 429) never reach the audit logger, so
// unauthenticated noise leaves no rows behind.
type APIKeyMiddleware struct {
	authService  *service.AuthService
	quotaService *service.QuotaService
	rateLimiter  *InvalidAuthRateLimiter
}

// NewAPIKeyMiddleware constructs a new APIKeyMiddleware.
func NewAPIKeyMiddleware(authService *service.AuthService, quotaService *service.QuotaService) *APIKeyMiddleware {
	return &APIKeyMiddleware{
		authService:  authService,
		quotaService: quotaService,
		rateLimiter:  NewInvalidAuthRateLimiter(),
	}
}

// Authenticate returns a Gin middleware enforcing steps 1-4 of admission:
// GET only, header present, key known, key active.
func (m *APIKeyMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			utils.Fail(c, http.StatusMethodNotAllowed, "Method not allowed. Only GET requests are supported.")
			return
		}

		secret := c.GetHeader("x-api-key")
		key, err := m.authService.ValidateAPIKey(secret)
		if err != nil {
			m.handleAuthError(c, err)
			return
		}

		c.Set("api_key", key)
		c.Set("api_key_id", key.ID)
		c.Next()
	}
}

// Charge returns a Gin middleware enforcing steps 5-7 of admission: lazy
// daily reset, quota check, counter increment. Runs after the audit
// middleware so that 429 responses are still logged.
func (m *APIKeyMiddleware) Charge() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := GetAPIKey(c)
		if key == nil {
			utils.Fail(c, http.StatusUnauthorized, "Invalid API key")
			return
		}

		if err := m.quotaService.Admit(key, time.Now()); err != nil {
			if err == utils.ErrQuotaExceeded {
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
					"error": "Daily rate limit exceeded",
					"limit": key.DailyLimit,
					"used":  key.RequestsToday,
					"reset": "midnight UTC",
				})
				return
			}
			utils.Fail(c, http.StatusInternalServerError, err.Error())
			return
		}

		c.Next()
	}
}

func (m *APIKeyMiddleware) handleAuthError(c *gin.Context, err error) {
	// Throttle unauthenticated probing per source IP.
	if err == utils.ErrMissingKey || err == utils.ErrInvalidKey {
		if !m.rateLimiter.Allow(c.ClientIP()) {
			utils.Fail(c, http.StatusTooManyRequests, "Too many invalid authentication attempts")
			return
		}
	}

	switch err {
	case utils.ErrMissingKey:
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "Missing x-api-key header",
			"hint":  "Include your API key in the request header: x-api-key: YOUR_KEY",
		})
	case utils.ErrInvalidKey:
		utils.Fail(c, http.StatusUnauthorized, "Invalid API key")
	case utils.ErrInactiveKey:
		utils.Fail(c, http.StatusForbidden, "API key is inactive. Please contact support.")
	default:
		utils.Fail(c, http.StatusInternalServerError, err.Error())
	}
}

// GetAPIKey returns the authenticated key from context.
func GetAPIKey(c *gin.Context) *models.APIKey {
	key, _ := c.Get("api_key")
	if key == nil {
		return nil
	}
	return key.(*models.APIKey)
}
