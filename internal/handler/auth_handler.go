package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vreblog/public_api/internal/service"
	"github.com/vreblog/public_api/internal/utils"
)

// AuthHandler handles admin console authentication.
type AuthHandler struct {
	adminAuthService *service.AdminAuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(adminAuthService *service.AdminAuthService) *AuthHandler {
	return &AuthHandler{adminAuthService: adminAuthService}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /v1/admin/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.adminAuthService.Login(req.Email, req.Password)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
