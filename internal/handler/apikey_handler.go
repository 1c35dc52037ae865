package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vreblog/public_api/internal/service"
	"github.com/vreblog/public_api/internal/utils"
)

// APIKeyHandler exposes the admin key management endpoints.
type APIKeyHandler struct {
	keyService *service.KeyService
}

// NewAPIKeyHandler constructs an APIKeyHandler.
func NewAPIKeyHandler(keyService *service.KeyService) *APIKeyHandler {
	return &APIKeyHandler{keyService: keyService}
}

// ListKeys handles GET /v1/admin/keys.
func (h *APIKeyHandler) ListKeys(c *gin.Context) {
	keys, err := h.keyService.ListKeys()
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve API keys")
		return
	}
	utils.Data(c, keys)
}

// CreateKey handles POST /v1/admin/keys.
func (h *APIKeyHandler) CreateKey(c *gin.Context) {
	var req service.CreateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	key, err := h.keyService.CreateKey(&req)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to create API key")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": key})
}

// UpdateKey handles PUT /v1/admin/keys/:id.
func (h *APIKeyHandler) UpdateKey(c *gin.Context) {
	var req service.UpdateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	key, err := h.keyService.UpdateKey(c.Param("id"), &req)
	if err == utils.ErrNotFound {
		utils.Fail(c, http.StatusNotFound, "API key not found")
		return
	}
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to update API key")
		return
	}
	utils.Data(c, key)
}

// DeleteKey handles DELETE /v1/admin/keys/:id.
func (h *APIKeyHandler) DeleteKey(c *gin.Context) {
	err := h.keyService.DeleteKey(c.Param("id"))
	if err == utils.ErrNotFound {
		utils.Fail(c, http.StatusNotFound, "API key not found")
		return
	}
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to delete API key")
		return
	}
	c.Status(http.StatusNoContent)
}

// KeyLogs handles GET /v1/admin/keys/:id/logs.
func (h *APIKeyHandler) KeyLogs(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 50)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	logs, total, err := h.keyService.KeyLogs(c.Param("id"), page, limit)
	if err == utils.ErrNotFound {
		utils.Fail(c, http.StatusNotFound, "API key not found")
		return
	}
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to retrieve request logs")
		return
	}
	utils.DataWithPagination(c, logs, utils.NewPagination(page, limit, total))
}
