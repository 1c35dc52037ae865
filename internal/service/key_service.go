package service

import (
	"database/sql"

	"github.com/vreblog/public_api/internal/models"
	"github.com/vreblog/public_api/internal/repository"
	"github.com/vreblog/public_api/internal/utils"
)

// KeyService implements the administrative lifecycle of API keys:
// create with a generated secret, rename, limit changes,
// activate/deactivate, delete, and audit-log inspection.
type KeyService struct {
	keyRepo      *repository.APIKeyRepository
	logRepo      *repository.RequestLogRepository
	defaultLimit int
}

// NewKeyService constructs a new KeyService.
func NewKeyService(keyRepo *repository.APIKeyRepository, logRepo *repository.RequestLogRepository, defaultLimit int) *KeyService {
	return &KeyService{keyRepo: keyRepo, logRepo: logRepo, defaultLimit: defaultLimit}
}

// CreateKeyRequest carries the admin-supplied fields for a new key.
type CreateKeyRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	Name       string `json:"name"`
	DailyLimit int    `json:"daily_limit"`
}

// UpdateKeyRequest carries partial updates; nil fields are left unchanged.
type UpdateKeyRequest struct {
	Name       *string `json:"name"`
	DailyLimit *int    `json:"daily_limit"`
	IsActive   *bool   `json:"is_active"`
}

// CreateKey generates a fresh secret and inserts the key. Name defaults to
// "Default" and the daily limit to the configured default when omitted.
func (s *KeyService) CreateKey(req *CreateKeyRequest) (*models.APIKey, error) {
	secret, err := utils.GenerateConsumerKey()
	if err != nil {
		return nil, err
	}

	key := &models.APIKey{
		UserID:     req.UserID,
		Name:       req.Name,
		Key:        secret,
		DailyLimit: req.DailyLimit,
		IsActive:   true,
	}
	if key.Name == "" {
		key.Name = "Default"
	}
	if key.DailyLimit <= 0 {
		key.DailyLimit = s.defaultLimit
	}

	if err := s.keyRepo.Create(key); err != nil {
		return nil, err
	}
	return key, nil
}

// ListKeys returns all keys, newest first.
func (s *KeyService) ListKeys() ([]*models.APIKey, error) {
	return s.keyRepo.List()
}

// UpdateKey applies the non-nil fields of req to an existing key.
func (s *KeyService) UpdateKey(id string, req *UpdateKeyRequest) (*models.APIKey, error) {
	key, err := s.keyRepo.GetByID(id)
	if err == sql.ErrNoRows {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		key.Name = *req.Name
	}
	if req.DailyLimit != nil && *req.DailyLimit > 0 {
		key.DailyLimit = *req.DailyLimit
	}
	if req.IsActive != nil {
		key.IsActive = *req.IsActive
	}

	if err := s.keyRepo.Update(key); err != nil {
		return nil, err
	}
	return key, nil
}

// DeleteKey removes a key. Audit rows are kept; they reference the key id
// for historical analytics only.
func (s *KeyService) DeleteKey(id string) error {
	if _, err := s.keyRepo.GetByID(id); err == sql.ErrNoRows {
		return utils.ErrNotFound
	} else if err != nil {
		return err
	}
	return s.keyRepo.Delete(id)
}

// KeyLogs returns one page of audit rows for a key, newest first.
func (s *KeyService) KeyLogs(id string, page, limit int) ([]*models.RequestLog, int, error) {
	if _, err := s.keyRepo.GetByID(id); err == sql.ErrNoRows {
		return nil, 0, utils.ErrNotFound
	} else if err != nil {
		return nil, 0, err
	}
	return s.logRepo.ListByKey(id, page, limit)
}
