package service

import (
	"database/sql"

	"github.com/vreblog/public_api/internal/models"
	"github.com/vreblog/public_api/internal/repository"
	"github.com/vreblog/public_api/internal/utils"
)

// AuthService authenticates public API consumers by their key secret.
type AuthService struct {
	keyRepo *repository.APIKeyRepository
}

// NewAuthService constructs a new AuthService.
func NewAuthService(keyRepo *repository.APIKeyRepository) *AuthService {
	return &AuthService{keyRepo: keyRepo}
}

// ValidateAPIKey resolves the secret to a key record and checks it is
// usable. Returns ErrMissingKey, ErrInvalidKey or ErrInactiveKey for the
// 401/401/403 admission failures; any other error is a store failure.
func (s *AuthService) ValidateAPIKey(secret string) (*models.APIKey, error) {
	if secret == "" {
		return nil, utils.ErrMissingKey
	}

	key, err := s.keyRepo.GetByKey(secret)
	if err == sql.ErrNoRows {
		return nil, utils.ErrInvalidKey
	}
	if err != nil {
		return nil, err
	}

	if !key.IsActive {
		return nil, utils.ErrInactiveKey
	}
	return key, nil
}
