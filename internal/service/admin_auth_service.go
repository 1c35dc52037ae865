package service

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/vreblog/public_api/internal/models"
	"github.com/vreblog/public_api/internal/repository"
	"github.com/vreblog/public_api/internal/utils"
)

// AdminAuthService handles login for the key management console.
type AdminAuthService struct {
	adminRepo *repository.AdminUserRepository
}

// NewAdminAuthService constructs a new AdminAuthService.
func NewAdminAuthService(adminRepo *repository.AdminUserRepository) *AdminAuthService {
	return &AdminAuthService{adminRepo: adminRepo}
}

// Login verifies credentials and returns a signed JWT. All failure modes
// collapse into ErrInvalidLogin so the response never reveals whether the
// account exists.
func (s *AdminAuthService) Login(email, password string) (string, error) {
	user, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		log.Warn().Str("email", email).Msg("login failed: unknown account")
		return "", utils.ErrInvalidLogin
	}

	if !user.IsActive {
		log.Warn().Str("email", email).Msg("login failed: account inactive")
		return "", utils.ErrInvalidLogin
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("login failed: bad password")
		return "", utils.ErrInvalidLogin
	}

	log.Info().Str("email", email).Msg("admin login successful")

	return utils.GenerateJWT(user.ID, user.Email)
}

// CreateAdmin registers a new console account with a bcrypt password hash.
func (s *AdminAuthService) CreateAdmin(email, password, name string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.AdminUser{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         name,
		IsActive:     true,
	}
	return s.adminRepo.Create(user)
}
