package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/vreblog/public_api/internal/models"
)

// AdminUserRepository provides data access methods for admin_users.
type AdminUserRepository struct {
	db *sqlx.DB
}

// NewAdminUserRepository creates a new AdminUserRepository.
func NewAdminUserRepository(db *sqlx.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// GetByEmail finds an admin account by email.
func (r *AdminUserRepository) GetByEmail(email string) (*models.AdminUser, error) {
	var u models.AdminUser
	err := r.db.Get(&u,
		`SELECT id, email, password_hash, name, is_active, created_at
		 FROM admin_users WHERE email = $1`,
		email,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new admin account.
func (r *AdminUserRepository) Create(u *models.AdminUser) error {
	return r.db.QueryRowx(
		`INSERT INTO admin_users (email, password_hash, name, is_active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		u.Email, u.PasswordHash, u.Name, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt)
}
