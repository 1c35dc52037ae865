package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/vreblog/public_api/internal/models"
)

// CategoryRepository provides read access to the categories table.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List retrieves all categories, alphabetical by name.
func (r *CategoryRepository) List() ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.Select(&categories,
		`SELECT id, name, slug, description, created_at FROM categories ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	return categories, nil
}
