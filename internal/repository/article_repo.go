package repository

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/vreblog/public_api/internal/models"
)

// ArticleFilter carries the optional list parameters of GET /articles.
// Zero-value string fields mean "no filter".
type ArticleFilter struct {
	Page     int
	Limit    int
	Category string // exact category id
	Search   string // case-insensitive substring match on title
	Tag      string // exact membership in the tags array
}

// List parameter bounds. Out-of-range values are clamped, not rejected.
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Normalize clamps list parameters into range. Page floors at 1; limit is
// clamped to [1, MaxPageSize]. Defaulting for absent parameters happens at
// parse time, so an explicit limit=0 lands on the floor rather than the
// default.
func (f *ArticleFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 1
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
}

// ArticleRepository provides read access to the articles table. The gateway
// never writes articles; authoring happens elsewhere.
type ArticleRepository struct {
	db *sqlx.DB
}

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

const articleColumns = `id, title, slug, excerpt, content, featured_image, tags,
	reading_time, views, status, category_id, author_id, published_at, created_at`

// scanArticle scans one row, routing the tags TEXT[] through pq.Array.
func scanArticle(row sqlx.ColScanner) (*models.Article, error) {
	var a models.Article
	if err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Slug,
		&a.Excerpt,
		&a.Content,
		&a.FeaturedImage,
		pq.Array(&a.Tags),
		&a.ReadingTime,
		&a.Views,
		&a.Status,
		&a.CategoryID,
		&a.AuthorID,
		&a.PublishedAt,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListPublished returns one page of published articles, newest published_at
// first, plus the total number of rows matching the filter.
func (r *ArticleRepository) ListPublished(f *ArticleFilter) ([]*models.Article, int, error) {
	where := []string{"status = 'published'"}
	args := []interface{}{}

	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if f.Tag != "" {
		args = append(args, f.Tag)
		where = append(where, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM articles WHERE `+cond, args...); err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.Limit
	args = append(args, f.Limit, offset)
	query := fmt.Sprintf(
		`SELECT %s FROM articles WHERE %s ORDER BY published_at DESC LIMIT $%d OFFSET $%d`,
		articleColumns, cond, len(args)-1, len(args),
	)

	rows, err := r.db.Queryx(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, err
		}
		articles = append(articles, a)
	}
	return articles, total, rows.Err()
}

// GetPublishedByID fetches one published article, full content included.
// Draft and scheduled articles are indistinguishable from missing ones:
// both come back as sql.ErrNoRows.
func (r *ArticleRepository) GetPublishedByID(id string) (*models.Article, error) {
	row := r.db.QueryRowx(
		`SELECT `+articleColumns+` FROM articles WHERE id = $1 AND status = 'published'`,
		id,
	)
	return scanArticle(row)
}
