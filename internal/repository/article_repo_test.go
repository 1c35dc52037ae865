package repository

import (
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestArticleFilterNormalize(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"in range", 2, 25, 2, 25},
		{"zero page floors to 1", 0, 10, 1, 10},
		{"negative page floors to 1", -3, 10, 1, 10},
		{"zero limit floors to 1", 1, 0, 1, 1},
		{"negative limit floors to 1", 1, -5, 1, 1},
		{"limit ceiling at 50", 1, 999, 1, 50},
		{"limit exactly at ceiling", 1, 50, 1, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &ArticleFilter{Page: tt.page, Limit: tt.limit}
			f.Normalize()
			assert.Equal(t, tt.wantPage, f.Page)
			assert.Equal(t, tt.wantLimit, f.Limit)
		})
	}
}

func articleRow(id, title string) []driver.Value {
	now := time.Now().UTC()
	return []driver.Value{
		id, title, "slug-" + id, "excerpt", "full content", nil,
		[]byte(`{go,web}`), 4, 120, "published", nil, "author-1", now, now,
	}
}

var articleCols = []string{
	"id", "title", "slug", "excerpt", "content", "featured_image", "tags",
	"reading_time", "views", "status", "category_id", "author_id",
	"published_at", "created_at",
}

func TestListPublishedNoFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM articles WHERE status = 'published'`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	rows := sqlmock.NewRows(articleCols).
		AddRow(articleRow("a1", "Hello Go")...).
		AddRow(articleRow("a2", "Hello Web")...)
	mock.ExpectQuery(`SELECT .+ FROM articles WHERE status = 'published' ORDER BY published_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(5, 5).
		WillReturnRows(rows)

	f := &ArticleFilter{Page: 2, Limit: 5}
	articles, total, err := repo.ListPublished(f)
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, articles, 2)
	assert.Equal(t, "Hello Go", articles[0].Title)
	assert.Equal(t, []string{"go", "web"}, articles[0].Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPublishedAllFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM articles WHERE status = 'published' AND category_id = \$1 AND title ILIKE \$2 AND \$3 = ANY\(tags\)`).
		WithArgs("cat-1", "%hello%", "go").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`SELECT .+ FROM articles WHERE status = 'published' AND category_id = \$1 AND title ILIKE \$2 AND \$3 = ANY\(tags\) ORDER BY published_at DESC LIMIT \$4 OFFSET \$5`).
		WithArgs("cat-1", "%hello%", "go", 10, 0).
		WillReturnRows(sqlmock.NewRows(articleCols).AddRow(articleRow("a1", "Hello Go")...))

	f := &ArticleFilter{Page: 1, Limit: 10, Category: "cat-1", Search: "hello", Tag: "go"}
	articles, total, err := repo.ListPublished(f)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, articles, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPublishedByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepository(db)

	// Draft articles never match the published-only query, so the caller
	// cannot distinguish "missing" from "not published".
	mock.ExpectQuery(`SELECT .+ FROM articles WHERE id = \$1 AND status = 'published'`).
		WithArgs("draft-1").
		WillReturnRows(sqlmock.NewRows(articleCols))

	_, err := repo.GetPublishedByID("draft-1")
	assert.Equal(t, sql.ErrNoRows, err)
}

func TestGetPublishedByIDFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewArticleRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM articles WHERE id = \$1 AND status = 'published'`).
		WithArgs("a1").
		WillReturnRows(sqlmock.NewRows(articleCols).AddRow(articleRow("a1", "Hello Go")...))

	article, err := repo.GetPublishedByID("a1")
	require.NoError(t, err)
	assert.Equal(t, "Hello Go", article.Title)
	assert.Equal(t, "full content", article.Content)
}
