package models

import "time"

// Article statuses. The public gateway only ever serves StatusPublished.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusScheduled = "scheduled"
)

// Article is a blog post row. The gateway reads articles and never writes
// them; authoring happens in a separate subsystem.
type Article struct {
	ID            string     `db:"id" json:"id"`
	Title         string     `db:"title" json:"title"`
	Slug          string     `db:"slug" json:"slug"`
	Excerpt       string     `db:"excerpt" json:"excerpt"`
	Content       string     `db:"content" json:"content,omitempty"`
	FeaturedImage *string    `db:"featured_image" json:"featured_image,omitempty"`
	Tags          []string   `db:"tags" json:"tags"`
	ReadingTime   int        `db:"reading_time" json:"reading_time"`
	Views         int        `db:"views" json:"views"`
	Status        string     `db:"status" json:"-"`
	CategoryID    *string    `db:"category_id" json:"category_id,omitempty"`
	AuthorID      string     `db:"author_id" json:"author_id"`
	PublishedAt   *time.Time `db:"published_at" json:"published_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// ListItem returns a copy of the article without the full content body.
// List responses carry excerpts only; content is returned on single fetch.
func (a Article) ListItem() Article {
	a.Content = ""
	return a
}
