package post

import (
	"time"
)

// Post est la projection publiée d'une soumission approuvée.
// Exactement un Post par soumission APPROVED ; slug unique globalement.
type Post struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Slug        string `gorm:"uniqueIndex" json:"slug"`
	Title       string `json:"title"`
	Content     string `gorm:"type:text" json:"content"`
	CoverImage  string `json:"cover_image"`
	PostType    string `json:"post_type"` // expo | now | pods
	AuthorID    string `gorm:"index" json:"author_id"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
