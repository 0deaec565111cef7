package submission

import (
	"time"

	"github.com/lib/pq"
)

// Draft partage la forme de contenu d'une soumission, tous champs optionnels.
type Draft struct {
	ID        string `gorm:"primaryKey" json:"id"`
	AuthorID  string `gorm:"index" json:"author_id"`
	DraftName string `json:"draft_name"`
	PostType  string `json:"post_type"`
	Title     string `json:"title"`
	Content   string `gorm:"type:text" json:"content"`

	Images               pq.StringArray  `gorm:"type:text[]" json:"images"`
	ImageAttributions    AttributionList `gorm:"type:jsonb" json:"image_attributions"`
	ThumbnailURL         string          `json:"thumbnail_url"`
	ThumbnailAttribution Attribution     `gorm:"type:jsonb" json:"thumbnail_attribution"`

	ProjectLinks pq.StringArray `gorm:"type:text[]" json:"project_links"`
	Sources      string         `gorm:"type:text" json:"sources"`
	Tags         pq.StringArray `gorm:"type:text[]" json:"tags"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
