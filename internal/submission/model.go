package submission

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// PostType définit les types de contenu soumis
const (
	TypeExpo = "expo" // vitrine d'images
	TypeNow  = "now"  // actualité avec vignette
	TypePods = "pods" // épisode de podcast
)

// Statuts du cycle de vie. Transitions autorisées :
// pending → approved, pending → rejected, rejected → (suppression ou brouillon).
// approved est terminal, hors suppression (cascade sur le Post).
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

func IsValidType(t string) bool {
	return t == TypeExpo || t == TypeNow || t == TypePods
}

// Attribution est le crédit d'une image, en variante étiquetée :
// "original" (œuvre de l'auteur), "custom" (texte libre de crédit),
// "attributed" (source + nom d'auteur).
type Attribution struct {
	Kind       string `json:"kind"`
	CreditText string `json:"credit_text,omitempty"`
	SourceURL  string `json:"source_url,omitempty"`
	AuthorName string `json:"author_name,omitempty"`
}

const (
	AttributionOriginal   = "original"
	AttributionCustom     = "custom"
	AttributionAttributed = "attributed"
)

// Complete vérifie que la variante est reconnue et ses champs requis remplis.
func (a Attribution) Complete() bool {
	switch a.Kind {
	case AttributionOriginal:
		return true
	case AttributionCustom:
		return a.CreditText != ""
	case AttributionAttributed:
		return a.SourceURL != "" && a.AuthorName != ""
	default:
		return false
	}
}

func (a Attribution) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *Attribution) Scan(value interface{}) error {
	if value == nil {
		*a = Attribution{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, isStr := value.(string); isStr {
			bytes = []byte(s)
		} else {
			return fmt.Errorf("type inattendu pour Attribution : %T", value)
		}
	}
	return json.Unmarshal(bytes, a)
}

type AttributionList []Attribution

func (l AttributionList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(AttributionList{})
	}
	return json.Marshal(l)
}

func (l *AttributionList) Scan(value interface{}) error {
	if value == nil {
		*l = AttributionList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, isStr := value.(string); isStr {
			bytes = []byte(s)
		} else {
			return fmt.Errorf("type inattendu pour AttributionList : %T", value)
		}
	}
	return json.Unmarshal(bytes, l)
}

type Submission struct {
	ID            string `gorm:"primaryKey" json:"id"`
	PostType      string `gorm:"index" json:"post_type"`
	Title         string `json:"title"`
	Content       string `gorm:"type:text" json:"content"`
	Status        string `gorm:"index" json:"status"`
	AuthorID      string `gorm:"index" json:"author_id"`
	ApprovalToken string `gorm:"uniqueIndex" json:"approval_token"` // immuable, assigné à la promotion

	Images               pq.StringArray  `gorm:"type:text[]" json:"images"`
	ImageAttributions    AttributionList `gorm:"type:jsonb" json:"image_attributions"`
	ThumbnailURL         string          `json:"thumbnail_url"`
	ThumbnailAttribution Attribution     `gorm:"type:jsonb" json:"thumbnail_attribution"`

	ProjectLinks pq.StringArray `gorm:"type:text[]" json:"project_links"`
	Sources      string         `gorm:"type:text" json:"sources"`
	Tags         pq.StringArray `gorm:"type:text[]" json:"tags"`

	CanMoveToDraft  bool   `json:"can_move_to_draft"`
	RejectionReason string `gorm:"type:text" json:"rejection_reason,omitempty"`

	ReviewedBy  string     `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateSubmissionInput structure pour créer une soumission
type CreateSubmissionInput struct {
	PostType             string          `json:"post_type" binding:"required"`
	Title                string          `json:"title" binding:"required"`
	Content              string          `json:"content" binding:"required"`
	Images               []string        `json:"images"`
	ImageAttributions    AttributionList `json:"image_attributions"`
	ThumbnailURL         string          `json:"thumbnail_url"`
	ThumbnailAttribution Attribution     `json:"thumbnail_attribution"`
	ProjectLinks         []string        `json:"project_links"`
	Sources              string          `json:"sources"`
	Tags                 []string        `json:"tags"`
}

// Validate applique les règles média par type de contenu.
func (in *CreateSubmissionInput) Validate() error {
	if !IsValidType(in.PostType) {
		return &ValidationError{Message: "Unknown post type."}
	}
	switch in.PostType {
	case TypeExpo:
		if len(in.Images) == 0 {
			return &ValidationError{Message: "At least one image is required for SM Expo posts."}
		}
		if len(in.ImageAttributions) != len(in.Images) {
			return &ValidationError{Message: "Each SM Expo image requires a credit selection."}
		}
		for _, attr := range in.ImageAttributions {
			if !attr.Complete() {
				return &ValidationError{Message: "Each SM Expo image requires a credit selection."}
			}
		}
	case TypeNow:
		if in.ThumbnailURL == "" || !in.ThumbnailAttribution.Complete() {
			return &ValidationError{Message: "SM Now posts require a thumbnail with a credit selection."}
		}
	}
	return nil
}

// CoverImage retourne l'image de couverture du futur Post.
func (s *Submission) CoverImage() string {
	switch s.PostType {
	case TypeNow:
		return s.ThumbnailURL
	default:
		if len(s.Images) > 0 {
			return s.Images[0]
		}
		return ""
	}
}

// MediaURLs liste toutes les URLs média attachées à la soumission.
func (s *Submission) MediaURLs() []string {
	urls := append([]string{}, s.Images...)
	if s.ThumbnailURL != "" {
		urls = append(urls, s.ThumbnailURL)
	}
	return urls
}
