package post

import (
	"time"
)

// SubjectType définit les entités commentables
const (
	SubjectPost       = "post"
	SubjectSubmission = "submission"
)

type Comment struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SubjectType string    `json:"subject_type" gorm:"index:idx_comments_subject"`
	SubjectID   string    `json:"subject_id" gorm:"index:idx_comments_subject"`
	ParentID    *string   `json:"parent_id,omitempty" gorm:"index"`
	UserID      string    `json:"user_id"`
	Content     string    `json:"text" gorm:"column:content"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
