package user

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID          string `gorm:"primaryKey"` // UUID venant du fournisseur d'identité
	CreatedAt   time.Time
	Username    string
	Email       string
	AvatarURL   string
	Bio         string
	IsModerator bool

	// Index inverse dénormalisé : maintenu uniquement dans la même
	// transaction que le changement d'état de la soumission propriétaire.
	PostIDs        pq.StringArray `gorm:"type:text[]" json:"post_ids"`
	DraftIDs       pq.StringArray `gorm:"type:text[]" json:"draft_ids"`
	PendingPostIDs pq.StringArray `gorm:"type:text[]" json:"pending_post_ids"`
}
