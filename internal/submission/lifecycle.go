package submission

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/database"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/logs"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/post"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/storage"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/user"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/utils"
)

// Nombre maximal de suffixes essayés en cas de collision de slug
const maxSlugAttempts = 50

// Get charge une soumission par ID.
func Get(id string) (*Submission, error) {
	var sub Submission
	if err := database.DB.First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "soumission", ID: id}
		}
		return nil, err
	}
	return &sub, nil
}

// Create valide l'entrée, assigne le token d'approbation et persiste la
// soumission en PENDING. L'ajout à user.pending_post_ids se fait dans la
// même transaction que l'insertion.
func Create(authorID string, input *CreateSubmissionInput) (*Submission, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	sub := Submission{
		ID:                   uuid.NewString(),
		PostType:             input.PostType,
		Title:                input.Title,
		Content:              input.Content,
		Status:               StatusPending,
		AuthorID:             authorID,
		ApprovalToken:        uuid.NewString(),
		Images:               input.Images,
		ImageAttributions:    input.ImageAttributions,
		ThumbnailURL:         input.ThumbnailURL,
		ThumbnailAttribution: input.ThumbnailAttribution,
		ProjectLinks:         input.ProjectLinks,
		Sources:              input.Sources,
		Tags:                 input.Tags,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}
		return tx.Model(&user.User{}).Where("id = ?", authorID).
			Update("pending_post_ids", gorm.Expr("array_append(pending_post_ids, ?)", sub.ID)).Error
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Approve passe une soumission PENDING en APPROVED et crée sa projection
// publiée. Le slug est dérivé du titre ; en cas de collision l'insertion est
// retentée avec les suffixes -2, -3, … (borné). Tout se joue dans une seule
// transaction : post créé, statut, champs de revue, index inverse utilisateur.
func Approve(id, reviewerID string) (*Submission, *post.Post, error) {
	sub, err := Get(id)
	if err != nil {
		return nil, nil, err
	}
	if sub.Status != StatusPending {
		return nil, nil, &InvalidStateError{Operation: "approve", Current: sub.Status}
	}

	baseSlug := utils.Slugify(sub.Title)
	now := time.Now()
	var created post.Post

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// Re-vérification du statut dans la transaction : un modérateur
		// concurrent perd proprement, jamais d'écrasement aveugle.
		res := tx.Model(&Submission{}).
			Where("id = ? AND status = ?", sub.ID, StatusPending).
			Updates(map[string]interface{}{
				"status":       StatusApproved,
				"reviewed_by":  reviewerID,
				"reviewed_at":  now,
				"published_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &InvalidStateError{Operation: "approve", Current: currentStatus(tx, sub.ID)}
		}

		inserted := false
		for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
			slug := baseSlug
			if attempt > 1 {
				slug = fmt.Sprintf("%s-%d", baseSlug, attempt)
			}
			candidate := post.Post{
				ID:          uuid.NewString(),
				Slug:        slug,
				Title:       sub.Title,
				Content:     sub.Content,
				CoverImage:  sub.CoverImage(),
				PostType:    sub.PostType,
				AuthorID:    sub.AuthorID,
				PublishedAt: now,
			}
			// Sous-transaction (savepoint) : une insertion échouée
			// n'avorte pas la transaction englobante.
			err := tx.Transaction(func(tx2 *gorm.DB) error {
				return tx2.Create(&candidate).Error
			})
			if err == nil {
				created = candidate
				inserted = true
				break
			}
			if !database.IsUniqueViolation(err) {
				return err
			}
		}
		if !inserted {
			return fmt.Errorf("aucun slug disponible pour %q après %d tentatives", baseSlug, maxSlugAttempts)
		}

		return tx.Model(&user.User{}).Where("id = ?", sub.AuthorID).
			Updates(map[string]interface{}{
				"post_ids":         gorm.Expr("array_append(post_ids, ?)", created.ID),
				"pending_post_ids": gorm.Expr("array_remove(pending_post_ids, ?)", sub.ID),
			}).Error
	})
	if err != nil {
		return nil, nil, err
	}

	sub.Status = StatusApproved
	sub.ReviewedBy = reviewerID
	sub.ReviewedAt = &now
	sub.PublishedAt = &now

	logs.LogJSON("INFO", "Submission approved", map[string]interface{}{
		"submissionID": sub.ID,
		"postID":       created.ID,
		"slug":         created.Slug,
		"reviewerID":   reviewerID,
	})
	return sub, &created, nil
}

// Reject passe une soumission PENDING en REJECTED avec la raison composée
// par le modérateur, et la retire de pending_post_ids dans la même transaction.
func Reject(id, reviewerID, reason string, canMoveToDraft bool) (*Submission, error) {
	sub, err := Get(id)
	if err != nil {
		return nil, err
	}
	if sub.Status != StatusPending {
		return nil, &InvalidStateError{Operation: "reject", Current: sub.Status}
	}

	now := time.Now()
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Submission{}).
			Where("id = ? AND status = ?", sub.ID, StatusPending).
			Updates(map[string]interface{}{
				"status":            StatusRejected,
				"rejection_reason":  reason,
				"can_move_to_draft": canMoveToDraft,
				"reviewed_by":       reviewerID,
				"reviewed_at":       now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &InvalidStateError{Operation: "reject", Current: currentStatus(tx, sub.ID)}
		}

		return tx.Model(&user.User{}).Where("id = ?", sub.AuthorID).
			Update("pending_post_ids", gorm.Expr("array_remove(pending_post_ids, ?)", sub.ID)).Error
	})
	if err != nil {
		return nil, err
	}

	sub.Status = StatusRejected
	sub.RejectionReason = reason
	sub.CanMoveToDraft = canMoveToDraft
	sub.ReviewedBy = reviewerID
	sub.ReviewedAt = &now

	logs.LogJSON("INFO", "Submission rejected", map[string]interface{}{
		"submissionID": sub.ID,
		"reviewerID":   reviewerID,
	})
	return sub, nil
}

// MoveToReview ramène une soumission APPROVED en file de revue. Le Post créé
// à l'approbation est supprimé (et ses commentaires avec lui) dans la même
// transaction, pour préserver l'invariant "un Post par soumission approuvée".
func MoveToReview(id string) (*Submission, error) {
	sub, err := Get(id)
	if err != nil {
		return nil, err
	}
	if sub.Status != StatusApproved {
		return nil, &InvalidStateError{Operation: "move_to_review", Current: sub.Status}
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Submission{}).
			Where("id = ? AND status = ?", sub.ID, StatusApproved).
			Updates(map[string]interface{}{
				"status":       StatusPending,
				"reviewed_by":  "",
				"reviewed_at":  nil,
				"published_at": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &InvalidStateError{Operation: "move_to_review", Current: currentStatus(tx, sub.ID)}
		}

		p, err := locatePost(tx, sub)
		if err != nil {
			return err
		}
		if p != nil {
			if err := post.DeleteCommentsFor(tx, post.SubjectPost, p.ID); err != nil {
				return err
			}
			if err := tx.Delete(p).Error; err != nil {
				return err
			}
			if err := tx.Model(&user.User{}).Where("id = ?", sub.AuthorID).
				Update("post_ids", gorm.Expr("array_remove(post_ids, ?)", p.ID)).Error; err != nil {
				return err
			}
		}

		return tx.Model(&user.User{}).Where("id = ?", sub.AuthorID).
			Update("pending_post_ids", gorm.Expr("array_append(pending_post_ids, ?)", sub.ID)).Error
	})
	if err != nil {
		return nil, err
	}

	sub.Status = StatusPending
	sub.ReviewedBy = ""
	sub.ReviewedAt = nil
	sub.PublishedAt = nil
	return sub, nil
}

// MoveToDraft convertit une soumission REJECTED en brouillon. Création du
// brouillon et suppression de la soumission forment une seule transaction :
// pas d'enregistrement dupliqué ni perdu en cas d'échec partiel.
func MoveToDraft(id string) (*Draft, error) {
	sub, err := Get(id)
	if err != nil {
		return nil, err
	}
	if sub.Status != StatusRejected {
		return nil, &InvalidStateError{Operation: "move_to_draft", Current: sub.Status}
	}
	if !sub.CanMoveToDraft {
		// État de la soumission, pas une question de rôle : le rejet n'a
		// pas accordé la conversion en brouillon
		return nil, &InvalidStateError{Operation: "move_to_draft", Current: sub.Status}
	}

	draft := Draft{
		ID:                   uuid.NewString(),
		AuthorID:             sub.AuthorID,
		DraftName:            sub.Title,
		PostType:             sub.PostType,
		Title:                sub.Title,
		Content:              sub.Content,
		Images:               sub.Images,
		ImageAttributions:    sub.ImageAttributions,
		ThumbnailURL:         sub.ThumbnailURL,
		ThumbnailAttribution: sub.ThumbnailAttribution,
		ProjectLinks:         sub.ProjectLinks,
		Sources:              sub.Sources,
		Tags:                 sub.Tags,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND status = ?", sub.ID, StatusRejected).Delete(&Submission{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &InvalidStateError{Operation: "move_to_draft", Current: currentStatus(tx, sub.ID)}
		}

		if err := post.DeleteCommentsFor(tx, post.SubjectSubmission, sub.ID); err != nil {
			return err
		}
		if err := tx.Create(&draft).Error; err != nil {
			return err
		}
		return tx.Model(&user.User{}).Where("id = ?", sub.AuthorID).
			Update("draft_ids", gorm.Expr("array_append(draft_ids, ?)", draft.ID)).Error
	})
	if err != nil {
		return nil, err
	}

	logs.LogJSON("INFO", "Submission moved back to draft", map[string]interface{}{
		"submissionID": sub.ID,
		"draftID":      draft.ID,
	})
	return &draft, nil
}

// Delete supprime une soumission et tout ce qui en dépend : le Post publié
// s'il existe (commentaires d'abord), les commentaires de revue, les index
// inverses utilisateur. La suppression média est demandée après commit ;
// ses échecs sont journalisés mais ne bloquent jamais la suppression.
func Delete(id string) error {
	sub, err := Get(id)
	if err != nil {
		return err
	}

	mediaURLs := sub.MediaURLs()

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if sub.Status == StatusApproved {
			p, err := locatePost(tx, sub)
			if err != nil {
				return err
			}
			if p == nil {
				logs.LogJSON("WARN", "Approved submission has no matching post", map[string]interface{}{
					"submissionID": sub.ID,
				})
			} else {
				if err := post.DeleteCommentsFor(tx, post.SubjectPost, p.ID); err != nil {
					return err
				}
				if p.CoverImage != "" {
					mediaURLs = append(mediaURLs, p.CoverImage)
				}
				if err := tx.Delete(p).Error; err != nil {
					return err
				}
				if err := tx.Model(&user.User{}).Where("id = ?", sub.AuthorID).
					Update("post_ids", gorm.Expr("array_remove(post_ids, ?)", p.ID)).Error; err != nil {
					return err
				}
			}
		}

		// Commentaires de revue : enfants avant parents
		if err := post.DeleteCommentsFor(tx, post.SubjectSubmission, sub.ID); err != nil {
			return err
		}

		if err := tx.Delete(&Submission{}, "id = ?", sub.ID).Error; err != nil {
			return err
		}

		if sub.Status == StatusPending {
			return tx.Model(&user.User{}).Where("id = ?", sub.AuthorID).
				Update("pending_post_ids", gorm.Expr("array_remove(pending_post_ids, ?)", sub.ID)).Error
		}
		return nil
	})
	if err != nil {
		return err
	}

	result := storage.DeleteImages(dedupe(mediaURLs))
	if len(result.Failed) > 0 {
		logs.LogJSON("WARN", "Some media could not be deleted", map[string]interface{}{
			"submissionID": sub.ID,
			"failed":       result.Failed,
		})
	}

	logs.LogJSON("INFO", "Submission deleted", map[string]interface{}{
		"submissionID": sub.ID,
		"status":       sub.Status,
	})
	return nil
}

// PromoteDraft promeut un brouillon en soumission PENDING. Le token
// d'approbation est assigné à la promotion ; le brouillon disparaît dans la
// même transaction.
func PromoteDraft(draftID, authorID string) (*Submission, error) {
	var draft Draft
	if err := database.DB.First(&draft, "id = ?", draftID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "brouillon", ID: draftID}
		}
		return nil, err
	}
	if draft.AuthorID != authorID {
		return nil, &AuthorizationError{Message: "Ce brouillon ne vous appartient pas"}
	}

	input := CreateSubmissionInput{
		PostType:             draft.PostType,
		Title:                draft.Title,
		Content:              draft.Content,
		Images:               draft.Images,
		ImageAttributions:    draft.ImageAttributions,
		ThumbnailURL:         draft.ThumbnailURL,
		ThumbnailAttribution: draft.ThumbnailAttribution,
		ProjectLinks:         draft.ProjectLinks,
		Sources:              draft.Sources,
		Tags:                 draft.Tags,
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	sub := Submission{
		ID:                   uuid.NewString(),
		PostType:             draft.PostType,
		Title:                draft.Title,
		Content:              draft.Content,
		Status:               StatusPending,
		AuthorID:             authorID,
		ApprovalToken:        uuid.NewString(),
		Images:               draft.Images,
		ImageAttributions:    draft.ImageAttributions,
		ThumbnailURL:         draft.ThumbnailURL,
		ThumbnailAttribution: draft.ThumbnailAttribution,
		ProjectLinks:         draft.ProjectLinks,
		Sources:              draft.Sources,
		Tags:                 draft.Tags,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}
		if err := tx.Delete(&Draft{}, "id = ?", draft.ID).Error; err != nil {
			return err
		}
		return tx.Model(&user.User{}).Where("id = ?", authorID).
			Updates(map[string]interface{}{
				"draft_ids":        gorm.Expr("array_remove(draft_ids, ?)", draft.ID),
				"pending_post_ids": gorm.Expr("array_append(pending_post_ids, ?)", sub.ID),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// locatePost retrouve le Post issu d'une soumission approuvée : d'abord par
// auteur + titre + date de publication, sinon par préfixe de slug.
func locatePost(tx *gorm.DB, sub *Submission) (*post.Post, error) {
	var p post.Post
	query := tx.Where("author_id = ? AND title = ?", sub.AuthorID, sub.Title)
	if sub.PublishedAt != nil {
		query = query.Where("published_at = ?", *sub.PublishedAt)
	}
	err := query.First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = tx.Where("author_id = ? AND slug LIKE ?", sub.AuthorID, utils.Slugify(sub.Title)+"%").
		Order("published_at DESC").First(&p).Error
	if err == nil {
		return &p, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, err
}

func currentStatus(tx *gorm.DB, id string) string {
	var status string
	if err := tx.Model(&Submission{}).Select("status").Where("id = ?", id).Scan(&status).Error; err != nil || status == "" {
		return "unknown"
	}
	return status
}

func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	var out []string
	for _, u := range urls {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}
