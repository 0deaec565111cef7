package draft

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/database"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/storage"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/submission"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/user"
)

// DraftInput structure pour créer ou modifier un brouillon.
// Tous les champs de contenu sont optionnels : la validation par type
// n'intervient qu'à la promotion en soumission.
type DraftInput struct {
	DraftName            string                     `json:"draft_name"`
	PostType             string                     `json:"post_type"`
	Title                string                     `json:"title"`
	Content              string                     `json:"content"`
	Images               []string                   `json:"images"`
	ImageAttributions    submission.AttributionList `json:"image_attributions"`
	ThumbnailURL         string                     `json:"thumbnail_url"`
	ThumbnailAttribution submission.Attribution     `json:"thumbnail_attribution"`
	ProjectLinks         []string                   `json:"project_links"`
	Sources              string                     `json:"sources"`
	Tags                 []string                   `json:"tags"`
}

// GetMyDrafts GET /api/drafts
func GetMyDrafts(c *gin.Context) {
	userID := c.GetString("user_id")

	var drafts []submission.Draft
	if err := database.DB.Where("author_id = ?", userID).
		Order("updated_at DESC").Find(&drafts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des brouillons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"drafts": drafts})
}

// GetDraft GET /api/drafts/:id
func GetDraft(c *gin.Context) {
	userID := c.GetString("user_id")

	draft, ok := ownedDraft(c, userID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// CreateDraft POST /api/drafts
func CreateDraft(c *gin.Context) {
	userID := c.GetString("user_id")

	var input DraftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	if input.PostType != "" && !submission.IsValidType(input.PostType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type de contenu invalide"})
		return
	}

	draft := submission.Draft{
		ID:                   uuid.NewString(),
		AuthorID:             userID,
		DraftName:            input.DraftName,
		PostType:             input.PostType,
		Title:                input.Title,
		Content:              input.Content,
		Images:               input.Images,
		ImageAttributions:    input.ImageAttributions,
		ThumbnailURL:         input.ThumbnailURL,
		ThumbnailAttribution: input.ThumbnailAttribution,
		ProjectLinks:         input.ProjectLinks,
		Sources:              input.Sources,
		Tags:                 input.Tags,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&draft).Error; err != nil {
			return err
		}
		return tx.Model(&user.User{}).Where("id = ?", userID).
			Update("draft_ids", gorm.Expr("array_append(draft_ids, ?)", draft.ID)).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du brouillon"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Brouillon créé",
		"draft":   draft,
	})
}

// UpdateDraft PUT /api/drafts/:id
func UpdateDraft(c *gin.Context) {
	userID := c.GetString("user_id")

	draft, ok := ownedDraft(c, userID)
	if !ok {
		return
	}

	var input DraftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	if input.PostType != "" && !submission.IsValidType(input.PostType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type de contenu invalide"})
		return
	}

	draft.DraftName = input.DraftName
	draft.PostType = input.PostType
	draft.Title = input.Title
	draft.Content = input.Content
	draft.Images = input.Images
	draft.ImageAttributions = input.ImageAttributions
	draft.ThumbnailURL = input.ThumbnailURL
	draft.ThumbnailAttribution = input.ThumbnailAttribution
	draft.ProjectLinks = input.ProjectLinks
	draft.Sources = input.Sources
	draft.Tags = input.Tags

	if err := database.DB.Save(draft).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour du brouillon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Brouillon mis à jour",
		"draft":   draft,
	})
}

// DeleteDraft DELETE /api/drafts/:id
func DeleteDraft(c *gin.Context) {
	userID := c.GetString("user_id")

	draft, ok := ownedDraft(c, userID)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&submission.Draft{}, "id = ?", draft.ID).Error; err != nil {
			return err
		}
		return tx.Model(&user.User{}).Where("id = ?", userID).
			Update("draft_ids", gorm.Expr("array_remove(draft_ids, ?)", draft.ID)).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression du brouillon"})
		return
	}

	// Suppression média après commit, échecs journalisés seulement
	urls := append([]string{}, draft.Images...)
	if draft.ThumbnailURL != "" {
		urls = append(urls, draft.ThumbnailURL)
	}
	storage.DeleteImages(urls)

	c.JSON(http.StatusOK, gin.H{"message": "Brouillon supprimé"})
}

// SubmitDraft POST /api/drafts/:id/submit — promotion en soumission PENDING
func SubmitDraft(c *gin.Context) {
	userID := c.GetString("user_id")
	draftID := c.Param("id")

	sub, err := submission.PromoteDraft(draftID, userID)
	if err != nil {
		c.JSON(submission.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Brouillon soumis en revue",
		"submission": sub,
	})
}

func ownedDraft(c *gin.Context, userID string) (*submission.Draft, bool) {
	var draft submission.Draft
	if err := database.DB.First(&draft, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Brouillon non trouvé"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération du brouillon"})
		}
		return nil, false
	}
	if draft.AuthorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce brouillon ne vous appartient pas"})
		return nil, false
	}
	return &draft, true
}
