package post

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/database"
)

// GetAllPosts GET /api/posts — flux public des contenus publiés
func GetAllPosts(c *gin.Context) {
	query := database.DB.Order("published_at DESC")

	// Filtre optionnel par type de contenu (expo, now, pods)
	if postType := c.Query("type"); postType != "" {
		query = query.Where("post_type = ?", postType)
	}

	var posts []Post
	if err := query.Limit(60).Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPostBySlug GET /api/posts/:slug
func GetPostBySlug(c *gin.Context) {
	slug := c.Param("slug")

	var post Post
	if err := database.DB.First(&post, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération du post"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// GetCommentsBySlug GET /api/posts/:slug/comments
func GetCommentsBySlug(c *gin.Context) {
	slug := c.Param("slug")

	var post Post
	if err := database.DB.First(&post, "slug = ?", slug).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé"})
		return
	}

	var comments []Comment
	if err := database.DB.
		Where("subject_type = ? AND subject_id = ?", SubjectPost, post.ID).
		Order("created_at desc").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des commentaires"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// CreateComment POST /api/comments
func CreateComment(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		SubjectType string  `json:"subject_type" binding:"required"`
		SubjectID   string  `json:"subject_id" binding:"required"`
		ParentID    *string `json:"parent_id"`
		Text        string  `json:"text" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.SubjectType != SubjectPost && input.SubjectType != SubjectSubmission {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type de sujet invalide"})
		return
	}

	// Vérifier que le sujet existe
	table := "posts"
	if input.SubjectType == SubjectSubmission {
		table = "submissions"
	}
	var count int64
	database.DB.Table(table).Where("id = ?", input.SubjectID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sujet non trouvé"})
		return
	}

	// Un commentaire enfant doit référencer un parent du même sujet
	if input.ParentID != nil {
		var parent Comment
		if err := database.DB.First(&parent, "id = ? AND subject_type = ? AND subject_id = ?",
			*input.ParentID, input.SubjectType, input.SubjectID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Commentaire parent non trouvé"})
			return
		}
	}

	comment := Comment{
		SubjectType: input.SubjectType,
		SubjectID:   input.SubjectID,
		ParentID:    input.ParentID,
		UserID:      userID.(string),
		Content:     input.Text,
	}

	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du commentaire"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Commentaire ajouté avec succès",
		"comment": comment,
	})
}

// DeleteComment DELETE /api/comments/:id
func DeleteComment(c *gin.Context) {
	commentID := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var comment Comment
	if err := database.DB.First(&comment, "id = ? AND user_id = ?", commentID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commentaire non trouvé ou vous n'êtes pas autorisé à le supprimer"})
		return
	}

	// Supprimer d'abord les réponses
	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", comment.ID).Delete(&Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&comment).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression du commentaire"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Commentaire supprimé avec succès"})
}

// DeleteCommentsFor supprime tous les commentaires d'un sujet,
// enfants avant parents. Utilisé par les suppressions en cascade.
func DeleteCommentsFor(tx *gorm.DB, subjectType, subjectID string) error {
	if err := tx.Where("subject_type = ? AND subject_id = ? AND parent_id IS NOT NULL",
		subjectType, subjectID).Delete(&Comment{}).Error; err != nil {
		return err
	}
	return tx.Where("subject_type = ? AND subject_id = ?", subjectType, subjectID).
		Delete(&Comment{}).Error
}
