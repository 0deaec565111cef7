package submission

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/logs"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/user"
)

// CreateSubmission POST /api/submissions
func CreateSubmission(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	var input CreateSubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	sub, err := Create(userID, &input)
	if err != nil {
		c.JSON(HTTPStatus(err), gin.H{"error": err.Error()})
		logs.LogJSON("WARN", "Submission creation refused", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Soumission envoyée en revue",
		"submission": sub,
	})
	logs.LogJSON("INFO", "Submission created", map[string]interface{}{
		"route":        route,
		"userID":       userID,
		"submissionID": sub.ID,
		"postType":     sub.PostType,
	})
}

// GetSubmission GET /api/submissions/:id — auteur ou modérateur
func GetSubmission(c *gin.Context) {
	userID := c.GetString("user_id")
	id := c.Param("id")

	sub, err := Get(id)
	if err != nil {
		c.JSON(HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	if !canActOn(userID, sub) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès non autorisé à cette soumission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submission": sub})
}

// DeleteSubmission DELETE /api/submissions/:id — auteur ou modérateur
func DeleteSubmission(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	id := c.Param("id")

	sub, err := Get(id)
	if err != nil {
		c.JSON(HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	if !canActOn(userID, sub) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Vous n'êtes pas autorisé à supprimer cette soumission"})
		return
	}

	if err := Delete(id); err != nil {
		c.JSON(HTTPStatus(err), gin.H{"error": err.Error()})
		logs.LogJSON("ERROR", "Submission deletion failed", map[string]interface{}{
			"error":        err.Error(),
			"route":        route,
			"userID":       userID,
			"submissionID": id,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Soumission supprimée avec succès"})
}

// MoveToDraftHandler POST /api/submissions/:id/draft — auteur ou modérateur
func MoveToDraftHandler(c *gin.Context) {
	userID := c.GetString("user_id")
	id := c.Param("id")

	sub, err := Get(id)
	if err != nil {
		c.JSON(HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	if !canActOn(userID, sub) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Vous n'êtes pas autorisé à modifier cette soumission"})
		return
	}

	draft, err := MoveToDraft(id)
	if err != nil {
		c.JSON(HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Soumission convertie en brouillon",
		"draft":   draft,
	})
}

// canActOn : l'auteur de la soumission ou un modérateur.
// L'autorisation est une politique paramétrée par l'identité de l'acteur,
// évaluée ici côté handler et jamais mélangée aux vérifications d'état.
func canActOn(userID string, sub *Submission) bool {
	if userID == "" {
		return false
	}
	if userID == sub.AuthorID {
		return true
	}
	isModerator, err := user.IsModerator(userID)
	if err != nil {
		return false
	}
	return isModerator
}
