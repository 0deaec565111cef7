package moderation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/assistant"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/logs"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/notification"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/submission"
)

// GetIssueCodes GET /api/moderation/issue-codes
func GetIssueCodes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"issue_codes": IssueCatalog()})
}

// GetWarnings GET /api/submissions/:id/warnings — lance les vérifications
// d'assistant et retourne la liste d'avertissements avec l'état de la porte
// de décision pour l'écran de revue.
func GetWarnings(c *gin.Context) {
	userID := c.GetString("user_id")
	id := c.Param("id")

	sub, err := submission.Get(id)
	if err != nil {
		c.JSON(submission.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	corpus := assistant.BuildCorpus(sub.ID)
	warnings := assistant.Run(sub, corpus)
	decision := Evaluate(userID, true, sub, nil, warnings, true)

	c.JSON(http.StatusOK, gin.H{
		"warnings": warnings,
		"decision": decision,
	})
}

// ApproveSubmission POST /api/submissions/:id/approve
func ApproveSubmission(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	id := c.Param("id")

	sub, err := submission.Get(id)
	if err != nil {
		c.JSON(submission.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	// La porte de décision n'est pas une frontière de sécurité :
	// toutes les préconditions sont revérifiées ici, côté serveur.
	if userID == sub.AuthorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Vous ne pouvez pas approuver votre propre soumission"})
		return
	}

	corpus := assistant.BuildCorpus(sub.ID)
	warnings := assistant.Run(sub, corpus)
	decision := Evaluate(userID, true, sub, nil, warnings, true)
	if !decision.CanApprove {
		c.JSON(http.StatusConflict, gin.H{
			"error":    "Approbation impossible",
			"reasons":  decision.Reasons,
			"warnings": warnings,
		})
		return
	}

	approved, createdPost, err := submission.Approve(id, userID)
	if err != nil {
		c.JSON(submission.HTTPStatus(err), gin.H{"error": err.Error()})
		logs.LogJSON("WARN", "Approval failed", map[string]interface{}{
			"error":        err.Error(),
			"route":        route,
			"userID":       userID,
			"submissionID": id,
		})
		return
	}

	notification.SubmissionReviewed(approved, "approved")

	c.JSON(http.StatusOK, gin.H{
		"message":    "Soumission approuvée",
		"submission": approved,
		"post":       createdPost,
	})
}

// RejectSubmission POST /api/submissions/:id/reject
func RejectSubmission(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	id := c.Param("id")

	var input struct {
		IssueCodes     []string `json:"issue_codes" binding:"required"`
		Note           string   `json:"note"`
		CanMoveToDraft bool     `json:"can_move_to_draft"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	sub, err := submission.Get(id)
	if err != nil {
		c.JSON(submission.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	if userID == sub.AuthorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Vous ne pouvez pas rejeter votre propre soumission"})
		return
	}

	if len(input.IssueCodes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Au moins un code de rejet est requis"})
		return
	}

	reason, err := ComposeRejection(sub.Title, input.IssueCodes, input.Note)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rejected, err := submission.Reject(id, userID, reason, input.CanMoveToDraft)
	if err != nil {
		c.JSON(submission.HTTPStatus(err), gin.H{"error": err.Error()})
		logs.LogJSON("WARN", "Rejection failed", map[string]interface{}{
			"error":        err.Error(),
			"route":        route,
			"userID":       userID,
			"submissionID": id,
		})
		return
	}

	notification.SubmissionReviewed(rejected, "rejected")

	c.JSON(http.StatusOK, gin.H{
		"message":    "Soumission rejetée",
		"submission": rejected,
	})
}

// MoveToReview POST /api/submissions/:id/review — ramène une soumission
// approuvée dans la file de revue.
func MoveToReview(c *gin.Context) {
	userID := c.GetString("user_id")
	id := c.Param("id")

	sub, err := submission.MoveToReview(id)
	if err != nil {
		c.JSON(submission.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	logs.LogJSON("INFO", "Submission moved back to review", map[string]interface{}{
		"submissionID": id,
		"userID":       userID,
	})
	c.JSON(http.StatusOK, gin.H{
		"message":    "Soumission remise en revue",
		"submission": sub,
	})
}
