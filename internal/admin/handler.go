// internal/admin/handler.go
package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/database"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/logs"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/submission"
)

// GetModerationStats GET /api/admin/stats — compteurs de la file de revue
func GetModerationStats(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	var pending, approved, rejected int64
	var totalPosts, totalDrafts, totalUsers int64

	database.DB.Table("submissions").Where("status = ?", submission.StatusPending).Count(&pending)
	database.DB.Table("submissions").Where("status = ?", submission.StatusApproved).Count(&approved)
	database.DB.Table("submissions").Where("status = ?", submission.StatusRejected).Count(&rejected)
	database.DB.Table("posts").Count(&totalPosts)
	database.DB.Table("drafts").Count(&totalDrafts)
	database.DB.Table("users").Count(&totalUsers)

	stats := gin.H{
		"pending_submissions":  pending,
		"approved_submissions": approved,
		"rejected_submissions": rejected,
		"total_posts":          totalPosts,
		"total_drafts":         totalDrafts,
		"total_users":          totalUsers,
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
	logs.LogJSON("INFO", "Moderation stats retrieved successfully", map[string]interface{}{
		"route":  route,
		"userID": userID,
	})
}

// GetReviewQueue GET /api/admin/queue — soumissions en attente, plus
// anciennes d'abord
func GetReviewQueue(c *gin.Context) {
	var pending []submission.Submission
	if err := database.DB.Where("status = ?", submission.StatusPending).
		Order("created_at ASC").Find(&pending).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération de la file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": pending})
}
