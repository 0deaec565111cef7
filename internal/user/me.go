package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/database"
)

// GetMe GET /api/me
func GetMe(c *gin.Context) {
	userID := c.GetString("user_id")

	var user User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}

	response := gin.H{
		"id":               user.ID,
		"email":            user.Email,
		"username":         user.Username,
		"avatar_url":       user.AvatarURL,
		"bio":              user.Bio,
		"created_at":       user.CreatedAt,
		"post_ids":         user.PostIDs,
		"draft_ids":        user.DraftIDs,
		"pending_post_ids": user.PendingPostIDs,
	}

	if user.IsModerator {
		response["is_moderator"] = true
	}

	c.JSON(http.StatusOK, gin.H{"user": response})
}
