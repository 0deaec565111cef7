package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/logs"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/user"
)

// ModeratorOnlyMiddleware protège les routes de revue : réservées aux modérateurs
func ModeratorOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		userID := c.GetString("user_id")

		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
			logs.LogJSON("WARN", "Non-authenticated user tried moderation route", map[string]interface{}{
				"route": route,
			})
			return
		}

		isModerator, err := user.IsModerator(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Erreur vérification modérateur"})
			logs.LogJSON("ERROR", "Moderator check DB error", map[string]interface{}{
				"error":  err.Error(),
				"route":  route,
				"userID": userID,
			})
			return
		}

		if !isModerator {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux modérateurs"})
			logs.LogJSON("WARN", "Non-moderator user blocked from moderation route", map[string]interface{}{
				"route":  route,
				"userID": userID,
			})
			return
		}

		c.Next()
	}
}
