package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/admin"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/config"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/database"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/draft"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/logs"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/middleware"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/moderation"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/post"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/storage"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/submission"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()
	if cfg.DBUrl == "" {
		panic("DATABASE_URL manquant")
	}

	database.Connect(cfg.DBUrl)

	if err := storage.InitS3(); err != nil {
		logs.LogJSON("ERROR", "S3 initialization failed, media deletion disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Lecture publique des contenus publiés
	api.GET("/posts", middleware.OptionalAuthMiddleware(), post.GetAllPosts)
	api.GET("/posts/:slug", middleware.OptionalAuthMiddleware(), post.GetPostBySlug)
	api.GET("/posts/:slug/comments", middleware.OptionalAuthMiddleware(), post.GetCommentsBySlug)

	api.Use(middleware.AuthMiddleware())

	api.GET("/me", user.GetMe)

	// Brouillons
	api.GET("/drafts", draft.GetMyDrafts)
	api.POST("/drafts", draft.CreateDraft)
	api.GET("/drafts/:id", draft.GetDraft)
	api.PUT("/drafts/:id", draft.UpdateDraft)
	api.DELETE("/drafts/:id", draft.DeleteDraft)
	api.POST("/drafts/:id/submit", draft.SubmitDraft)

	// Soumissions (auteur)
	api.POST("/submissions", submission.CreateSubmission)
	api.GET("/submissions/:id", submission.GetSubmission)
	api.DELETE("/submissions/:id", submission.DeleteSubmission)
	api.POST("/submissions/:id/draft", submission.MoveToDraftHandler)

	// Commentaires
	api.POST("/comments", post.CreateComment)
	api.DELETE("/comments/:id", post.DeleteComment)

	// Revue (modérateurs)
	review := api.Group("")
	review.Use(middleware.ModeratorOnlyMiddleware())
	review.GET("/submissions/:id/warnings", moderation.GetWarnings)
	review.POST("/submissions/:id/approve", moderation.ApproveSubmission)
	review.POST("/submissions/:id/reject", moderation.RejectSubmission)
	review.POST("/submissions/:id/review", moderation.MoveToReview)
	review.GET("/moderation/issue-codes", moderation.GetIssueCodes)
	review.GET("/admin/stats", admin.GetModerationStats)
	review.GET("/admin/queue", admin.GetReviewQueue)

	err := r.Run(":8080")
	if err != nil {
		return
	}
}
