package assistant

import (
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/database"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/logs"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/post"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/submission"
)

// Taille maximale du corpus de comparaison
const corpusLimit = 120

// BuildCorpus charge les candidats les plus récemment mis à jour : posts
// publiés d'abord, puis autres soumissions, plafonné à corpusLimit.
// Lecture seule et bornée ; une erreur de requête réduit le corpus sans
// faire échouer la revue.
func BuildCorpus(excludeSubmissionID string) []Candidate {
	var candidates []Candidate

	var posts []post.Post
	if err := database.DB.Order("updated_at DESC").Limit(corpusLimit).Find(&posts).Error; err != nil {
		logs.LogJSON("WARN", "Corpus posts query failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	for _, p := range posts {
		candidates = append(candidates, Candidate{ID: p.ID, Title: p.Title, Content: p.Content})
	}

	remaining := corpusLimit - len(candidates)
	if remaining <= 0 {
		return candidates
	}

	var subs []submission.Submission
	if err := database.DB.Where("id <> ?", excludeSubmissionID).
		Order("updated_at DESC").Limit(remaining).Find(&subs).Error; err != nil {
		logs.LogJSON("WARN", "Corpus submissions query failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	for _, s := range subs {
		candidates = append(candidates, Candidate{ID: s.ID, Title: s.Title, Content: s.Content})
	}

	return candidates
}
