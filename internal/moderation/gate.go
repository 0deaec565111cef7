package moderation

import (
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/assistant"
	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/submission"
)

// Decision résume ce que l'UI de revue peut proposer. Elle n'est qu'une
// commodité d'affichage : chaque précondition est revalidée côté serveur
// au moment d'agir.
type Decision struct {
	CanApprove     bool     `json:"can_approve"`
	CanReject      bool     `json:"can_reject"`
	ChecksFinished bool     `json:"checks_finished"`
	Reasons        []string `json:"reasons,omitempty"`
}

// Evaluate applique la politique de décision :
// approbation ssi PENDING, aucun code sélectionné, aucun avertissement
// bloquant et vérifications terminées ; rejet ssi PENDING et ≥1 code.
// Un acteur qui relit sa propre soumission est toujours bloqué des deux
// actions, indépendamment des avertissements.
func Evaluate(actorID string, actorIsModerator bool, sub *submission.Submission,
	selectedCodes []string, warnings []assistant.Warning, checksFinished bool) Decision {

	decision := Decision{ChecksFinished: checksFinished}

	if !actorIsModerator {
		decision.Reasons = append(decision.Reasons, "moderator role required")
		return decision
	}
	if actorID == sub.AuthorID {
		decision.Reasons = append(decision.Reasons, "reviewing your own submission is not allowed")
		return decision
	}
	if sub.Status != submission.StatusPending {
		decision.Reasons = append(decision.Reasons, "submission is not pending review")
		return decision
	}

	decision.CanReject = len(selectedCodes) >= 1
	if !decision.CanReject {
		decision.Reasons = append(decision.Reasons, "select at least one issue to reject")
	}

	switch {
	case len(selectedCodes) > 0:
		decision.Reasons = append(decision.Reasons, "clear selected issues to approve")
	case !checksFinished:
		decision.Reasons = append(decision.Reasons, "checks still running")
	case assistant.HasBlocking(warnings):
		decision.Reasons = append(decision.Reasons, "a blocking warning must be addressed first")
	default:
		decision.CanApprove = true
	}

	return decision
}
