package assistant

import (
	"github.com/google/uuid"
)

// Sources d'avertissement exposées au front de revue
const (
	SourceGrammar   = "grammar"
	SourceCopyright = "copyright"
)

const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Warning est un signal d'assistant éphémère, recalculé à chaque requête.
// Un avertissement bloquant désactive l'approbation en un clic tant qu'il
// n'est pas traité.
type Warning struct {
	ID                  string   `json:"id"`
	Source              string   `json:"source"`
	Severity            string   `json:"severity"`
	Message             string   `json:"message"`
	Evidence            string   `json:"evidence,omitempty"`
	SuggestedIssueCodes []string `json:"suggested_issue_codes"`
	Blocking            bool     `json:"blocking"`
}

func newWarning(source, severity, message, evidence string, codes []string, blocking bool) Warning {
	return Warning{
		ID:                  uuid.NewString(),
		Source:              source,
		Severity:            severity,
		Message:             message,
		Evidence:            evidence,
		SuggestedIssueCodes: codes,
		Blocking:            blocking,
	}
}

// HasBlocking indique si au moins un avertissement est bloquant.
func HasBlocking(warnings []Warning) bool {
	for _, w := range warnings {
		if w.Blocking {
			return true
		}
	}
	return false
}
