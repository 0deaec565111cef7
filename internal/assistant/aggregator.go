package assistant

import (
	"sync"

	"github.com/ArthurDelaporte/ShowcaseMedia-Back/internal/submission"
)

// Run exécute les quatre sous-vérifications en parallèle — elles sont
// indépendantes et en lecture seule — puis concatène leurs résultats :
// grammaire d'abord, puis similarité, affirmations et crédits. Pas de
// déduplication au-delà du suivi de meilleure correspondance de chaque
// sous-vérification.
func Run(sub *submission.Submission, corpus []Candidate) []Warning {
	var grammar, similarity, claims, attribution []Warning

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		grammar = CheckGrammar(sub.Content)
	}()
	go func() {
		defer wg.Done()
		similarity = CheckSimilarity(sub.Title, sub.Content, corpus)
	}()
	go func() {
		defer wg.Done()
		claims = CheckClaims(sub.Content, sub.Sources)
	}()
	go func() {
		defer wg.Done()
		attribution = CheckAttribution(sub)
	}()
	wg.Wait()

	warnings := make([]Warning, 0, len(grammar)+len(similarity)+len(claims)+len(attribution))
	warnings = append(warnings, grammar...)
	warnings = append(warnings, similarity...)
	warnings = append(warnings, claims...)
	warnings = append(warnings, attribution...)
	return warnings
}
