package assistant

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	shingleSize            = 3
	contentHighThreshold   = 0.70
	contentMediumThreshold = 0.45
	titleThreshold         = 0.85
)

// topK : nombre de meilleures correspondances suivies en interne.
// Seule la meilleure est rapportée, la forme de la liste reste stable.
var topK = 1

// Candidate est un document du corpus borné de comparaison.
type Candidate struct {
	ID      string
	Title   string
	Content string
}

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "her": true,
	"was": true, "one": true, "our": true, "out": true, "his": true,
	"has": true, "have": true, "this": true, "that": true, "with": true,
	"from": true, "they": true, "will": true, "what": true, "when": true,
	"your": true, "which": true, "their": true, "about": true, "would": true,
	"there": true, "been": true, "into": true, "more": true, "other": true,
	"some": true, "then": true, "than": true, "them": true, "these": true,
	"were": true, "also": true, "its": true, "only": true, "over": true,
	"such": true, "most": true, "very": true, "just": true, "how": true,
}

var (
	markdownLinkRe  = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	markdownSyntax  = regexp.MustCompile("[#*_`>~|]+")
	nonAlphaNumRe   = regexp.MustCompile(`[^a-z0-9\s]+`)
	whitespaceRunRe = regexp.MustCompile(`\s+`)
)

// normalizeText retire la syntaxe markdown puis ne garde que des mots
// alphanumériques minuscules séparés par des espaces simples.
func normalizeText(text string) string {
	text = markdownLinkRe.ReplaceAllString(text, "$1")
	text = markdownSyntax.ReplaceAllString(text, " ")
	text = strings.ToLower(text)
	text = nonAlphaNumRe.ReplaceAllString(text, " ")
	text = whitespaceRunRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func tokenize(text string) []string {
	var tokens []string
	for _, tok := range strings.Fields(normalizeText(text)) {
		if len(tok) <= 1 || stopWords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// shingleSet construit les shingles de 3 tokens (fenêtre glissante).
// Avec moins de 3 tokens, l'ensemble des tokens fait foi.
func shingleSet(tokens []string) map[string]bool {
	set := make(map[string]bool)
	if len(tokens) < shingleSize {
		for _, tok := range tokens {
			set[tok] = true
		}
		return set
	}
	for i := 0; i+shingleSize <= len(tokens); i++ {
		set[strings.Join(tokens[i:i+shingleSize], " ")] = true
	}
	return set
}

// jaccard = |A∩B| / |A∪B|
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for k := range a {
		if b[k] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(normalizeText(text)) {
		set[tok] = true
	}
	return set
}

type simMatch struct {
	title string
	score float64
}

// CheckSimilarity compare la soumission à chaque candidat du corpus :
// shingles sur titre+contenu pour le score de contenu, ensembles de mots
// pour le score de titre. Chaque comparaison ne retient que la meilleure
// correspondance.
func CheckSimilarity(title, content string, corpus []Candidate) []Warning {
	subShingles := shingleSet(tokenize(title + " " + content))
	subTitleWords := wordSet(title)

	var contentMatches, titleMatches []simMatch
	for _, cand := range corpus {
		cShingles := shingleSet(tokenize(cand.Title + " " + cand.Content))
		contentMatches = pushMatch(contentMatches, simMatch{title: cand.Title, score: jaccard(subShingles, cShingles)})

		titleMatches = pushMatch(titleMatches, simMatch{title: cand.Title, score: jaccard(subTitleWords, wordSet(cand.Title))})
	}

	var warnings []Warning

	if best, ok := bestMatch(contentMatches); ok {
		evidence := fmt.Sprintf("%q (similarity %.2f)", best.title, best.score)
		switch {
		case best.score >= contentHighThreshold:
			warnings = append(warnings, newWarning(SourceCopyright, SeverityHigh,
				"Content closely matches an existing publication.",
				evidence, []string{"ORIGINALITY"}, true))
		case best.score >= contentMediumThreshold:
			warnings = append(warnings, newWarning(SourceCopyright, SeverityMedium,
				"Content overlaps noticeably with an existing publication.",
				evidence, []string{"ORIGINALITY"}, false))
		}
	}

	// Le score de titre est évalué indépendamment du score de contenu
	if best, ok := bestMatch(titleMatches); ok && best.score >= titleThreshold {
		warnings = append(warnings, newWarning(SourceCopyright, SeverityMedium,
			"Title closely matches an existing publication.",
			fmt.Sprintf("%q (similarity %.2f)", best.title, best.score),
			[]string{"ORIGINALITY"}, false))
	}

	return warnings
}

func pushMatch(matches []simMatch, m simMatch) []simMatch {
	matches = append(matches, m)
	sort.Slice(matches, func(i, j int) bool { return matches[i].score > matches[j].score })
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}

func bestMatch(matches []simMatch) (simMatch, bool) {
	if len(matches) == 0 {
		return simMatch{}, false
	}
	return matches[0], true
}
