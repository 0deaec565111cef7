package assistant

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	percentRe = regexp.MustCompile(`\d+(\.\d+)?\s?%`)
	quoteRe   = regexp.MustCompile(`"[^"]{12,}"|“[^”]{12,}”|«[^»]{12,}»`)
	cueRe     = regexp.MustCompile(`(?i)\b(according to|research|study|statistics|survey)\b`)
)

// CheckClaims repère des affirmations factuelles (pourcentages, citations,
// formules du type "according to") sans section sources pour les étayer.
func CheckClaims(content, sources string) []Warning {
	if strings.TrimSpace(sources) != "" {
		return nil
	}

	signals := len(percentRe.FindAllString(content, -1)) +
		len(quoteRe.FindAllString(content, -1)) +
		len(cueRe.FindAllString(content, -1))

	if signals == 0 {
		return nil
	}

	evidence := fmt.Sprintf("%d claim signal(s) without sources", signals)
	if signals >= 3 {
		return []Warning{newWarning(SourceCopyright, SeverityHigh,
			"Multiple factual claims without any cited sources.",
			evidence, []string{"MISSING_SOURCES"}, true)}
	}
	return []Warning{newWarning(SourceCopyright, SeverityMedium,
		"Factual claims without cited sources.",
		evidence, []string{"MISSING_SOURCES"}, false)}
}
